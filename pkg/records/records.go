// Package records defines the tabular row type shared by every pipeline
// stage. A Record is a loosely typed field map; parsers produce them, the
// transformer coerces and enriches them, and the loader flattens them into
// ordered column values.
package records

import (
	"encoding/json"
	"strconv"
	"time"
)

// Record is one row of a dataset, keyed by canonical column name. Values are
// strings straight off a parser, or typed values (int64, float64, time.Time)
// after coercion.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value for key as a string, or "" when the field is
// missing, nil, or not a string.
func (r Record) String(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Int64 returns the value for key as an int64. It accepts int, int64,
// float64, json.Number, and numeric strings; ok reports whether a usable
// value was found.
func (r Record) Int64(key string) (int64, bool) {
	switch v := r[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Float64 returns the value for key as a float64, accepting the same input
// shapes as Int64.
func (r Record) Float64(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Time returns the value for key as a time.Time; ok is false when the field
// has not been coerced to a time yet.
func (r Record) Time(key string) (time.Time, bool) {
	t, ok := r[key].(time.Time)
	return t, ok
}

// Empty reports whether the value for key is missing, nil, or an empty
// string. Used by the data-quality checks to count missing cells.
func (r Record) Empty(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return true
	}
	s, isStr := v.(string)
	return isStr && s == ""
}
