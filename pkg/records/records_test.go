package records

import (
	"encoding/json"
	"testing"
	"time"
)

/*
TestInt64AndFloat64_Table covers the accepted input shapes and rejections
for the numeric accessors.
*/
func TestInt64AndFloat64_Table(t *testing.T) {
	r := Record{
		"i64":   int64(7),
		"i":     3,
		"f":     2.5,
		"num":   json.Number("42"),
		"fnum":  json.Number("1.25"),
		"s":     "19",
		"fs":    "123.45",
		"junk":  "lots",
		"blank": nil,
	}

	intCases := []struct {
		key  string
		want int64
		ok   bool
	}{
		{"i64", 7, true},
		{"i", 3, true},
		{"f", 2, true},
		{"num", 42, true},
		{"s", 19, true},
		{"junk", 0, false},
		{"blank", 0, false},
		{"absent", 0, false},
	}
	for _, c := range intCases {
		got, ok := r.Int64(c.key)
		if got != c.want || ok != c.ok {
			t.Fatalf("Int64(%q)=%d,%v; want %d,%v", c.key, got, ok, c.want, c.ok)
		}
	}

	floatCases := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"f", 2.5, true},
		{"i64", 7, true},
		{"fnum", 1.25, true},
		{"fs", 123.45, true},
		{"junk", 0, false},
	}
	for _, c := range floatCases {
		got, ok := r.Float64(c.key)
		if got != c.want || ok != c.ok {
			t.Fatalf("Float64(%q)=%v,%v; want %v,%v", c.key, got, ok, c.want, c.ok)
		}
	}
}

/*
TestTimeStringEmpty covers the remaining accessors.
*/
func TestTimeStringEmpty(t *testing.T) {
	when := time.Date(2023, time.March, 9, 0, 0, 0, 0, time.UTC)
	r := Record{"t": when, "s": "hello", "e": "", "n": nil}

	if got, ok := r.Time("t"); !ok || !got.Equal(when) {
		t.Fatalf("Time(t)=%v,%v; want %v,true", got, ok, when)
	}
	if _, ok := r.Time("s"); ok {
		t.Fatalf("Time(s) ok; want false for an uncoerced string")
	}
	if got := r.String("s"); got != "hello" {
		t.Fatalf("String(s)=%q; want %q", got, "hello")
	}
	if got := r.String("t"); got != "" {
		t.Fatalf("String(t)=%q; want empty for non-string", got)
	}

	for key, want := range map[string]bool{"s": false, "e": true, "n": true, "absent": true} {
		if got := r.Empty(key); got != want {
			t.Fatalf("Empty(%q)=%v; want %v", key, got, want)
		}
	}
}

/*
TestClone verifies a clone is independent of the original at the top level.
*/
func TestClone(t *testing.T) {
	r := Record{"a": 1}
	c := r.Clone()
	c["a"] = 2
	c["b"] = 3

	if r["a"] != 1 {
		t.Fatalf("original mutated through clone: %#v", r)
	}
	if _, ok := r["b"]; ok {
		t.Fatalf("new key leaked into original: %#v", r)
	}
}
