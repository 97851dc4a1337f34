// Package jsonrec decodes JSON datasets into records.
//
// It is deliberately simple and conservative:
//
//   - Supports a top-level array of objects, the shape the generator writes:
//     [ {"product_id":1, ...}, {"product_id":2, ...} ]
//   - Also supports a stream of objects (NDJSON), a common export shape.
//   - Rejects any other top-level value.
//
// Numbers decode as json.Number so the transform stage decides int vs float.
package jsonrec

import (
	"encoding/json"
	"fmt"
	"io"

	"ecometl/pkg/records"
)

// DecodeAll reads the whole stream and returns one Record per object.
func DecodeAll(r io.Reader) ([]records.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var out []records.Record
	for {
		var raw any
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, fmt.Errorf("jsonrec: decode: %w", err)
		}

		switch v := raw.(type) {
		case map[string]any:
			out = append(out, records.Record(v))
		case []any:
			for i, el := range v {
				m, ok := el.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("jsonrec: array element %d is %T, want object", i, el)
				}
				out = append(out, records.Record(m))
			}
		default:
			return nil, fmt.Errorf("jsonrec: top-level value is %T, want object or array of objects", raw)
		}
	}
}
