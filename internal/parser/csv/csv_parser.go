// Package csv parses header-led CSV files into records.
//
// The reader is strict where the pipeline needs it to be: the header row is
// required, data rows must match the header width, and any parse error aborts
// the whole file. A malformed source dataset fails extraction rather than
// silently dropping rows.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"ecometl/internal/parser/fieldname"
	"ecometl/pkg/records"
)

// Options configures the CSV reader.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims surrounding whitespace from every cell.
	TrimSpace bool
}

// ReadAll parses the full CSV stream and returns the canonicalized header and
// one Record per data row, with all values as strings. Empty cells map to nil.
func ReadAll(r io.Reader, opt Options) ([]string, []records.Record, error) {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.TrimLeadingSpace = true

	raw, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv: empty input, missing header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}

	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = fieldname.Normalize(h)
	}
	// Width is enforced against the header from here on; encoding/csv
	// reports ErrFieldCount for any row that disagrees.
	cr.FieldsPerRecord = len(header)

	var rows []records.Record
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		row := make(records.Record, len(header))
		for i, name := range header {
			v := rec[i]
			if opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			if v == "" {
				row[name] = nil
				continue
			}
			row[name] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
