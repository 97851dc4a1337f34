package transform

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"ecometl/internal/extract"
	"ecometl/internal/schema"
	"ecometl/pkg/records"
)

// Report summarizes the data-quality checks. Anomalies are warnings, never
// failures: a dirty batch still loads.
type Report struct {
	// MissingCells counts nil/empty cells per table.
	MissingCells map[string]int

	// DuplicateCustomers counts customer rows whose entire field set repeats
	// an earlier row.
	DuplicateCustomers int
}

// Check runs the quality checks over the transformed tables.
func Check(t *extract.Tables) Report {
	rep := Report{MissingCells: map[string]int{}}
	rep.MissingCells["customers"] = missingCells(t.Customers, schema.Customers)
	rep.MissingCells["products"] = missingCells(t.Products, schema.Products)
	rep.MissingCells["orders"] = missingCells(t.Orders, schema.Orders)
	rep.DuplicateCustomers = duplicateRows(t.Customers, schema.Customers)
	return rep
}

// Log writes one warning line per nonzero finding.
func (r Report) Log() {
	for _, table := range []string{"customers", "products", "orders"} {
		if n := r.MissingCells[table]; n > 0 {
			log.Printf("quality: warning: %d missing values in %s", n, table)
		}
	}
	if r.DuplicateCustomers > 0 {
		log.Printf("quality: warning: %d duplicate customers found", r.DuplicateCustomers)
	}
}

// Clean reports whether no anomaly was found.
func (r Report) Clean() bool {
	if r.DuplicateCustomers > 0 {
		return false
	}
	for _, n := range r.MissingCells {
		if n > 0 {
			return false
		}
	}
	return true
}

func missingCells(rows []records.Record, tbl schema.Table) int {
	n := 0
	for _, r := range rows {
		for _, col := range tbl.Columns {
			if _, present := r[col.Name]; !present {
				continue // absent derived column is not a missing cell
			}
			if r.Empty(col.Name) {
				n++
			}
		}
	}
	return n
}

// duplicateRows counts rows whose whole-row hash repeats an earlier row. The
// hash covers every schema column in declared order with an unlikely
// separator, so two rows collide only when every field matches.
func duplicateRows(rows []records.Record, tbl schema.Table) int {
	seen := make(map[uint64]struct{}, len(rows))
	dupes := 0
	var b strings.Builder
	for _, r := range rows {
		b.Reset()
		for _, col := range tbl.Columns {
			b.WriteString(cellString(r[col.Name]))
			b.WriteByte('\x1f')
		}
		h := xxh3.HashString(b.String())
		if _, ok := seen[h]; ok {
			dupes++
			continue
		}
		seen[h] = struct{}{}
	}
	return dupes
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return "\x00"
	case string:
		return t
	case time.Time:
		return t.Format(DateLayout)
	default:
		return fmt.Sprint(t)
	}
}
