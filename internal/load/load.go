// Package load persists the transformed tables into the relational store.
// Each table is fully replaced; four secondary indexes back the reporting
// query patterns.
package load

import (
	"context"
	"fmt"
	"log"
	"time"

	"ecometl/internal/extract"
	"ecometl/internal/schema"
	"ecometl/internal/storage"
	"ecometl/pkg/records"
)

// dateLayout is the stored text form of date columns.
const dateLayout = "2006-01-02"

// Run writes the three tables through repo and ensures the secondary
// indexes. Any error aborts immediately; the transactional replace in the
// backends keeps an individual table consistent.
func Run(ctx context.Context, repo storage.Repository, t *extract.Tables) error {
	log.Printf("load: writing tables")

	for _, part := range []struct {
		tbl  schema.Table
		rows []records.Record
	}{
		{schema.Customers, t.Customers},
		{schema.Products, t.Products},
		{schema.Orders, t.Orders},
	} {
		flat, err := flatten(part.tbl, part.rows)
		if err != nil {
			return err
		}
		n, err := repo.ReplaceTable(ctx, part.tbl, flat)
		if err != nil {
			return fmt.Errorf("load %s: %w", part.tbl.Name, err)
		}
		log.Printf("load: %s: %d rows", part.tbl.Name, n)
	}

	if err := repo.EnsureIndexes(ctx, storage.Indexes); err != nil {
		return fmt.Errorf("load indexes: %w", err)
	}
	return nil
}

// flatten orders each record's values by the table's column list and maps
// them onto driver-friendly types. Dates become date text so that lexical
// ordering in the store matches chronology.
func flatten(tbl schema.Table, rows []records.Record) ([][]any, error) {
	out := make([][]any, len(rows))
	for i, r := range rows {
		row := make([]any, len(tbl.Columns))
		for j, col := range tbl.Columns {
			v, ok := r[col.Name]
			if !ok {
				return nil, fmt.Errorf("load %s: row %d: missing column %q", tbl.Name, i, col.Name)
			}
			if t, isTime := v.(time.Time); isTime {
				v = t.Format(dateLayout)
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}
