// Package export writes denormalized store snapshots for downstream
// analytics tools.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"ecometl/internal/storage"
)

// SaleRow is one completed order joined to its customer, flattened for the
// Parquet schema.
type SaleRow struct {
	OrderID     int64   `parquet:"name=order_id, type=INT64"`
	OrderDate   string  `parquet:"name=order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderMonth  string  `parquet:"name=order_month, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID  int64   `parquet:"name=customer_id, type=INT64"`
	Customer    string  `parquet:"name=customer_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Location    string  `parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8"`
	Segment     string  `parquet:"name=customer_segment, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalAmount float64 `parquet:"name=total_amount, type=DOUBLE"`
}

const salesQuery = `
	SELECT o.order_id, o.order_date, o.order_month,
	       c.customer_id, c.name, c.location, c.customer_segment,
	       o.total_amount
	FROM orders o
	JOIN customers c ON o.customer_id = c.customer_id
	WHERE o.status = 'Completed'
	ORDER BY o.order_id`

// Sales reads the completed-sales view from the store and writes it to path
// as a Snappy-compressed Parquet file. Returns the row count.
func Sales(ctx context.Context, kind, dsn, path string) (int, error) {
	db, err := storage.OpenDB(kind, dsn)
	if err != nil {
		return 0, fmt.Errorf("export: open store: %w", err)
	}
	defer db.Close()

	rows, err := querySales(ctx, db)
	if err != nil {
		return 0, err
	}
	if err := writeParquet(path, rows); err != nil {
		return 0, err
	}
	log.Printf("export: wrote %d sales rows to %s", len(rows), path)
	return len(rows), nil
}

func querySales(ctx context.Context, db *sql.DB) ([]SaleRow, error) {
	rs, err := db.QueryContext(ctx, salesQuery)
	if err != nil {
		return nil, fmt.Errorf("export: query sales: %w", err)
	}
	defer rs.Close()

	var out []SaleRow
	for rs.Next() {
		var r SaleRow
		if err := rs.Scan(&r.OrderID, &r.OrderDate, &r.OrderMonth,
			&r.CustomerID, &r.Customer, &r.Location, &r.Segment,
			&r.TotalAmount); err != nil {
			return nil, fmt.Errorf("export: scan sale: %w", err)
		}
		out = append(out, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("export: read sales: %w", err)
	}
	return out, nil
}

func writeParquet(path string, rows []SaleRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(SaleRow), 1)
	if err != nil {
		return fmt.Errorf("export: parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		if err := pw.Write(r); err != nil {
			return fmt.Errorf("export: write row %d: %w", r.OrderID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("export: finish %s: %w", path, err)
	}
	return nil
}
