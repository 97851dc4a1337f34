// Package extract reads the three generated datasets back into in-memory
// tables. Extraction is all-or-nothing: a missing or malformed file fails the
// whole step and nothing downstream runs.
package extract

import (
	"context"
	"fmt"
	"log"

	"ecometl/internal/config"
	"ecometl/internal/datasource/file"
	csvparser "ecometl/internal/parser/csv"
	"ecometl/internal/parser/jsonrec"
	"ecometl/pkg/records"
)

// Tables holds the three extracted datasets.
type Tables struct {
	Customers []records.Record
	Products  []records.Record
	Orders    []records.Record
}

// Run extracts customers and orders from CSV and products from JSON, using
// the paths in cfg. It returns the first error encountered, wrapped with the
// file path.
func Run(ctx context.Context, cfg config.Data) (*Tables, error) {
	log.Printf("extract: reading datasets from %s", cfg.Dir)

	customers, err := readCSV(ctx, cfg.CustomersPath())
	if err != nil {
		return nil, fmt.Errorf("extract customers: %w", err)
	}
	orders, err := readCSV(ctx, cfg.OrdersPath())
	if err != nil {
		return nil, fmt.Errorf("extract orders: %w", err)
	}
	products, err := readJSON(ctx, cfg.ProductsPath())
	if err != nil {
		return nil, fmt.Errorf("extract products: %w", err)
	}

	log.Printf("extract: %d customers, %d products, %d orders", len(customers), len(products), len(orders))
	return &Tables{Customers: customers, Products: products, Orders: orders}, nil
}

func readCSV(ctx context.Context, path string) ([]records.Record, error) {
	rc, err := file.NewLocal(path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	_, rows, err := csvparser.ReadAll(rc, csvparser.Options{TrimSpace: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

func readJSON(ctx context.Context, path string) ([]records.Record, error) {
	rc, err := file.NewLocal(path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := jsonrec.DecodeAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
