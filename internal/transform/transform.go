// Package transform coerces the extracted tables into typed form, derives the
// enrichment columns, and runs the data-quality checks.
//
// The stage is pure relative to its inputs except for days_since_signup,
// which is computed against a caller-supplied "now" so that binaries use
// wall-clock time while tests pass a fixed instant.
package transform

import (
	"fmt"
	"log"
	"math"
	"time"

	"ecometl/internal/extract"
	"ecometl/internal/schema"
	"ecometl/pkg/records"
)

// DateLayout matches the serialized date format written by the generator.
const DateLayout = "2006-01-02"

// Run coerces date and numeric columns in place, adds the derived fields, and
// logs data-quality warnings. A missing or un-coercible column fails the
// stage.
func Run(now time.Time, t *extract.Tables) error {
	log.Printf("transform: coercing and enriching tables")

	if err := coerceTable(t.Customers, schema.Customers); err != nil {
		return err
	}
	if err := coerceTable(t.Products, schema.Products); err != nil {
		return err
	}
	if err := coerceTable(t.Orders, schema.Orders); err != nil {
		return err
	}

	for _, r := range t.Customers {
		signup, _ := r.Time("signup_date")
		r["days_since_signup"] = int64(now.Sub(signup).Hours() / 24)
	}
	for _, r := range t.Orders {
		date, _ := r.Time("order_date")
		r["order_month"] = date.Format("2006-01")
		r["order_year"] = int64(date.Year())
	}
	for _, r := range t.Products {
		price, _ := r.Float64("price")
		cost, _ := r.Float64("cost")
		if price == 0 {
			return fmt.Errorf("transform: products: product %v has zero price", r["product_id"])
		}
		r["profit_margin"] = round2((price - cost) / price * 100)
	}

	report := Check(t)
	report.Log()

	log.Printf("transform: completed")
	return nil
}

// coerceTable converts every base column of tbl to its schema kind. Derived
// columns are skipped; they do not exist yet.
func coerceTable(rows []records.Record, tbl schema.Table) error {
	for _, col := range tbl.Base() {
		for i, r := range rows {
			v, ok := r[col.Name]
			if !ok {
				return fmt.Errorf("transform: %s: row %d: missing column %q", tbl.Name, i, col.Name)
			}
			if v == nil {
				if col.NotNull {
					return fmt.Errorf("transform: %s: row %d: null in non-null column %q", tbl.Name, i, col.Name)
				}
				continue
			}
			coerced, err := coerceValue(r, col)
			if err != nil {
				return fmt.Errorf("transform: %s: row %d: column %q: %w", tbl.Name, i, col.Name, err)
			}
			r[col.Name] = coerced
		}
	}
	return nil
}

func coerceValue(r records.Record, col schema.Column) (any, error) {
	switch col.Kind {
	case schema.KindInt:
		if n, ok := r.Int64(col.Name); ok {
			return n, nil
		}
		return nil, fmt.Errorf("%v not an integer", r[col.Name])
	case schema.KindReal:
		if f, ok := r.Float64(col.Name); ok {
			return f, nil
		}
		return nil, fmt.Errorf("%v not a number", r[col.Name])
	case schema.KindDate:
		if t, ok := r.Time(col.Name); ok {
			return t, nil
		}
		s := r.String(col.Name)
		if t, err := time.Parse(DateLayout, s); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		return nil, fmt.Errorf("%q not a date", s)
	default:
		if s, ok := r[col.Name].(string); ok {
			return s, nil
		}
		return fmt.Sprint(r[col.Name]), nil
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
