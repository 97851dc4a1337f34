// Package pipeline runs the extract → transform → load sequence as one
// strictly sequential batch job. Each stage completes before the next
// begins, and the first error aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"ecometl/internal/config"
	"ecometl/internal/extract"
	"ecometl/internal/load"
	"ecometl/internal/metrics"
	"ecometl/internal/storage"
	"ecometl/internal/transform"
)

// Summary reports what a completed run processed.
type Summary struct {
	Customers    int
	Products     int
	Orders       int
	TotalRevenue float64
	FirstOrder   time.Time
	LastOrder    time.Time
	Duration     time.Duration
}

// Run executes the full pipeline for cfg. now seeds the wall-clock-relative
// derived fields; binaries pass time.Now().
func Run(ctx context.Context, cfg config.Pipeline, now time.Time) (*Summary, error) {
	start := time.Now()
	log.Printf("pipeline: starting job %q", cfg.Job)

	tables, err := step(cfg.Job, "extract", func() (*extract.Tables, error) {
		return extract.Run(ctx, cfg.Data)
	})
	if err != nil {
		return nil, err
	}

	if _, err := step(cfg.Job, "transform", func() (struct{}, error) {
		return struct{}{}, transform.Run(now, tables)
	}); err != nil {
		return nil, err
	}

	if _, err := step(cfg.Job, "load", func() (struct{}, error) {
		repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DB.DSN})
		if err != nil {
			return struct{}{}, err
		}
		defer repo.Close()
		return struct{}{}, load.Run(ctx, repo, tables)
	}); err != nil {
		return nil, err
	}

	metrics.RecordRows(cfg.Job, "customers", int64(len(tables.Customers)))
	metrics.RecordRows(cfg.Job, "products", int64(len(tables.Products)))
	metrics.RecordRows(cfg.Job, "orders", int64(len(tables.Orders)))

	sum := summarize(tables)
	sum.Duration = time.Since(start)
	log.Printf("pipeline: completed in %s", sum.Duration.Truncate(time.Millisecond))
	return sum, nil
}

// step runs one stage with per-stage metrics and error context.
func step[T any](job, name string, fn func() (T, error)) (T, error) {
	start := time.Now()
	out, err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func summarize(t *extract.Tables) *Summary {
	s := &Summary{
		Customers: len(t.Customers),
		Products:  len(t.Products),
		Orders:    len(t.Orders),
	}
	for _, r := range t.Orders {
		amount, _ := r.Float64("total_amount")
		s.TotalRevenue += amount
		if date, ok := r.Time("order_date"); ok {
			if s.FirstOrder.IsZero() || date.Before(s.FirstOrder) {
				s.FirstOrder = date
			}
			if date.After(s.LastOrder) {
				s.LastOrder = date
			}
		}
	}
	return s
}
