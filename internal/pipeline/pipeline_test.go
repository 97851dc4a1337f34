package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecometl/internal/config"
	"ecometl/internal/gen"
	"ecometl/internal/storage"

	_ "ecometl/internal/storage/all"
)

// setup generates a small dataset and returns a config pointing at it with a
// temp sqlite store.
func setup(t *testing.T, orders int) config.Pipeline {
	t.Helper()
	dir := t.TempDir()

	g := gen.New(gen.DefaultSeed)
	customers := g.Customers(25)
	products := g.Products(10)
	ords := g.Orders(customers, products, orders)
	if err := gen.WriteAll(filepath.Join(dir, "data"), customers, products, ords); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	cfg := config.Default()
	cfg.Data.Dir = filepath.Join(dir, "data")
	cfg.Storage.DB.DSN = filepath.Join(dir, "ecommerce.db")
	return cfg
}

/*
TestRun_EndToEnd drives generate → extract → transform → load and checks
the loaded store: row counts, derived columns present, indexes created, and
the summary's totals.
*/
func TestRun_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t, 120)
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	sum, err := Run(ctx, cfg, now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Customers != 25 || sum.Products != 10 || sum.Orders != 120 {
		t.Fatalf("summary counts=%d/%d/%d; want 25/10/120",
			sum.Customers, sum.Products, sum.Orders)
	}
	if sum.TotalRevenue <= 0 {
		t.Fatalf("TotalRevenue=%v; want > 0", sum.TotalRevenue)
	}
	if sum.FirstOrder.After(sum.LastOrder) {
		t.Fatalf("FirstOrder=%v after LastOrder=%v", sum.FirstOrder, sum.LastOrder)
	}

	db, err := storage.OpenDB(cfg.Storage.Kind, cfg.Storage.DB.DSN)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	for table, want := range map[string]int{"customers": 25, "products": 10, "orders": 120} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != want {
			t.Fatalf("%s rows=%d; want %d", table, n, want)
		}
	}

	// Derived columns made it into the store with sane values.
	var days int64
	if err := db.QueryRow("SELECT days_since_signup FROM customers WHERE customer_id = 1").Scan(&days); err != nil {
		t.Fatalf("select days_since_signup: %v", err)
	}
	// Customer 1 signs up 2023-01-01; now is 2024-02-01.
	if days != 396 {
		t.Fatalf("days_since_signup=%d; want 396", days)
	}
	var margin float64
	if err := db.QueryRow("SELECT profit_margin FROM products WHERE product_id = 1").Scan(&margin); err != nil {
		t.Fatalf("select profit_margin: %v", err)
	}
	if margin != 40.0 {
		t.Fatalf("profit_margin=%v; want 40 with cost at 60%% of price", margin)
	}

	var indexes int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'").Scan(&indexes); err != nil {
		t.Fatalf("count indexes: %v", err)
	}
	if indexes != 4 {
		t.Fatalf("indexes=%d; want 4", indexes)
	}
}

/*
TestRun_Rerun verifies a second run fully replaces the store rather than
appending.
*/
func TestRun_Rerun(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t, 60)
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	if _, err := Run(ctx, cfg, now); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := Run(ctx, cfg, now); err != nil {
		t.Fatalf("Run (again): %v", err)
	}

	db, err := storage.OpenDB(cfg.Storage.Kind, cfg.Storage.DB.DSN)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if n != 60 {
		t.Fatalf("orders after rerun=%d; want 60", n)
	}
}

/*
TestRun_MissingSource verifies a missing source file fails the extract step
and nothing is loaded.
*/
func TestRun_MissingSource(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t, 10)
	if err := os.Remove(cfg.Data.ProductsPath()); err != nil {
		t.Fatalf("remove products.json: %v", err)
	}

	if _, err := Run(ctx, cfg, time.Now()); err == nil {
		t.Fatalf("Run succeeded without products.json; want error")
	}
	if _, err := os.Stat(cfg.Storage.DB.DSN); !os.IsNotExist(err) {
		t.Fatalf("store file exists after failed extract; want untouched")
	}
}
