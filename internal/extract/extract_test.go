package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ecometl/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func testData(t *testing.T) config.Data {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "customers.csv"),
		"customer_id,name,email,signup_date,location,age,customer_segment\n"+
			"1,Customer_1,user1@email.com,2023-01-01,London,30,Standard\n")
	writeFile(t, filepath.Join(dir, "orders.csv"),
		"order_id,customer_id,order_date,total_amount,status\n"+
			"1,1,2023-03-09,123.45,Completed\n")
	writeFile(t, filepath.Join(dir, "products.json"),
		`[{"product_id":1,"name":"Books_Product_1","category":"Books","price":100,"cost":60,"stock_quantity":5}]`)
	return config.Data{
		Dir:           dir,
		CustomersFile: "customers.csv",
		ProductsFile:  "products.json",
		OrdersFile:    "orders.csv",
	}
}

/*
TestRun reads all three datasets and returns them keyed by canonical column
names.
*/
func TestRun(t *testing.T) {
	tables, err := Run(context.Background(), testData(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tables.Customers) != 1 || len(tables.Products) != 1 || len(tables.Orders) != 1 {
		t.Fatalf("counts=%d/%d/%d; want 1/1/1",
			len(tables.Customers), len(tables.Products), len(tables.Orders))
	}
	if got := tables.Customers[0]["customer_segment"]; got != "Standard" {
		t.Fatalf("customer_segment=%#v; want %q", got, "Standard")
	}
	if got := tables.Orders[0]["total_amount"]; got != "123.45" {
		t.Fatalf("total_amount=%#v; want the raw string %q", got, "123.45")
	}
}

/*
TestRun_MissingFile verifies extraction is all-or-nothing: one absent file
fails the step with its path in the error.
*/
func TestRun_MissingFile(t *testing.T) {
	cfg := testData(t)
	if err := os.Remove(cfg.ProductsPath()); err != nil {
		t.Fatalf("remove products.json: %v", err)
	}

	_, err := Run(context.Background(), cfg)
	if err == nil {
		t.Fatalf("Run succeeded with products.json absent; want error")
	}
	if !strings.Contains(err.Error(), "extract products") {
		t.Fatalf("error=%q; want it to name the products step", err)
	}
}

/*
TestRun_MalformedCSV verifies a row-width mismatch aborts extraction.
*/
func TestRun_MalformedCSV(t *testing.T) {
	cfg := testData(t)
	writeFile(t, cfg.OrdersPath(),
		"order_id,customer_id,order_date,total_amount,status\n1,1,2023-03-09\n")

	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatalf("Run succeeded with short order row; want error")
	}
}
