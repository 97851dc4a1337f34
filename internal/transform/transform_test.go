package transform

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ecometl/internal/extract"
	"ecometl/pkg/records"
)

func customerRow(id, signup string) records.Record {
	return records.Record{
		"customer_id":      id,
		"name":             "Customer_" + id,
		"email":            "user" + id + "@email.com",
		"signup_date":      signup,
		"location":         "London",
		"age":              "30",
		"customer_segment": "Standard",
	}
}

func productRow(id string, price, cost json.Number) records.Record {
	return records.Record{
		"product_id":     json.Number(id),
		"name":           "Books_Product_" + id,
		"category":       "Books",
		"price":          price,
		"cost":           cost,
		"stock_quantity": json.Number("5"),
	}
}

func orderRow(id, date, amount, status string) records.Record {
	return records.Record{
		"order_id":     id,
		"customer_id":  "1",
		"order_date":   date,
		"total_amount": amount,
		"status":       status,
	}
}

/*
TestRun_Derivations verifies coercion to typed values and all four derived
columns against a fixed "now".
*/
func TestRun_Derivations(t *testing.T) {
	now := time.Date(2023, time.June, 15, 12, 0, 0, 0, time.UTC)
	tables := &extract.Tables{
		Customers: []records.Record{customerRow("1", "2023-01-01")},
		Products:  []records.Record{productRow("1", "100", "60")},
		Orders:    []records.Record{orderRow("1", "2023-03-09", "123.45", "Completed")},
	}

	if err := Run(now, tables); err != nil {
		t.Fatalf("Run: %v", err)
	}

	c := tables.Customers[0]
	if got, ok := c.Int64("customer_id"); !ok || got != 1 {
		t.Fatalf("customer_id=%#v; want int64 1", c["customer_id"])
	}
	if got := c["days_since_signup"]; got != int64(165) {
		t.Fatalf("days_since_signup=%#v; want 165", got)
	}

	p := tables.Products[0]
	if got := p["profit_margin"]; got != 40.0 {
		t.Fatalf("profit_margin=%#v; want 40", got)
	}

	o := tables.Orders[0]
	if got := o["order_month"]; got != "2023-03" {
		t.Fatalf("order_month=%#v; want %q", got, "2023-03")
	}
	if got := o["order_year"]; got != int64(2023) {
		t.Fatalf("order_year=%#v; want 2023", got)
	}
	if got, ok := o.Float64("total_amount"); !ok || got != 123.45 {
		t.Fatalf("total_amount=%#v; want 123.45", o["total_amount"])
	}
	if _, ok := o.Time("order_date"); !ok {
		t.Fatalf("order_date=%#v; want time.Time", o["order_date"])
	}
}

/*
TestRun_Errors verifies the stage fails fast: bad dates, missing columns,
nulls in required columns, and zero-price products all abort.
*/
func TestRun_Errors(t *testing.T) {
	now := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	valid := func() *extract.Tables {
		return &extract.Tables{
			Customers: []records.Record{customerRow("1", "2023-01-01")},
			Products:  []records.Record{productRow("1", "100", "60")},
			Orders:    []records.Record{orderRow("1", "2023-03-09", "10.00", "Pending")},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*extract.Tables)
		wantSub string
	}{
		{
			"bad signup date",
			func(t *extract.Tables) { t.Customers[0]["signup_date"] = "01/05/2023" },
			"not a date",
		},
		{
			"missing column",
			func(t *extract.Tables) { delete(t.Orders[0], "status") },
			`missing column "status"`,
		},
		{
			"null required column",
			func(t *extract.Tables) { t.Customers[0]["customer_id"] = nil },
			"null in non-null column",
		},
		{
			"zero price",
			func(t *extract.Tables) {
				t.Products[0]["price"] = json.Number("0")
				t.Products[0]["cost"] = json.Number("0")
			},
			"zero price",
		},
		{
			"non-numeric amount",
			func(t *extract.Tables) { t.Orders[0]["total_amount"] = "lots" },
			"not a number",
		},
	}
	for _, c := range cases {
		tables := valid()
		c.mutate(tables)
		err := Run(now, tables)
		if err == nil {
			t.Fatalf("%s: Run succeeded; want error", c.name)
		}
		if !strings.Contains(err.Error(), c.wantSub) {
			t.Fatalf("%s: error=%q; want substring %q", c.name, err, c.wantSub)
		}
	}
}

/*
TestCheck verifies the quality report counts missing cells and whole-row
customer duplicates, and that anomalies do not fail the run.
*/
func TestCheck(t *testing.T) {
	now := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)
	dup := customerRow("1", "2023-01-01")
	tables := &extract.Tables{
		Customers: []records.Record{customerRow("1", "2023-01-01"), dup, customerRow("2", "2023-01-02")},
		Products:  []records.Record{productRow("1", "100", "60")},
		Orders:    []records.Record{orderRow("1", "2023-03-09", "10.00", "Completed")},
	}

	if err := Run(now, tables); err != nil {
		t.Fatalf("Run: %v", err)
	}

	tables.Customers[2]["location"] = nil
	rep := Check(tables)
	if rep.DuplicateCustomers != 1 {
		t.Fatalf("DuplicateCustomers=%d; want 1", rep.DuplicateCustomers)
	}
	if got := rep.MissingCells["customers"]; got != 1 {
		t.Fatalf("MissingCells[customers]=%d; want 1", got)
	}
	if rep.Clean() {
		t.Fatalf("Clean()=true; want false")
	}

	clean := Check(&extract.Tables{
		Customers: []records.Record{customerRow("3", "2023-01-03")},
	})
	// The single fresh row has no derived columns yet; absence is not a
	// missing cell.
	if !clean.Clean() {
		t.Fatalf("Clean()=false for anomaly-free tables: %+v", clean)
	}
}
