// Package charts renders the four dashboard images from a loaded store. It
// reloads a filtered view (all customers and products, completed orders
// only), re-applies date parsing, and drives gonum/plot; every aggregation
// here mirrors one already expressed in SQL by the report package.
package charts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecometl/internal/storage"
)

const dateLayout = "2006-01-02"

// Customer is the slice of the customers table the dashboards need.
type Customer struct {
	ID         int64
	SignupDate time.Time
	Location   string
	Segment    string
}

// Product is the slice of the products table the dashboards need.
type Product struct {
	ID       int64
	Category string
	Price    float64
	Margin   float64
}

// Order is one completed order.
type Order struct {
	ID         int64
	CustomerID int64
	Date       time.Time
	Month      string
	Amount     float64
}

// Data holds the reloaded view.
type Data struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
}

// LoadData reloads the dashboard view from the store. Only completed orders
// are read; they are the revenue-bearing ones.
func LoadData(ctx context.Context, kind, dsn string) (*Data, error) {
	db, err := storage.OpenDB(kind, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	d := &Data{}
	if d.Customers, err = loadCustomers(ctx, db); err != nil {
		return nil, fmt.Errorf("charts: load customers: %w", err)
	}
	if d.Products, err = loadProducts(ctx, db); err != nil {
		return nil, fmt.Errorf("charts: load products: %w", err)
	}
	if d.Orders, err = loadOrders(ctx, db); err != nil {
		return nil, fmt.Errorf("charts: load orders: %w", err)
	}
	return d, nil
}

func loadCustomers(ctx context.Context, db *sql.DB) ([]Customer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT customer_id, signup_date, location, customer_segment FROM customers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		var signup string
		if err := rows.Scan(&c.ID, &signup, &c.Location, &c.Segment); err != nil {
			return nil, err
		}
		if c.SignupDate, err = time.Parse(dateLayout, signup); err != nil {
			return nil, fmt.Errorf("customer %d: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func loadProducts(ctx context.Context, db *sql.DB) ([]Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT product_id, category, price, profit_margin FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Category, &p.Price, &p.Margin); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadOrders(ctx context.Context, db *sql.DB) ([]Order, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT order_id, customer_id, order_date, order_month, total_amount
		 FROM orders WHERE status = 'Completed'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		var date string
		if err := rows.Scan(&o.ID, &o.CustomerID, &date, &o.Month, &o.Amount); err != nil {
			return nil, err
		}
		if o.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("order %d: %w", o.ID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
