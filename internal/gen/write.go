package gen

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DateLayout is the serialized form of every date column in the generated
// files and in the loaded store.
const DateLayout = "2006-01-02"

// WriteAll persists the three datasets under dir: customers.csv, orders.csv
// (row-oriented text) and products.json (structured records). The directory
// is created when missing. Any failure aborts the whole write.
func WriteAll(dir string, customers []Customer, products []Product, orders []Order) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gen: create data dir: %w", err)
	}
	if err := WriteCustomersCSV(filepath.Join(dir, "customers.csv"), customers); err != nil {
		return err
	}
	if err := WriteProductsJSON(filepath.Join(dir, "products.json"), products); err != nil {
		return err
	}
	return WriteOrdersCSV(filepath.Join(dir, "orders.csv"), orders)
}

// WriteCustomersCSV writes the customer dataset as a header-led CSV file.
func WriteCustomersCSV(path string, customers []Customer) error {
	rows := make([][]string, 0, len(customers)+1)
	rows = append(rows, []string{"customer_id", "name", "email", "signup_date", "location", "age", "customer_segment"})
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.Itoa(c.CustomerID),
			c.Name,
			c.Email,
			c.SignupDate.Format(DateLayout),
			c.Location,
			strconv.Itoa(c.Age),
			c.Segment,
		})
	}
	return writeCSV(path, rows)
}

// WriteOrdersCSV writes the order dataset as a header-led CSV file.
func WriteOrdersCSV(path string, orders []Order) error {
	rows := make([][]string, 0, len(orders)+1)
	rows = append(rows, []string{"order_id", "customer_id", "order_date", "total_amount", "status"})
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.Itoa(o.OrderID),
			strconv.Itoa(o.CustomerID),
			o.OrderDate.Format(DateLayout),
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.Status,
		})
	}
	return writeCSV(path, rows)
}

// WriteProductsJSON writes the product catalog as an indented JSON array of
// records.
func WriteProductsJSON(path string, products []Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gen: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("gen: encode %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gen: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("gen: write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("gen: flush %s: %w", path, err)
	}
	return nil
}
