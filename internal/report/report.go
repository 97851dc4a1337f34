// Package report runs the fixed aggregate business queries against the
// loaded store and renders their results as aligned text tables.
//
// Failure isolation is deliberate: every query opens its own short-lived
// connection and a failing query yields a nil result with a logged error
// while its siblings continue. The reporting layer is the one place in the
// system where partial success is intended.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"ecometl/internal/storage"
)

// Analyzer runs the reporting queries against one configured store.
type Analyzer struct {
	Kind string
	DSN  string
}

// New returns an Analyzer for the given backend kind and DSN.
func New(kind, dsn string) *Analyzer { return &Analyzer{Kind: kind, DSN: dsn} }

// Result is one query's tabular output, every cell already formatted.
type Result struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// BasicStats returns row counts per table plus the completed-order count.
func (a *Analyzer) BasicStats(ctx context.Context) *Result {
	return a.run(ctx, "Database Overview", `
		SELECT 'Customers' AS table_name, COUNT(*) AS count FROM customers
		UNION ALL
		SELECT 'Products' AS table_name, COUNT(*) AS count FROM products
		UNION ALL
		SELECT 'Orders' AS table_name, COUNT(*) AS count FROM orders
		UNION ALL
		SELECT 'Completed Orders' AS table_name, COUNT(*) AS count
		FROM orders WHERE status = 'Completed'`)
}

// MonthlyRevenue returns revenue, order count, and average order value per
// month over completed orders, in chronological order.
func (a *Analyzer) MonthlyRevenue(ctx context.Context) *Result {
	return a.run(ctx, "Monthly Revenue", `
		SELECT
			order_month,
			ROUND(SUM(total_amount), 2) AS revenue,
			COUNT(*) AS order_count,
			ROUND(AVG(total_amount), 2) AS avg_order_value
		FROM orders
		WHERE status = 'Completed'
		GROUP BY order_month
		ORDER BY order_month`)
}

// CustomerSegmentation returns customer count and average completed spend per
// segment, by descending average spend. Customers with no completed orders
// contribute zero spend.
func (a *Analyzer) CustomerSegmentation(ctx context.Context) *Result {
	return a.run(ctx, "Customer Segments", `
		SELECT
			customer_segment,
			COUNT(*) AS customer_count,
			ROUND(AVG(CASE WHEN total_spent IS NULL THEN 0 ELSE total_spent END), 2) AS avg_spent
		FROM customers c
		LEFT JOIN (
			SELECT customer_id, SUM(total_amount) AS total_spent
			FROM orders
			WHERE status = 'Completed'
			GROUP BY customer_id
		) o ON c.customer_id = o.customer_id
		GROUP BY customer_segment
		ORDER BY avg_spent DESC`)
}

// GeographicAnalysis returns customer count, completed order count, and
// completed revenue per location, by descending revenue. Locations whose
// customers have no orders still appear with zero revenue.
func (a *Analyzer) GeographicAnalysis(ctx context.Context) *Result {
	return a.run(ctx, "Geographic Performance", `
		SELECT
			c.location,
			COUNT(DISTINCT c.customer_id) AS customer_count,
			COUNT(o.order_id) AS total_orders,
			ROUND(COALESCE(SUM(o.total_amount), 0), 2) AS total_revenue
		FROM customers c
		LEFT JOIN orders o ON c.customer_id = o.customer_id AND o.status = 'Completed'
		GROUP BY c.location
		ORDER BY total_revenue DESC`)
}

// TopRevenueMonths returns the five highest-revenue months over completed
// orders.
func (a *Analyzer) TopRevenueMonths(ctx context.Context) *Result {
	return a.run(ctx, "Top Revenue Months", `
		SELECT
			order_month,
			ROUND(SUM(total_amount), 2) AS revenue,
			COUNT(*) AS orders
		FROM orders
		WHERE status = 'Completed'
		GROUP BY order_month
		ORDER BY revenue DESC
		LIMIT 5`)
}

// RunAll executes every query and writes the non-nil results to w. It
// returns the results in execution order, nil entries included, so callers
// can inspect partial success.
func (a *Analyzer) RunAll(ctx context.Context, w io.Writer) []*Result {
	results := []*Result{
		a.BasicStats(ctx),
		a.MonthlyRevenue(ctx),
		a.CustomerSegmentation(ctx),
		a.GeographicAnalysis(ctx),
		a.TopRevenueMonths(ctx),
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		if err := res.Write(w); err != nil {
			log.Printf("report: render: %v", err)
		}
	}
	return results
}

// run executes one query on its own connection. Errors are logged, not
// raised; the caller receives nil.
func (a *Analyzer) run(ctx context.Context, name, query string) *Result {
	log.Printf("report: running %s", name)
	res, err := a.query(ctx, name, query)
	if err != nil {
		log.Printf("report: %s failed: %v", name, err)
		return nil
	}
	log.Printf("report: %s completed, %d rows", name, len(res.Rows))
	return res
}

func (a *Analyzer) query(ctx context.Context, name, query string) (*Result, error) {
	db, err := storage.OpenDB(a.Kind, a.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Name: name, Columns: cols}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}

// Write renders the result as an aligned text table.
func (r *Result) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", r.Name); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeRow(tw, r.Columns)
	for _, row := range r.Rows {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
