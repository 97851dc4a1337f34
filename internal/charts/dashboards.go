package charts

import (
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Dashboard file names, matched by downstream tooling.
const (
	RevenueDashboardFile  = "revenue_dashboard.png"
	CustomerAnalyticsFile = "customer_analytics.png"
	ProductAnalyticsFile  = "product_analytics.png"
	BusinessMetricsFile   = "business_metrics.png"
)

const (
	gridWidth  = vg.Length(1400)
	gridHeight = vg.Length(1000)
)

// Visualiser renders dashboard PNGs into Dir from a loaded view.
type Visualiser struct {
	Data *Data
	Dir  string
}

// GenerateAll renders the four dashboards and returns the written paths.
func (v *Visualiser) GenerateAll() ([]string, error) {
	steps := []struct {
		name string
		fn   func() (string, error)
	}{
		{"revenue dashboard", v.RevenueDashboard},
		{"customer analytics", v.CustomerAnalytics},
		{"product analytics", v.ProductAnalytics},
		{"business metrics", v.BusinessMetrics},
	}
	paths := make([]string, 0, len(steps))
	for _, s := range steps {
		path, err := s.fn()
		if err != nil {
			return paths, fmt.Errorf("charts: %s: %w", s.name, err)
		}
		log.Printf("charts: wrote %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// RevenueDashboard writes the 2x2 revenue overview.
func (v *Visualiser) RevenueDashboard() (string, error) {
	months := MonthlyRevenue(v.Data.Orders)
	revenue := make([]KV, len(months))
	for i, m := range months {
		revenue[i] = KV{Key: m.Month, Value: m.Revenue}
	}
	trend, err := linePlot("Monthly Revenue Trend", "Revenue", revenue)
	if err != nil {
		return "", err
	}

	clv, err := histPlot("Customer Lifetime Value Distribution", "Total Spent",
		CustomerValue(v.Data.Orders), 30, true)
	if err != nil {
		return "", err
	}

	byLocation, err := barPlot("Revenue by Location", "Revenue",
		RevenueByLocation(v.Data.Orders, v.Data.Customers), true)
	if err != nil {
		return "", err
	}

	bySegment, err := barPlot("Average Order Value by Segment", "Avg Order Value",
		AvgOrderValueBySegment(v.Data.Orders, v.Data.Customers), false)
	if err != nil {
		return "", err
	}

	path := filepath.Join(v.Dir, RevenueDashboardFile)
	grid := [][]*plot.Plot{
		{trend, clv},
		{byLocation, bySegment},
	}
	return path, writeGrid(path, grid, gridWidth, gridHeight)
}

// CustomerAnalytics writes the 2x2 customer-behavior view.
func (v *Visualiser) CustomerAnalytics() (string, error) {
	segments, err := barPlot("Customer Segments", "Customers",
		SegmentCounts(v.Data.Customers), false)
	if err != nil {
		return "", err
	}

	signups, err := linePlot("Monthly Customer Signups", "Signups",
		MonthlySignups(v.Data.Customers))
	if err != nil {
		return "", err
	}

	orders, err := histPlot("Orders per Customer", "Orders",
		OrdersPerCustomer(v.Data.Orders), 20, false)
	if err != nil {
		return "", err
	}

	locations, segNames, avg := AvgValueByLocationSegment(v.Data.Orders, v.Data.Customers)
	crossed, err := groupedBarPlot("Avg Customer Value by Location and Segment",
		"Avg Customer Value", locations, segNames,
		func(loc, seg string) float64 { return avg[loc][seg] })
	if err != nil {
		return "", err
	}

	path := filepath.Join(v.Dir, CustomerAnalyticsFile)
	grid := [][]*plot.Plot{
		{segments, signups},
		{orders, crossed},
	}
	return path, writeGrid(path, grid, gridWidth, gridHeight)
}

// ProductAnalytics writes the 2x2 catalog view.
func (v *Visualiser) ProductAnalytics() (string, error) {
	cats := CategoryStats(v.Data.Products)
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Category
	}

	priceMargin, err := groupedBarPlot("Avg Price and Margin by Category", "",
		names, []string{"Avg Price", "Avg Margin %"},
		func(cat, series string) float64 {
			for _, c := range cats {
				if c.Category != cat {
					continue
				}
				if series == "Avg Price" {
					return c.AvgPrice
				}
				return c.AvgMargin
			}
			return 0
		})
	if err != nil {
		return "", err
	}

	prices := make([]float64, len(v.Data.Products))
	for i, p := range v.Data.Products {
		prices[i] = p.Price
	}
	priceHist, err := histPlot("Price Distribution", "Price", prices, 25, true)
	if err != nil {
		return "", err
	}

	margins := make([]KV, len(cats))
	for i, c := range cats {
		margins[i] = KV{Key: c.Category, Value: c.AvgMargin}
	}
	marginBars, err := barPlot("Profit Margin by Category", "Avg Margin %", margins, false)
	if err != nil {
		return "", err
	}

	points := map[string]plotter.XYs{}
	for _, p := range v.Data.Products {
		points[p.Category] = append(points[p.Category], plotter.XY{X: p.Price, Y: p.Margin})
	}
	scatter, err := scatterPlot("Price vs Margin", "Price", "Margin %", names, points)
	if err != nil {
		return "", err
	}

	path := filepath.Join(v.Dir, ProductAnalyticsFile)
	grid := [][]*plot.Plot{
		{priceMargin, priceHist},
		{marginBars, scatter},
	}
	return path, writeGrid(path, grid, gridWidth, gridHeight)
}

// BusinessMetrics writes the single-panel key-metric summary.
func (v *Visualiser) BusinessMetrics() (string, error) {
	var revenue float64
	for _, o := range v.Data.Orders {
		revenue += o.Amount
	}
	orders := float64(len(v.Data.Orders))
	customers := float64(len(v.Data.Customers))

	avgOrder := 0.0
	if orders > 0 {
		avgOrder = revenue / orders
	}
	perCustomer := 0.0
	if customers > 0 {
		perCustomer = revenue / customers
	}

	lines := []string{
		fmt.Sprintf("Total Revenue: %.2f", revenue),
		fmt.Sprintf("Completed Orders: %d", len(v.Data.Orders)),
		fmt.Sprintf("Customers: %d", len(v.Data.Customers)),
		fmt.Sprintf("Avg Order Value: %.2f", avgOrder),
		fmt.Sprintf("Avg Customer Lifetime Value: %.2f", Mean(CustomerValue(v.Data.Orders))),
		fmt.Sprintf("Revenue per Customer: %.2f", perCustomer),
	}
	panel, err := metricsPanel("Key Business Metrics", lines)
	if err != nil {
		return "", err
	}

	path := filepath.Join(v.Dir, BusinessMetricsFile)
	grid := [][]*plot.Plot{{panel}}
	return path, writeGrid(path, grid, vg.Length(800), vg.Length(600))
}
