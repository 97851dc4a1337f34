package charts

import (
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var testCustomers = []Customer{
	{ID: 1, SignupDate: day(2023, 1, 1), Location: "London", Segment: "Premium"},
	{ID: 2, SignupDate: day(2023, 1, 15), Location: "London", Segment: "Basic"},
	{ID: 3, SignupDate: day(2023, 2, 3), Location: "Edinburgh", Segment: "Basic"},
}

var testOrders = []Order{
	{ID: 1, CustomerID: 1, Date: day(2023, 2, 10), Month: "2023-02", Amount: 100},
	{ID: 2, CustomerID: 1, Date: day(2023, 3, 5), Month: "2023-03", Amount: 50},
	{ID: 3, CustomerID: 2, Date: day(2023, 3, 20), Month: "2023-03", Amount: 30},
}

/*
TestMonthlyRevenue verifies grouping, chronology, and per-month averages.
*/
func TestMonthlyRevenue(t *testing.T) {
	got := MonthlyRevenue(testOrders)
	want := []MonthAgg{
		{Month: "2023-02", Revenue: 100, Orders: 1, AvgValue: 100},
		{Month: "2023-03", Revenue: 80, Orders: 2, AvgValue: 40},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

/*
TestCustomerValue verifies per-customer totals in id order.
*/
func TestCustomerValue(t *testing.T) {
	got := CustomerValue(testOrders)
	if want := []float64{150, 30}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

/*
TestRevenueByLocation verifies the location sums come out ascending, the
order a horizontal bar chart reads bottom-up.
*/
func TestRevenueByLocation(t *testing.T) {
	orders := append(testOrders, Order{ID: 4, CustomerID: 3, Month: "2023-03", Amount: 10})
	got := RevenueByLocation(orders, testCustomers)
	want := []KV{
		{Key: "Edinburgh", Value: 10},
		{Key: "London", Value: 180},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

/*
TestAvgOrderValueBySegment verifies averages over orders, not customers.
*/
func TestAvgOrderValueBySegment(t *testing.T) {
	got := AvgOrderValueBySegment(testOrders, testCustomers)
	want := []KV{
		{Key: "Basic", Value: 30},
		{Key: "Premium", Value: 75},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

/*
TestSegmentCountsAndSignups covers the two customer-only aggregations.
*/
func TestSegmentCountsAndSignups(t *testing.T) {
	counts := SegmentCounts(testCustomers)
	wantCounts := []KV{{Key: "Basic", Value: 2}, {Key: "Premium", Value: 1}}
	if !reflect.DeepEqual(counts, wantCounts) {
		t.Fatalf("SegmentCounts: got %v want %v", counts, wantCounts)
	}

	signups := MonthlySignups(testCustomers)
	wantSignups := []KV{{Key: "2023-01", Value: 2}, {Key: "2023-02", Value: 1}}
	if !reflect.DeepEqual(signups, wantSignups) {
		t.Fatalf("MonthlySignups: got %v want %v", signups, wantSignups)
	}
}

/*
TestOrdersPerCustomer verifies sorted per-customer order counts; customers
without orders do not appear.
*/
func TestOrdersPerCustomer(t *testing.T) {
	got := OrdersPerCustomer(testOrders)
	if want := []float64{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

/*
TestAvgValueByLocationSegment verifies the cross-grouping: axes are sorted,
zero-order customers drag the average down, and empty cells stay absent.
*/
func TestAvgValueByLocationSegment(t *testing.T) {
	locations, segments, avg := AvgValueByLocationSegment(testOrders, testCustomers)
	if want := []string{"Edinburgh", "London"}; !reflect.DeepEqual(locations, want) {
		t.Fatalf("locations=%v; want %v", locations, want)
	}
	if want := []string{"Basic", "Premium"}; !reflect.DeepEqual(segments, want) {
		t.Fatalf("segments=%v; want %v", segments, want)
	}
	// Customer 3 has no orders, so Edinburgh/Basic averages to zero.
	if got := avg["Edinburgh"]["Basic"]; got != 0 {
		t.Fatalf("Edinburgh/Basic=%v; want 0", got)
	}
	if got := avg["London"]["Premium"]; got != 150 {
		t.Fatalf("London/Premium=%v; want 150", got)
	}
	if _, ok := avg["Edinburgh"]["Premium"]; ok {
		t.Fatalf("Edinburgh/Premium present; want absent with no such customers")
	}
}

/*
TestCategoryStats verifies the per-category price/margin averages come out
alphabetically.
*/
func TestCategoryStats(t *testing.T) {
	products := []Product{
		{ID: 1, Category: "Books", Price: 10, Margin: 40},
		{ID: 2, Category: "Books", Price: 30, Margin: 40},
		{ID: 3, Category: "Electronics", Price: 200, Margin: 40},
	}
	got := CategoryStats(products)
	want := []CategoryAgg{
		{Category: "Books", AvgPrice: 20, AvgMargin: 40, Count: 2},
		{Category: "Electronics", AvgPrice: 200, AvgMargin: 40, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

/*
TestMeanMedian covers the two scalar helpers including the even-length
median and the empty input.
*/
func TestMeanMedian(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil)=%v; want 0", got)
	}
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Fatalf("Mean=%v; want 2", got)
	}
	if got := Median([]float64{5, 1, 3}); got != 3 {
		t.Fatalf("Median odd=%v; want 3", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Fatalf("Median even=%v; want 2.5", got)
	}
	if got := Median(nil); got != 0 {
		t.Fatalf("Median(nil)=%v; want 0", got)
	}
}
