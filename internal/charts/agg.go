package charts

import (
	"sort"
)

// MonthAgg is one month's completed-order aggregate.
type MonthAgg struct {
	Month    string
	Revenue  float64
	Orders   int
	AvgValue float64
}

// MonthlyRevenue groups completed orders by month bucket, chronologically.
func MonthlyRevenue(orders []Order) []MonthAgg {
	byMonth := map[string]*MonthAgg{}
	for _, o := range orders {
		m := byMonth[o.Month]
		if m == nil {
			m = &MonthAgg{Month: o.Month}
			byMonth[o.Month] = m
		}
		m.Revenue += o.Amount
		m.Orders++
	}
	out := make([]MonthAgg, 0, len(byMonth))
	for _, m := range byMonth {
		m.AvgValue = m.Revenue / float64(m.Orders)
		out = append(out, *m)
	}
	// "2006-01" month buckets sort chronologically as strings.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CustomerValue sums completed-order amounts per customer (the customer
// lifetime value) and returns the values in customer-id order.
func CustomerValue(orders []Order) []float64 {
	byCustomer := map[int64]float64{}
	for _, o := range orders {
		byCustomer[o.CustomerID] += o.Amount
	}
	ids := make([]int64, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = byCustomer[id]
	}
	return out
}

// KV is a label/value pair for bar charts.
type KV struct {
	Key   string
	Value float64
}

// RevenueByLocation sums completed revenue per customer location, ascending
// by revenue (for a horizontal bar chart reading bottom-up).
func RevenueByLocation(orders []Order, customers []Customer) []KV {
	location := make(map[int64]string, len(customers))
	for _, c := range customers {
		location[c.ID] = c.Location
	}
	sums := map[string]float64{}
	for _, o := range orders {
		if loc, ok := location[o.CustomerID]; ok {
			sums[loc] += o.Amount
		}
	}
	out := toSortedKVs(sums)
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// AvgOrderValueBySegment averages completed order amounts per customer
// segment.
func AvgOrderValueBySegment(orders []Order, customers []Customer) []KV {
	segment := make(map[int64]string, len(customers))
	for _, c := range customers {
		segment[c.ID] = c.Segment
	}
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, o := range orders {
		seg, ok := segment[o.CustomerID]
		if !ok {
			continue
		}
		sums[seg] += o.Amount
		counts[seg]++
	}
	avgs := make(map[string]float64, len(sums))
	for seg, sum := range sums {
		avgs[seg] = sum / float64(counts[seg])
	}
	return toSortedKVs(avgs)
}

// SegmentCounts counts customers per segment.
func SegmentCounts(customers []Customer) []KV {
	counts := map[string]float64{}
	for _, c := range customers {
		counts[c.Segment]++
	}
	return toSortedKVs(counts)
}

// MonthlySignups counts new customers per signup month, chronologically.
func MonthlySignups(customers []Customer) []KV {
	counts := map[string]float64{}
	for _, c := range customers {
		counts[c.SignupDate.Format("2006-01")]++
	}
	return toSortedKVs(counts)
}

// OrdersPerCustomer returns the completed-order count of every ordering
// customer.
func OrdersPerCustomer(orders []Order) []float64 {
	counts := map[int64]int{}
	for _, o := range orders {
		counts[o.CustomerID]++
	}
	out := make([]float64, 0, len(counts))
	for _, n := range counts {
		out = append(out, float64(n))
	}
	sort.Float64s(out)
	return out
}

// AvgValueByLocationSegment averages customer value per location and
// segment. Customers without completed orders count as zero, matching the
// geographic query's left-join semantics.
func AvgValueByLocationSegment(orders []Order, customers []Customer) (locations, segments []string, avg map[string]map[string]float64) {
	value := map[int64]float64{}
	for _, o := range orders {
		value[o.CustomerID] += o.Amount
	}

	sums := map[string]map[string]float64{}
	counts := map[string]map[string]int{}
	locSet := map[string]struct{}{}
	segSet := map[string]struct{}{}
	for _, c := range customers {
		locSet[c.Location] = struct{}{}
		segSet[c.Segment] = struct{}{}
		if sums[c.Location] == nil {
			sums[c.Location] = map[string]float64{}
			counts[c.Location] = map[string]int{}
		}
		sums[c.Location][c.Segment] += value[c.ID]
		counts[c.Location][c.Segment]++
	}

	locations = sortedKeys(locSet)
	segments = sortedKeys(segSet)
	avg = map[string]map[string]float64{}
	for _, loc := range locations {
		avg[loc] = map[string]float64{}
		for _, seg := range segments {
			if n := counts[loc][seg]; n > 0 {
				avg[loc][seg] = sums[loc][seg] / float64(n)
			}
		}
	}
	return locations, segments, avg
}

// CategoryAgg is one product category's aggregate.
type CategoryAgg struct {
	Category  string
	AvgPrice  float64
	AvgMargin float64
	Count     int
}

// CategoryStats aggregates the product catalog per category,
// alphabetically.
func CategoryStats(products []Product) []CategoryAgg {
	byCat := map[string]*CategoryAgg{}
	for _, p := range products {
		c := byCat[p.Category]
		if c == nil {
			c = &CategoryAgg{Category: p.Category}
			byCat[p.Category] = c
		}
		c.AvgPrice += p.Price
		c.AvgMargin += p.Margin
		c.Count++
	}
	out := make([]CategoryAgg, 0, len(byCat))
	for _, c := range byCat {
		c.AvgPrice /= float64(c.Count)
		c.AvgMargin /= float64(c.Count)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Mean returns the arithmetic mean of vs, or 0 for an empty slice.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Median returns the median of vs, or 0 for an empty slice.
func Median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func toSortedKVs(m map[string]float64) []KV {
	out := make([]KV, 0, len(m))
	for k, v := range m {
		out = append(out, KV{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
