// Package gen produces the synthetic e-commerce datasets: customers,
// products, and orders. All randomness flows from a single seeded source so a
// given seed reproduces the exact same datasets.
package gen

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DefaultSeed reproduces the canonical dataset used throughout the docs and
// tests.
const DefaultSeed = 42

var (
	locations  = []string{"London", "Manchester", "Birmingham", "Edinburgh"}
	categories = []string{"Electronics", "Clothing", "Books", "Home", "Sports"}

	segments       = []string{"Premium", "Standard", "Basic"}
	segmentWeights = []float64{0.20, 0.50, 0.30}

	statuses      = []string{"Completed", "Pending", "Cancelled"}
	statusWeights = []float64{0.85, 0.10, 0.05}

	// Orders carry 1–5 line items, weighted toward fewer items.
	itemCounts       = []int{1, 2, 3, 4, 5}
	itemCountWeights = []float64{0.40, 0.30, 0.20, 0.08, 0.02}
)

// signupEpoch is the first signup date; customer N signs up N-1 days later.
var signupEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Customer is one synthetic customer row.
type Customer struct {
	CustomerID int
	Name       string
	Email      string
	SignupDate time.Time
	Location   string
	Age        int
	Segment    string
}

// Product is one synthetic catalog row. Cost is always 60% of price, i.e. a
// fixed 40% margin.
type Product struct {
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	StockQuantity int     `json:"stock_quantity"`
}

// Order is one synthetic order row. TotalAmount is the rounded sum of
// price × quantity over the order's distinct line items; the items themselves
// are not persisted.
type Order struct {
	OrderID     int
	CustomerID  int
	OrderDate   time.Time
	TotalAmount float64
	Status      string
}

// Generator produces the three datasets from one seeded random source.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Customers generates n customers with sequential identifiers starting at 1.
func (g *Generator) Customers(n int) []Customer {
	out := make([]Customer, n)
	for i := range out {
		id := i + 1
		out[i] = Customer{
			CustomerID: id,
			Name:       fmt.Sprintf("Customer_%d", id),
			Email:      fmt.Sprintf("user%d@email.com", id),
			SignupDate: signupEpoch.AddDate(0, 0, i),
			Location:   locations[g.rng.Intn(len(locations))],
			Age:        18 + g.rng.Intn(52),
			Segment:    g.weighted(segments, segmentWeights),
		}
	}
	return out
}

// Products generates n catalog products with sequential identifiers.
func (g *Generator) Products(n int) []Product {
	out := make([]Product, n)
	for i := range out {
		id := i + 1
		category := categories[g.rng.Intn(len(categories))]
		price := round2(10 + g.rng.Float64()*490)
		out[i] = Product{
			ProductID:     id,
			Name:          fmt.Sprintf("%s_Product_%d", category, id),
			Category:      category,
			Price:         price,
			Cost:          round2(price * 0.6),
			StockQuantity: g.rng.Intn(100),
		}
	}
	return out
}

// Orders generates n orders against the given customers and products. Each
// order picks a random customer, a weighted line-item count, and that many
// distinct products at quantities between 1 and 3; the total is the rounded
// sum over the items. Dates fall within the year following the signup epoch.
func (g *Generator) Orders(customers []Customer, products []Product, n int) []Order {
	out := make([]Order, n)
	for i := range out {
		customer := customers[g.rng.Intn(len(customers))]
		out[i] = Order{
			OrderID:     i + 1,
			CustomerID:  customer.CustomerID,
			OrderDate:   signupEpoch.AddDate(0, 0, g.rng.Intn(365)),
			TotalAmount: g.orderTotal(products),
			Status:      g.weighted(statuses, statusWeights),
		}
	}
	return out
}

// orderTotal draws the line items for one order and returns the rounded
// total. Products are selected without repetition.
func (g *Generator) orderTotal(products []Product) float64 {
	count := g.weightedInt(itemCounts, itemCountWeights)
	if count > len(products) {
		count = len(products)
	}
	total := 0.0
	for _, idx := range g.rng.Perm(len(products))[:count] {
		quantity := 1 + g.rng.Intn(3)
		total += products[idx].Price * float64(quantity)
	}
	return round2(total)
}

// weighted draws one choice according to the given probability weights.
func (g *Generator) weighted(choices []string, weights []float64) string {
	return choices[g.weightedIndex(weights)]
}

func (g *Generator) weightedInt(choices []int, weights []float64) int {
	return choices[g.weightedIndex(weights)]
}

func (g *Generator) weightedIndex(weights []float64) int {
	x := g.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	return len(weights) - 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
