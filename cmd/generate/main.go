package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ecometl/internal/gen"
)

// main generates the synthetic source datasets: customers.csv,
// products.json, and orders.csv.
func main() {
	var (
		customers int
		products  int
		orders    int
		seed      int64
		dir       string
	)

	flag.IntVar(&customers, "customers", 1000, "number of customers to generate")
	flag.IntVar(&products, "products", 100, "number of products to generate")
	flag.IntVar(&orders, "orders", 5000, "number of orders to generate")
	flag.Int64Var(&seed, "seed", gen.DefaultSeed, "random seed; identical seeds reproduce identical datasets")
	flag.StringVar(&dir, "data", "data", "output directory")
	flag.Parse()

	if customers <= 0 || products <= 0 || orders < 0 {
		fatalf("counts must be positive (customers=%d products=%d orders=%d)", customers, products, orders)
	}

	g := gen.New(seed)
	cs := g.Customers(customers)
	ps := g.Products(products)
	ords := g.Orders(cs, ps, orders)

	if err := gen.WriteAll(dir, cs, ps, ords); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("Generated %d customers, %d products, %d orders in %s\n",
		len(cs), len(ps), len(ords), dir)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
