package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"ecometl/internal/config"
	"ecometl/internal/export"
	"ecometl/internal/report"

	_ "ecometl/internal/storage/all"
)

// main runs the fixed aggregate queries against the loaded store and prints
// them as text tables. With -parquet it also writes the completed-sales
// snapshot.
func main() {
	cfgPath := flag.String("config", "configs/pipeline.json", "pipeline config JSON path")
	parquetPath := flag.String("parquet", "", "also export completed sales to this Parquet file")
	flag.Parse()

	p, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	ctx := context.Background()
	a := report.New(p.Storage.Kind, p.Storage.DB.DSN)
	results := a.RunAll(ctx, os.Stdout)

	failed := 0
	for _, r := range results {
		if r == nil {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("report: %d of %d queries failed", failed, len(results))
	}

	if *parquetPath != "" {
		n, err := export.Sales(ctx, p.Storage.Kind, p.Storage.DB.DSN, *parquetPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("Exported %d sales rows to %s\n", n, *parquetPath)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
