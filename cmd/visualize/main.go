package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"ecometl/internal/charts"
	"ecometl/internal/config"

	_ "ecometl/internal/storage/all"
)

// main reloads the store view and renders the dashboard PNGs.
func main() {
	cfgPath := flag.String("config", "configs/pipeline.json", "pipeline config JSON path")
	outDir := flag.String("out", "", "output directory for PNGs; overrides config")
	flag.Parse()

	p, err := config.Load(*cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	dir := *outDir
	if dir == "" {
		dir = p.Charts.OutDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fatalf("create output dir: %v", err)
	}

	ctx := context.Background()
	data, err := charts.LoadData(ctx, p.Storage.Kind, p.Storage.DB.DSN)
	if err != nil {
		log.Fatalf("%v", err)
	}

	v := &charts.Visualiser{Data: data, Dir: dir}
	paths, err := v.GenerateAll()
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf("Wrote %d dashboards to %s\n", len(paths), dir)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
