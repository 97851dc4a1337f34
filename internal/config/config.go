// Package config defines the canonical, JSON-serializable configuration model
// for the pipeline binaries. It is intentionally small and explicit so that a
// config file can be loaded from disk and passed through the program without
// additional glue code.
//
// Resolution order is flag default → JSON file → environment (12-factor
// style). A .env file in the working directory is honored when present.
//
// Example (configs/pipeline.json):
//
//	{
//	  "job": "ecommerce",
//	  "data":    { "dir": "data" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "ecommerce.db" } },
//	  "charts":  { "out_dir": "." },
//	  "metrics": { "backend": "none" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Pipeline is the top-level configuration decoded from a pipeline file.
type Pipeline struct {
	// Job identifies the run; it labels metrics and log lines.
	Job string `json:"job"`

	Data    Data    `json:"data"`
	Storage Storage `json:"storage"`
	Charts  Charts  `json:"charts"`
	Metrics Metrics `json:"metrics"`
}

// Data locates the generated source files.
type Data struct {
	// Dir is the directory holding the generated datasets.
	Dir string `json:"dir"`

	// File names within Dir. Defaults match the generator's output.
	CustomersFile string `json:"customers_file"`
	ProductsFile  string `json:"products_file"`
	OrdersFile    string `json:"orders_file"`
}

// Storage selects the relational store the loader writes and the analyzers
// read.
type Storage struct {
	// Kind selects the backend: "sqlite" (default) or "postgres".
	Kind string `json:"kind"`

	DB DBConfig `json:"db"`
}

// DBConfig configures the store connection.
type DBConfig struct {
	// DSN is the connection string. For sqlite this is a file path such as
	// "ecommerce.db"; for postgres a pgx-style URL.
	DSN string `json:"dsn"`
}

// Charts configures the visualisation output.
type Charts struct {
	// OutDir is where the dashboard PNGs are written.
	OutDir string `json:"out_dir"`
}

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is "none" (default) or "pushgateway".
	Backend string `json:"backend"`

	// PushgatewayURL is the Pushgateway base URL when Backend is
	// "pushgateway".
	PushgatewayURL string `json:"pushgateway_url"`
}

// CustomersPath returns the full path of the customers CSV.
func (d Data) CustomersPath() string { return filepath.Join(d.Dir, d.CustomersFile) }

// ProductsPath returns the full path of the products JSON.
func (d Data) ProductsPath() string { return filepath.Join(d.Dir, d.ProductsFile) }

// OrdersPath returns the full path of the orders CSV.
func (d Data) OrdersPath() string { return filepath.Join(d.Dir, d.OrdersFile) }

// Default returns a Pipeline populated with the defaults that reproduce a
// plain local run: data/ for the source files, ecommerce.db for the store,
// charts in the working directory, metrics disabled.
func Default() Pipeline {
	return Pipeline{
		Job: "ecommerce",
		Data: Data{
			Dir:           "data",
			CustomersFile: "customers.csv",
			ProductsFile:  "products.json",
			OrdersFile:    "orders.csv",
		},
		Storage: Storage{Kind: "sqlite", DB: DBConfig{DSN: "ecommerce.db"}},
		Charts:  Charts{OutDir: "."},
		Metrics: Metrics{Backend: "none"},
	}
}

// Load reads the pipeline config from path, filling any field left empty with
// its default. A missing file is not an error: defaults apply. Environment
// variables override the file:
//
//	ECOM_DATA_DIR, ECOM_DB_KIND, ECOM_DB_DSN, ECOM_CHARTS_DIR,
//	ECOM_METRICS_BACKEND, ECOM_PUSHGATEWAY_URL
func Load(path string) (Pipeline, error) {
	// Best effort; a missing .env simply means the environment is as-is.
	_ = godotenv.Load()

	p := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
			// fall through to defaults
		case err != nil:
			return p, fmt.Errorf("config: open %s: %w", path, err)
		default:
			defer f.Close()
			if err := json.NewDecoder(f).Decode(&p); err != nil {
				return p, fmt.Errorf("config: decode %s: %w", path, err)
			}
			p.fillDefaults()
		}
	}

	if v := os.Getenv("ECOM_DATA_DIR"); v != "" {
		p.Data.Dir = v
	}
	if v := os.Getenv("ECOM_DB_KIND"); v != "" {
		p.Storage.Kind = v
	}
	if v := os.Getenv("ECOM_DB_DSN"); v != "" {
		p.Storage.DB.DSN = v
	}
	if v := os.Getenv("ECOM_CHARTS_DIR"); v != "" {
		p.Charts.OutDir = v
	}
	if v := os.Getenv("ECOM_METRICS_BACKEND"); v != "" {
		p.Metrics.Backend = v
	}
	if v := os.Getenv("ECOM_PUSHGATEWAY_URL"); v != "" {
		p.Metrics.PushgatewayURL = v
	}

	return p, nil
}

// fillDefaults re-applies defaults to fields the decoded JSON left empty.
func (p *Pipeline) fillDefaults() {
	def := Default()
	if p.Job == "" {
		p.Job = def.Job
	}
	if p.Data.Dir == "" {
		p.Data.Dir = def.Data.Dir
	}
	if p.Data.CustomersFile == "" {
		p.Data.CustomersFile = def.Data.CustomersFile
	}
	if p.Data.ProductsFile == "" {
		p.Data.ProductsFile = def.Data.ProductsFile
	}
	if p.Data.OrdersFile == "" {
		p.Data.OrdersFile = def.Data.OrdersFile
	}
	if p.Storage.Kind == "" {
		p.Storage.Kind = def.Storage.Kind
	}
	if p.Storage.DB.DSN == "" {
		p.Storage.DB.DSN = def.Storage.DB.DSN
	}
	if p.Charts.OutDir == "" {
		p.Charts.OutDir = def.Charts.OutDir
	}
	if p.Metrics.Backend == "" {
		p.Metrics.Backend = def.Metrics.Backend
	}
}
