// Package storage defines the store abstraction the loader writes through
// and the factory that selects a concrete backend by kind. Backends register
// themselves in init (see the sqlite and postgres subpackages and
// storage/all), so callers depend only on this package.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"ecometl/internal/schema"
)

// Config selects and configures a backend.
type Config struct {
	// Kind names a registered backend, e.g. "sqlite" or "postgres".
	Kind string

	// DSN is the backend connection string (a file path for sqlite).
	DSN string
}

// IndexDef names a single-column secondary index.
type IndexDef struct {
	Name   string
	Table  string
	Column string
}

// Indexes are the four secondary indexes backing the reporting queries.
var Indexes = []IndexDef{
	{Name: "idx_customer_id", Table: "customers", Column: "customer_id"},
	{Name: "idx_product_id", Table: "products", Column: "product_id"},
	{Name: "idx_order_date", Table: "orders", Column: "order_date"},
	{Name: "idx_order_customer", Table: "orders", Column: "customer_id"},
}

// Repository is the write-side contract of the relational store.
//
// ReplaceTable fully replaces the named table: the previous table is dropped
// and recreated inside one transaction, so a failed load rolls back to the
// prior contents rather than leaving a mixed state.
type Repository interface {
	ReplaceTable(ctx context.Context, tbl schema.Table, rows [][]any) (int64, error)
	EnsureIndexes(ctx context.Context, defs []IndexDef) error
	Close()
}

// Factory builds a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factories   = map[string]Factory{}
	driverNames = map[string]string{}
)

// Register installs a backend factory under kind. Backends call this from
// init; a duplicate kind panics early.
func Register(kind string, f Factory) {
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: duplicate backend %q", kind))
	}
	factories[kind] = f
}

// RegisterDriver maps a backend kind onto its database/sql driver name so
// read-side callers can open ad-hoc connections with OpenDB.
func RegisterDriver(kind, driver string) {
	driverNames[kind] = driver
}

// New builds the Repository for cfg.Kind, or an error naming the known kinds
// when unregistered.
func New(ctx context.Context, cfg Config) (Repository, error) {
	f, ok := factories[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, registered())
	}
	return f(ctx, cfg)
}

// OpenDB opens a plain database/sql handle for the given backend kind. The
// reporting and visualisation layers use this to give every query its own
// short-lived connection.
func OpenDB(kind, dsn string) (*sql.DB, error) {
	driver, ok := driverNames[kind]
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", kind, registered())
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", kind, err)
	}
	return db, nil
}

func registered() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
