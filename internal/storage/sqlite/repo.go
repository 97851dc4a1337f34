// Package sqlite implements the SQLite-backed storage.Repository using
// database/sql. Table replacement runs as batched INSERTs inside a single
// transaction; SQLite has no dedicated bulk-load API, but one transaction
// keeps performance acceptable for these volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver.
	_ "modernc.org/sqlite"

	"ecometl/internal/schema"
	"ecometl/internal/storage"
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens a SQLite handle for the given DSN. The DSN is passed directly
// to database/sql; a bare file path such as "ecommerce.db" works, as does
// ":memory:" in tests.
func Open(dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	return db, nil
}

// New wraps an open handle in a Repository.
func New(db *sql.DB) *Repository { return &Repository{db: db} }

// NewRepository opens a connection and returns a Repository plus a close
// function. It pings with a short timeout to fail fast on an invalid DSN.
func NewRepository(ctx context.Context, dsn string) (*Repository, func(), error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return New(db), func() { db.Close() }, nil
}

// ReplaceTable drops, recreates, and repopulates tbl inside one transaction.
// The previous table survives any failure: the transaction rolls back.
func (r *Repository) ReplaceTable(ctx context.Context, tbl schema.Table, rows [][]any) (int64, error) {
	cols := tbl.Columns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(tbl.Name)); err != nil {
		return 0, fmt.Errorf("sqlite: drop %s: %w", tbl.Name, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(tbl)); err != nil {
		return 0, fmt.Errorf("sqlite: create %s: %w", tbl.Name, err)
	}

	placeholders := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		placeholders[i] = "?"
		names[i] = quoteIdent(c.Name)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(tbl.Name),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(cols) {
			return inserted, fmt.Errorf("sqlite: %s: row length %d != columns length %d", tbl.Name, len(row), len(cols))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("sqlite: insert into %s: %w", tbl.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit %s: %w", tbl.Name, err)
	}
	return inserted, nil
}

// EnsureIndexes creates the given indexes when absent.
func (r *Repository) EnsureIndexes(ctx context.Context, defs []storage.IndexDef) error {
	for _, d := range defs {
		q := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quoteIdent(d.Name), quoteIdent(d.Table), quoteIdent(d.Column))
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("sqlite: create index %s: %w", d.Name, err)
		}
	}
	return nil
}

// Exec executes an arbitrary SQL statement on the underlying handle.
func (r *Repository) Exec(ctx context.Context, q string, args ...any) error {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("sqlite: exec: %w", err)
	}
	return nil
}

// DB exposes the underlying handle for read queries in tests.
func (r *Repository) DB() *sql.DB { return r.db }

func createTableSQL(tbl schema.Table) string {
	defs := make([]string, len(tbl.Columns))
	for i, c := range tbl.Columns {
		d := quoteIdent(c.Name) + " " + sqlType(c.Kind)
		if c.NotNull {
			d += " NOT NULL"
		}
		defs[i] = d
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tbl.Name), strings.Join(defs, ", "))
}

// sqlType maps logical column kinds onto SQLite storage classes. Dates are
// stored as "2006-01-02" text so lexical ordering matches chronological
// ordering in the reporting queries.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt:
		return "INTEGER"
	case schema.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
