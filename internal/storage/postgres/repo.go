// Package postgres implements the Postgres-backed storage.Repository through
// the pgx stdlib driver. It mirrors the sqlite backend's replace semantics:
// drop, recreate, and repopulate inside one transaction, so a failed load
// rolls back to the previous table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Postgres driver (database/sql adapter over pgx).
	_ "github.com/jackc/pgx/v5/stdlib"

	"ecometl/internal/schema"
	"ecometl/internal/storage"
)

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a connection for the given pgx-style DSN and returns a
// Repository plus a close function.
func NewRepository(ctx context.Context, dsn string) (*Repository, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}

	return &Repository{db: db}, func() { db.Close() }, nil
}

// ReplaceTable drops, recreates, and repopulates tbl inside one transaction.
func (r *Repository) ReplaceTable(ctx context.Context, tbl schema.Table, rows [][]any) (int64, error) {
	cols := tbl.Columns

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(tbl.Name)); err != nil {
		return 0, fmt.Errorf("postgres: drop %s: %w", tbl.Name, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(tbl)); err != nil {
		return 0, fmt.Errorf("postgres: create %s: %w", tbl.Name, err)
	}

	placeholders := make([]string, len(cols))
	names := make([]string, len(cols))
	for i, c := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		names[i] = quoteIdent(c.Name)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(tbl.Name),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("postgres: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(cols) {
			return inserted, fmt.Errorf("postgres: %s: row length %d != columns length %d", tbl.Name, len(row), len(cols))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("postgres: insert into %s: %w", tbl.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("postgres: commit %s: %w", tbl.Name, err)
	}
	return inserted, nil
}

// EnsureIndexes creates the given indexes when absent.
func (r *Repository) EnsureIndexes(ctx context.Context, defs []storage.IndexDef) error {
	for _, d := range defs {
		q := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quoteIdent(d.Name), quoteIdent(d.Table), quoteIdent(d.Column))
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("postgres: create index %s: %w", d.Name, err)
		}
	}
	return nil
}

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

// sqlType maps logical kinds onto Postgres types. Dates stay text for parity
// with the sqlite backend; the reporting SQL compares and groups them
// lexically.
func sqlType(k schema.Kind) string {
	switch k {
	case schema.KindInt:
		return "BIGINT"
	case schema.KindReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
