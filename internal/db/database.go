// Package db hides the difference between the Postgres (pgx) and SQLite
// (database/sql) connections behind a small pgx-shaped interface, so the
// repositories are written once.
package db

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/gradebook/internal/config"
)

// Dialect names a supported SQL backend
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Row is a single-row query result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a multi-row query result. Close must be called when done.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is implemented by both a connection pool and an open transaction
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) error
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, q Querier) error

// Database is an open connection pool for one dialect
type Database interface {
	Querier
	WithTransaction(ctx context.Context, fn TransactionFn) error
	Ping(ctx context.Context) error
	Dialect() Dialect
	Close()
}

// StatementBuilder returns a squirrel builder with the placeholder format of d
func StatementBuilder(d Dialect) squirrel.StatementBuilderType {
	if d == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Open connects to the database selected by cfg.Database.Driver
func Open(cfg *config.Config) (Database, error) {
	switch Dialect(cfg.Database.Driver) {
	case DialectPostgres:
		return NewPostgresDB(cfg)
	case DialectSQLite:
		return NewSQLiteDB(SQLiteConfig{
			Path:        cfg.Database.Path,
			BusyTimeout: cfg.Database.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
