package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/yigit/gradebook/internal/pkg/logger"
)

const (
	dirPermissions    = 0750
	connectionTimeout = 5 * time.Second
	msPerSecond       = 1000
)

// SQLiteConfig contains SQLite connection options
type SQLiteConfig struct {
	// Path is the database file. ":memory:" is not supported because every
	// pooled connection would see its own empty database.
	Path string

	// BusyTimeout is how long (seconds) a writer waits for the lock
	BusyTimeout int
}

// SQLiteDB wraps a database/sql pool opened with the sqlite3 driver
type SQLiteDB struct {
	DB   *sql.DB
	path string
}

// NewSQLiteDB opens (creating if needed) the SQLite file at cfg.Path with
// foreign keys and WAL enabled.
func NewSQLiteDB(cfg SQLiteConfig) (*SQLiteDB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL",
		cfg.Path, cfg.BusyTimeout*msPerSecond)

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection, so check-and-insert transactions never see SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close() //nolint:errcheck
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	return &SQLiteDB{DB: sqlDB, path: cfg.Path}, nil
}

// NewSQLiteFromDB wraps an already open *sql.DB. Used by tests that inject
// a mocked driver.
func NewSQLiteFromDB(sqlDB *sql.DB) *SQLiteDB {
	return &SQLiteDB{DB: sqlDB}
}

// Path returns the database file path
func (db *SQLiteDB) Path() string {
	return db.path
}

// Dialect implements Database
func (db *SQLiteDB) Dialect() Dialect {
	return DialectSQLite
}

// Ping implements Database
func (db *SQLiteDB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// Close closes the pool
func (db *SQLiteDB) Close() {
	if db.DB != nil {
		if err := db.DB.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close sqlite database")
		}
	}
}

// Exec implements Querier
func (db *SQLiteDB) Exec(ctx context.Context, query string, args ...any) error {
	return sqlQuerier{db.DB}.Exec(ctx, query, args...)
}

// QueryRow implements Querier
func (db *SQLiteDB) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlQuerier{db.DB}.QueryRow(ctx, query, args...)
}

// Query implements Querier
func (db *SQLiteDB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return sqlQuerier{db.DB}.Query(ctx, query, args...)
}

// WithTransaction runs fn within a transaction, rolling back on error or panic
func (db *SQLiteDB) WithTransaction(ctx context.Context, fn TransactionFn) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, sqlQuerier{tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlQuerier adapts database/sql to Querier
type sqlQuerier struct {
	db dbtx
}

func (q sqlQuerier) Exec(ctx context.Context, query string, args ...any) error {
	_, err := q.db.ExecContext(ctx, query, args...)
	return err
}

func (q sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

// sqlRows drops the error from (*sql.Rows).Close to match pgx.Rows
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
