package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Migrator manages database migrations
type Migrator struct {
	db    db.Database
	files fs.FS
	sb    squirrel.StatementBuilderType
}

// NewMigrator creates a migrator that applies the embedded scripts for the
// dialect of database
func NewMigrator(database db.Database) (*Migrator, error) {
	sub, err := fs.Sub(embedded, string(database.Dialect()))
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %s: %w", database.Dialect(), err)
	}
	return NewMigratorFS(database, sub), nil
}

// NewMigratorFS creates a migrator reading *.sql files from the root of files
func NewMigratorFS(database db.Database, files fs.FS) *Migrator {
	return &Migrator{
		db:    database,
		files: files,
		sb:    db.StatementBuilder(database.Dialect()),
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.sb.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := m.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// recordMigration marks a migration as applied
func (m *Migrator) recordMigration(ctx context.Context, q db.Querier, version string) error {
	query, args, err := m.sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}
	if err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// Version extracts the version prefix of a migration file name
// ("001_init.sql" => "001")
func Version(filename string) string {
	base := path.Base(filename)
	version, _, _ := strings.Cut(base, "_")
	return strings.TrimSuffix(version, ".sql")
}

// MigrateFile applies one script and records it in the same transaction.
// Already applied versions are skipped.
func (m *Migrator) MigrateFile(ctx context.Context, name string) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	log := logger.WithField("migration", name)
	version := Version(name)
	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		log.Debug().Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, q db.Querier) error {
		if err := q.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}
		return m.recordMigration(ctx, q, version)
	})
	if err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}

	log.Info().Msg("Migration applied")
	return nil
}

// Migrate applies every pending *.sql script in file name order
func (m *Migrator) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, file := range sqlFiles {
		if err := m.MigrateFile(ctx, file); err != nil {
			return err
		}
	}

	return nil
}
