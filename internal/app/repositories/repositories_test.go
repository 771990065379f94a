package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yigit/gradebook/internal/app/migrations"
	"github.com/yigit/gradebook/internal/db"
)

func newTestDB(t *testing.T) *db.SQLiteDB {
	t.Helper()
	database, err := db.NewSQLiteDB(db.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5,
	})
	require.NoError(t, err)
	t.Cleanup(database.Close)

	migrator, err := migrations.NewMigrator(database)
	require.NoError(t, err)
	require.NoError(t, migrator.Migrate(context.Background()))
	return database
}
