package migrations

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/gradebook/internal/db"
)

func openSQLite(t *testing.T) *db.SQLiteDB {
	t.Helper()
	database, err := db.NewSQLiteDB(db.SQLiteConfig{Path: filepath.Join(t.TempDir(), "m.db"), BusyTimeout: 1})
	require.NoError(t, err)
	t.Cleanup(database.Close)
	return database
}

func countRows(t *testing.T, q db.Querier, table string) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", Version("001_init.sql"))
	assert.Equal(t, "002", Version("sqlite/002_grades.sql"))
	assert.Equal(t, "003", Version("003.sql"))
}

func TestMigrate_EmbeddedSQLiteIsIdempotent(t *testing.T) {
	database := openSQLite(t)
	ctx := context.Background()

	m, err := NewMigrator(database)
	require.NoError(t, err)
	require.NoError(t, m.Migrate(ctx))
	require.NoError(t, m.Migrate(ctx))

	assert.Equal(t, 1, countRows(t, database, "schema_migrations"))
	assert.Zero(t, countRows(t, database, "users"))
	assert.Zero(t, countRows(t, database, "students"))
	assert.Zero(t, countRows(t, database, "grades"))
}

func TestMigrate_OrderAndFailureRollsBack(t *testing.T) {
	database := openSQLite(t)
	ctx := context.Background()

	files := fstest.MapFS{
		"002_second.sql": {Data: []byte(`INSERT INTO things (name) VALUES ('b');`)},
		"001_first.sql":  {Data: []byte(`CREATE TABLE things (name TEXT NOT NULL);`)},
		"003_broken.sql": {Data: []byte(`INSERT INTO things (name) VALUES ('c'); INSERT INTO nowhere VALUES (1);`)},
		"README.md":      {Data: []byte("ignored")},
	}

	err := NewMigratorFS(database, files).Migrate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_broken.sql")

	assert.Equal(t, 2, countRows(t, database, "schema_migrations"))
	assert.Equal(t, 1, countRows(t, database, "things"), "failed script must not leave rows behind")
}
