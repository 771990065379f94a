package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	database, err := NewSQLiteDB(SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "test.db"), BusyTimeout: 1})
	require.NoError(t, err)
	t.Cleanup(database.Close)

	ctx := context.Background()
	require.NoError(t, database.Exec(ctx, `CREATE TABLE parents (id INTEGER PRIMARY KEY)`))
	require.NoError(t, database.Exec(ctx, `CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parents(id))`))
	return database
}

func count(t *testing.T, q Querier, table string) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestNewSQLiteDB_RequiresPath(t *testing.T) {
	_, err := NewSQLiteDB(SQLiteConfig{})
	assert.Error(t, err)
}

func TestSQLiteDB_Basics(t *testing.T) {
	database := newSQLite(t)
	assert.Equal(t, DialectSQLite, database.Dialect())
	assert.NoError(t, database.Ping(context.Background()))
	assert.FileExists(t, database.Path())
}

func TestSQLiteDB_ForeignKeysEnforced(t *testing.T) {
	database := newSQLite(t)
	err := database.Exec(context.Background(), `INSERT INTO children (parent_id) VALUES (?)`, 42)
	assert.Error(t, err)
}

func TestSQLiteDB_WithTransaction(t *testing.T) {
	database := newSQLite(t)
	ctx := context.Background()

	err := database.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
		return q.Exec(ctx, `INSERT INTO parents (id) VALUES (1)`)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count(t, database, "parents"))

	boom := errors.New("boom")
	err = database.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
		require.NoError(t, q.Exec(ctx, `INSERT INTO parents (id) VALUES (2)`))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count(t, database, "parents"))

	assert.Panics(t, func() {
		_ = database.WithTransaction(ctx, func(ctx context.Context, q Querier) error {
			_ = q.Exec(ctx, `INSERT INTO parents (id) VALUES (3)`)
			panic("fail")
		})
	})
	assert.Equal(t, 1, count(t, database, "parents"))
}

func TestSQLiteDB_Query(t *testing.T) {
	database := newSQLite(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, database.Exec(ctx, `INSERT INTO parents (id) VALUES (?)`, i))
	}

	rows, err := database.Query(ctx, `SELECT id FROM parents ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestStatementBuilder(t *testing.T) {
	q, _, err := StatementBuilder(DialectPostgres).Select("id").From("t").Where("a = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE a = $1", q)

	q, _, err = StatementBuilder(DialectSQLite).Select("id").From("t").Where("a = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t WHERE a = ?", q)
}
