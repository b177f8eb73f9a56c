package sqlitefs_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/sqlitefs"
)

// seed creates a throwaway database file with table t(id int, name text)
// and a single row (1, 'x'), matching scenario S2.
func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.sqlite")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t(id int, name text)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t(id, name) VALUES (1, 'x')`)
	require.NoError(t, err)

	return path
}

func TestS2_SQLiteTable(t *testing.T) {
	path := seed(t)
	fs, err := sqlitefs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, children)

	schema, err := fs.Get(backend.Path{"t", "_schema.sql"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t(id int, name text)", string(schema))

	row, err := fs.Get(backend.Path{"t", "row_1.json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"x"}`, string(row))
}

func TestSQLiteOpenFailsOnMissingFile(t *testing.T) {
	_, err := sqlitefs.Open(filepath.Join(t.TempDir(), "does-not-exist.sqlite"))
	assert.Error(t, err)
}

func TestSQLiteOpenFailsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("not a sqlite file"), 0o644))

	_, err := sqlitefs.Open(path)
	assert.Error(t, err)
}
