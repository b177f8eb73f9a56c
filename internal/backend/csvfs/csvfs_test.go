package csvfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/csvfs"
)

func write(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestCSVHeaderAndRows(t *testing.T) {
	path := write(t, "id,name\n1,alice\n2,bob\n")
	fs, err := csvfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	headers, err := fs.Get(backend.Path{"_headers.txt"})
	require.NoError(t, err)
	assert.Equal(t, "id\nname\n", string(headers))

	row, err := fs.Get(backend.Path{"row_0.json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"alice"}`, string(row))

	row, err = fs.Get(backend.Path{"row_1.json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2","name":"bob"}`, string(row))
}

func TestCSVZeroPadsToRowCountWidth(t *testing.T) {
	var sb string
	sb = "h\n"
	for i := 0; i < 12; i++ {
		sb += "v\n"
	}
	path := write(t, sb)
	fs, err := csvfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.Contains(t, children, "row_00.json")
	assert.Contains(t, children, "row_11.json")
}
