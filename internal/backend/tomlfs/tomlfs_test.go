package tomlfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/tomlfs"
)

func TestTOMLTablesAndArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	contents := "k = 42\n\n[sub]\nx = \"y\"\nlist = [1, 2, 3]\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	fs, err := tomlfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	body, err := fs.Get(backend.Path{"k"})
	require.NoError(t, err)
	assert.Equal(t, "42", string(body))

	body, err = fs.Get(backend.Path{"sub", "x"})
	require.NoError(t, err)
	assert.Equal(t, "y", string(body))

	children, err := fs.List(backend.Path{"sub", "list"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, children)

	body, err = fs.Get(backend.Path{"sub", "list", "1"})
	require.NoError(t, err)
	assert.Equal(t, "2", string(body))
}
