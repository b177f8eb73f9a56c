package jsonfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/jsonfs"
)

func write(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestS3_JSONScalar(t *testing.T) {
	path := write(t, `{"k":42,"sub":{"x":"y"}}`)
	fs, err := jsonfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	body, err := fs.Get(backend.Path{"k"})
	require.NoError(t, err)
	assert.Equal(t, "42", string(body))

	info, err := fs.Info(backend.Path{"sub"})
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, info.Kind)

	children, err := fs.List(backend.Path{"sub"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, children)

	body, err = fs.Get(backend.Path{"sub", "x"})
	require.NoError(t, err)
	assert.Equal(t, "y", string(body))
}

func TestJSONArray(t *testing.T) {
	path := write(t, `["a","b","c"]`)
	fs, err := jsonfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, children)

	body, err := fs.Get(backend.Path{"1"})
	require.NoError(t, err)
	assert.Equal(t, "b", string(body))
}

func TestJSONMalformedFailsConstruction(t *testing.T) {
	path := write(t, `{not valid json`)
	_, err := jsonfs.Open(path)
	assert.Error(t, err)
}
