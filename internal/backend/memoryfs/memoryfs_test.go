package memoryfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/memoryfs"
)

func build(t *testing.T) backend.Backend {
	t.Helper()
	fs, err := memoryfs.New(map[string]memoryfs.Node{
		"a.txt": []byte("hi\n"),
		"sub": map[string]memoryfs.Node{
			"b.txt": []byte("hello"),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })
	return fs
}

func TestRootIsDirectory(t *testing.T) {
	fs := build(t)
	info, err := fs.Info(nil)
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, info.Kind)
}

func TestListAndGet(t *testing.T) {
	fs := build(t)

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, children)

	body, err := fs.Get(backend.Path{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(body))

	info, err := fs.Info(backend.Path{"a.txt"})
	require.NoError(t, err)
	assert.EqualValues(t, len(body), info.Size)
}

func TestNestedDirectory(t *testing.T) {
	fs := build(t)

	info, err := fs.Info(backend.Path{"sub"})
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, info.Kind)

	children, err := fs.List(backend.Path{"sub"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, children)
}

func TestNotFound(t *testing.T) {
	fs := build(t)

	_, err := fs.Info(backend.Path{"nope"})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	_, err = fs.List(backend.Path{"a.txt"})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	_, err = fs.Get(backend.Path{"sub"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestListHasNoDuplicates(t *testing.T) {
	fs := build(t)
	children, err := fs.List(nil)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, c := range children {
		assert.False(t, seen[c], "duplicate child %q", c)
		seen[c] = true
	}
}
