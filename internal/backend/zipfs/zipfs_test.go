package zipfs

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
)

// buildZipReader constructs the archive.zip.Reader for scenario S1:
// entries a.txt (3 bytes "hi\n") and sub/b.txt (5 bytes).
func buildZipReader(t *testing.T) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("a.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hi\n"))
	require.NoError(t, err)

	w, err = zw.Create("sub/b.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("abcde"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func TestS1_ZipRoot(t *testing.T) {
	zr := buildZipReader(t)
	fs, err := build(zr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, children)

	info, err := fs.Info(backend.Path{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, backend.KindFile, info.Kind)
	assert.EqualValues(t, 3, info.Size)

	info, err = fs.Info(backend.Path{"sub"})
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, info.Kind)

	body, err := fs.Get(backend.Path{"sub", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(body))
}

func TestZipInvariants(t *testing.T) {
	zr := buildZipReader(t)
	fs, err := build(zr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	root, err := fs.Info(nil)
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, root.Kind)

	_, err = fs.List(backend.Path{"a.txt"})
	assert.ErrorIs(t, err, backend.ErrNotFound)

	_, err = fs.Get(backend.Path{"sub"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}
