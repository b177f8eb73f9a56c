package tarfs

import (
	"archive/tar"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
)

// writeTar builds scenario S1 (a.txt "hi\n", sub/b.txt "abcde") as a
// plain uncompressed TAR file under t.TempDir and returns its path.
func writeTar(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	tw := tar.NewWriter(f)
	for _, e := range []struct {
		name string
		body string
	}{
		{"a.txt", "hi\n"},
		{"sub/b.txt", "abcde"},
	} {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: e.name,
			Size: int64(len(e.body)),
			Mode: 0644,
		}))
		_, err := tw.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return path
}

func TestS1_TarRoot(t *testing.T) {
	path := writeTar(t, "archive.tar")
	fs, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, children)

	body, err := fs.Get(backend.Path{"sub", "b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "abcde", string(body))
}

func TestTarInvariants(t *testing.T) {
	path := writeTar(t, "archive.tar")
	fs, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	root, err := fs.Info(nil)
	require.NoError(t, err)
	assert.Equal(t, backend.KindDirectory, root.Kind)

	_, err = fs.Get(backend.Path{"sub"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.tar"))
	assert.Error(t, err)
}
