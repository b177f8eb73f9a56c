package htmlfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/htmlfs"
)

func TestHTMLElementsAndText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	contents := `<html><body><p>hello</p><p>world</p></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	fs, err := htmlfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(backend.Path{"html", "body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p_0", "p_1"}, children)

	body, err := fs.Get(backend.Path{"html", "body", "p_0", "_text"})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}
