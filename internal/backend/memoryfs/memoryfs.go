// Package memoryfs is davall's reference backend adapter, used by the
// frontend's own tests the way google-go-webdav/memfs backs webdav.go's
// tests: a nested mapping of names to byte buffers or sub-mappings.
package memoryfs

import (
	"mime"
	"path"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

// Node is one entry of the nested mapping accepted by New: either a leaf
// []byte (a file body) or an interior map[string]Node (a directory).
type Node any

// New builds a Memory backend from a nested mapping, matching spec §4.2:
// "leaves are byte buffers, interior nodes are sub-mappings".
func New(root map[string]Node) (backend.Backend, error) {
	t := treefs.New("memory")
	if err := addChildren(t, nil, root); err != nil {
		return nil, err
	}
	t.SortChildren()
	return t, nil
}

func addChildren(t *treefs.Tree, parent backend.Path, m map[string]Node) error {
	t.AddDir(parent)
	for name, v := range m {
		if name == "" || strings.ContainsAny(name, "/\x00") {
			return backend.Errorf("memory", "invalid segment name %q", name)
		}
		p := parent.Child(name)
		switch val := v.(type) {
		case []byte:
			ct := mime.TypeByExtension(path.Ext(name))
			if ct == "" {
				ct = "application/octet-stream"
			}
			t.AddFile(p, val, ct, time.Time{})
		case map[string]Node:
			if err := addChildren(t, p, val); err != nil {
				return err
			}
		default:
			return backend.Errorf("memory", "unsupported node type for %q", name)
		}
	}
	return nil
}
