// Package treefs is a small in-memory, map-keyed backend builder shared
// by every adapter whose native format is fully materialised into a tree
// at construction time (ZIP, TAR, SQLite, JSON, CSV, INI, XML, TOML, HTML,
// Memory, Mailbox, source-AST). It generalises google-go-webdav/memfs's flat
// map[string]*memfile approach to a read-only, write-once builder.
package treefs

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boppreh/davall/internal/backend"
)

type node struct {
	dir         bool
	data        []byte
	contentType string
	modTime     time.Time
	children    []string // insertion order, directories only
}

// Tree is a write-once-then-read-only backend.Backend built by calling
// AddFile/AddDir any number of times before the first Info/List/Get call,
// then treated as immutable. Create one with New; the zero value has no
// node map or root directory and is not usable.
type Tree struct {
	name string // backend name, used in wrapped BackendError values

	mu    sync.RWMutex
	nodes map[string]*node
	built time.Time
}

// New creates an empty Tree rooted at "/", stamped with the construction
// time used as the fallback ModTime for every resource.
func New(name string) *Tree {
	t := &Tree{
		name:  name,
		nodes: make(map[string]*node),
		built: time.Now(),
	}
	t.nodes[""] = &node{dir: true, modTime: t.built}
	return t
}

func key(p backend.Path) string {
	return strings.Join(p, "/")
}

// ensureDir creates directory p and all of its ancestors if missing, and
// links each into its parent's child list.
func (t *Tree) ensureDir(p backend.Path) *node {
	k := key(p)
	if n, ok := t.nodes[k]; ok {
		return n
	}
	n := &node{dir: true, modTime: t.built}
	t.nodes[k] = n
	if len(p) > 0 {
		parent := t.ensureDir(p.Parent())
		name := p[len(p)-1]
		parent.children = append(parent.children, name)
	}
	return n
}

// AddDir ensures p exists as a directory (its parents are created too).
func (t *Tree) AddDir(p backend.Path) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureDir(p)
}

// AddFile stores a file at p (creating parent directories as needed). If
// modTime is zero, the tree's construction time is used.
func (t *Tree) AddFile(p backend.Path, data []byte, contentType string, modTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if modTime.IsZero() {
		modTime = t.built
	}
	parent := t.ensureDir(p.Parent())
	name := p[len(p)-1]
	k := key(p)
	if _, exists := t.nodes[k]; !exists {
		parent.children = append(parent.children, name)
	}
	t.nodes[k] = &node{data: data, contentType: contentType, modTime: modTime}
}

func (t *Tree) lookup(p backend.Path) (*node, error) {
	n, ok := t.nodes[key(p)]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return n, nil
}

// Info implements backend.Backend.
func (t *Tree) Info(p backend.Path) (backend.Info, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.lookup(p)
	if err != nil {
		return backend.Info{}, err
	}
	if n.dir {
		return backend.Info{Kind: backend.KindDirectory, ModTime: n.modTime}, nil
	}
	return backend.Info{
		Kind:        backend.KindFile,
		Size:        int64(len(n.data)),
		ModTime:     n.modTime,
		ContentType: n.contentType,
	}, nil
}

// List implements backend.Backend.
func (t *Tree) List(p backend.Path) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.lookup(p)
	if err != nil {
		return nil, err
	}
	if !n.dir {
		return nil, backend.ErrNotFound
	}
	out := make([]string, len(n.children))
	copy(out, n.children)
	return out, nil
}

// Get implements backend.Backend.
func (t *Tree) Get(p backend.Path) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.lookup(p)
	if err != nil {
		return nil, err
	}
	if n.dir {
		return nil, backend.ErrNotFound
	}
	out := make([]byte, len(n.data))
	copy(out, n.data)
	return out, nil
}

// Close implements backend.Backend. Trees hold no external resources.
func (t *Tree) Close() error { return nil }

// SortChildren orders every directory's children lexically. Adapters
// whose native order is unstable (e.g. map iteration over JSON object
// keys decoded by encoding/json) call this once after building so that
// List's "stable across calls" guarantee (spec invariant 5/6) holds.
func (t *Tree) SortChildren() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.nodes {
		if n.dir {
			sort.Strings(n.children)
		}
	}
}
