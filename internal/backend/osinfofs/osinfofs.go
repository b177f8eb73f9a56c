// Package osinfofs is a synthetic backend.Backend with no source file:
// a small, fixed tree of text files describing the host, each of which
// re-samples its value on every Get, per spec's "OS-info freshness"
// edge case. Unlike the other adapters it cannot be pre-materialised
// into a treefs.Tree, since treefs is write-once and immutable.
package osinfofs

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
)

const name = "osinfo"

var started = time.Time{}

func init() {
	started = time.Now()
}

// sampler produces the live body of a single synthetic file.
type sampler func() []byte

// FS is a live, read-only tree of small text files. The root directory
// and the "environment" subdirectory are fixed at construction; every
// leaf's content is recomputed on each Get.
type FS struct {
	files map[string]sampler // key: joined backend.Path
	env   []string           // sorted environment variable names
}

// New builds the OS-info tree. It never fails: every field it exposes
// is either always available (runtime.GOOS) or degrades to an empty
// value (hostname).
func New() backend.Backend {
	fs := &FS{files: map[string]sampler{}}

	fs.files[key(backend.Path{"kernel"})] = func() []byte {
		return []byte(runtime.GOOS + "/" + runtime.GOARCH)
	}
	fs.files[key(backend.Path{"hostname"})] = func() []byte {
		h, err := os.Hostname()
		if err != nil {
			return []byte("")
		}
		return []byte(h)
	}
	fs.files[key(backend.Path{"uptime"})] = func() []byte {
		return []byte(time.Since(started).String())
	}
	fs.files[key(backend.Path{"time"})] = func() []byte {
		return []byte(time.Now().Format(time.RFC3339Nano))
	}
	fs.files[key(backend.Path{"goroutines"})] = func() []byte {
		return []byte(fmt.Sprintf("%d", runtime.NumGoroutine()))
	}
	fs.files[key(backend.Path{"numcpu"})] = func() []byte {
		return []byte(fmt.Sprintf("%d", runtime.NumCPU()))
	}

	fs.env = environNames()
	for _, n := range fs.env {
		n := n
		fs.files[key(backend.Path{"environment", n})] = func() []byte {
			return []byte(os.Getenv(n))
		}
	}

	return fs
}

func environNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, kv := range os.Environ() {
		k, _, ok := strings.Cut(kv, "=")
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func key(p backend.Path) string { return strings.Join(p, "/") }

func (fs *FS) isDir(p backend.Path) bool {
	if len(p) == 0 {
		return true
	}
	return len(p) == 1 && p[0] == "environment"
}

func (fs *FS) Info(p backend.Path) (backend.Info, error) {
	if fs.isDir(p) {
		return backend.Info{Kind: backend.KindDirectory, ModTime: started}, nil
	}
	s, ok := fs.files[key(p)]
	if !ok {
		return backend.Info{}, backend.ErrNotFound
	}
	// Sampled (not cached) so Size matches whatever Get would return
	// right now; per spec invariant len(Get(p)) == Info(p).Size, it
	// cannot just report a stale or zero length.
	return backend.Info{
		Kind:        backend.KindFile,
		Size:        int64(len(s())),
		ContentType: "text/plain",
		ModTime:     time.Now(),
	}, nil
}

func (fs *FS) List(p backend.Path) ([]string, error) {
	if !fs.isDir(p) {
		return nil, backend.ErrNotFound
	}
	if len(p) == 1 {
		out := make([]string, len(fs.env))
		copy(out, fs.env)
		return out, nil
	}
	names := []string{"kernel", "hostname", "uptime", "time", "goroutines", "numcpu", "environment"}
	sort.Strings(names)
	return names, nil
}

func (fs *FS) Get(p backend.Path) ([]byte, error) {
	s, ok := fs.files[key(p)]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return bytes.Clone(s()), nil
}

func (fs *FS) Close() error { return nil }
