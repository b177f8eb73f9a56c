// Package archivefs holds the directory-inference logic shared by the
// ZIP and TAR adapters: archive formats are flat lists of entries whose
// '/'-separated names imply a tree, with directories sometimes present
// as explicit entries and sometimes only as path prefixes.
package archivefs

import (
	"mime"
	"path"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

// Entry is one archive member, format-agnostic.
type Entry struct {
	// Name is the entry's '/'-separated path within the archive. A
	// trailing '/' marks an explicit directory entry.
	Name    string
	Dir     bool
	ModTime time.Time
	Body    []byte
}

// Build constructs a tree from entries, inferring any directory implied
// by a file's path prefix that has no explicit directory entry of its
// own. backendName labels the BackendError raised for an entry name with
// an empty path segment. Embedded NUL characters are replaced with '_'
// (see sanitizeSegment); '.' and '..' segments are kept as given.
func Build(backendName string, entries []Entry) (*treefs.Tree, error) {
	t := treefs.New(backendName)
	for _, e := range entries {
		name := strings.Trim(e.Name, "/")
		isDir := e.Dir || strings.HasSuffix(e.Name, "/")
		if name == "" {
			continue // root entry, nothing to record
		}
		segs := strings.Split(name, "/")
		p := make(backend.Path, 0, len(segs))
		for _, s := range segs {
			s = sanitizeSegment(s)
			if s == "" {
				return nil, backend.Errorf(backendName, "entry %q has an empty path segment", e.Name)
			}
			p = append(p, s)
		}
		if isDir {
			t.AddDir(p)
			continue
		}
		ct := mime.TypeByExtension(path.Ext(name))
		if ct == "" {
			ct = "application/octet-stream"
		}
		t.AddFile(p, e.Body, ct, e.ModTime)
	}
	t.SortChildren()
	return t, nil
}

// sanitizeSegment replaces characters that would break virtual-path
// segment safety (spec §3: "adapters that would synthesise such names
// must substitute a safe character") with '_'.
func sanitizeSegment(s string) string {
	if !strings.ContainsAny(s, "/\x00") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '/' || r == 0 {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
