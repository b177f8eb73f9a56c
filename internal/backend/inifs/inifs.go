// Package inifs adapts an INI file to the backend.Backend contract:
// one directory per section, one file per key holding its raw value.
package inifs

import (
	"time"

	"gopkg.in/ini.v1"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "ini"

// Open parses the INI file at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	for _, sec := range f.Sections() {
		dir := backend.Path{sec.Name()}
		t.AddDir(dir)
		for _, key := range sec.Keys() {
			t.AddFile(dir.Child(key.Name()), []byte(key.String()), "text/plain", time.Time{})
		}
	}
	t.SortChildren()
	return t, nil
}
