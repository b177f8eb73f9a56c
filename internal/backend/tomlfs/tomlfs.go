// Package tomlfs adapts a TOML document to the backend.Backend
// contract, using the same JSON-style mapping rules as jsonfs (spec
// §4.2: "Same mapping rules as JSON, reading TOML as its natural tree of
// tables, arrays, and scalars").
package tomlfs

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
	"github.com/boppreh/davall/internal/backend/valuefs"
)

const name = "toml"

// Open parses the TOML document at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	var v any
	if _, err := toml.DecodeFile(path, &v); err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	if err := valuefs.Walk(t, name, nil, v, render); err != nil {
		return nil, err
	}
	t.SortChildren()
	return t, nil
}

// render extends valuefs.DefaultRender with TOML's native datetime type,
// which BurntSushi/toml decodes directly into time.Time.
func render(v any) ([]byte, string, bool) {
	if ts, ok := v.(time.Time); ok {
		return []byte(ts.Format(time.RFC3339)), "text/plain", true
	}
	return valuefs.DefaultRender(v)
}
