// Package jsonfs adapts a JSON document to the backend.Backend
// contract, per spec §4.2: objects become directories, arrays become
// directories keyed by decimal index, scalars become text/plain files.
package jsonfs

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
	"github.com/boppreh/davall/internal/backend/valuefs"
)

const name = "json"

// Open parses the JSON document at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber() // preserve the document's exact numeric literals
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	if err := valuefs.Walk(t, name, nil, v, valuefs.DefaultRender); err != nil {
		return nil, err
	}
	t.SortChildren()
	return t, nil
}
