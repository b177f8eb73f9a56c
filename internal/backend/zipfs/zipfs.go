// Package zipfs adapts a ZIP archive to the backend.Backend contract.
package zipfs

import (
	"archive/zip"
	"io"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/archivefs"
)

const name = "zip"

// Open parses the ZIP archive at path and returns a read-only backend
// over its entries. Construction fails if the archive cannot be read or
// is corrupt (spec §3: "Handles whose underlying source can fail to
// open... must fail construction").
func Open(path string) (backend.Backend, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer zr.Close()
	return build(&zr.Reader)
}

func build(zr *zip.Reader) (backend.Backend, error) {
	entries := make([]archivefs.Entry, 0, len(zr.File))
	for _, f := range zr.File {
		fi := f.FileInfo()
		e := archivefs.Entry{
			Name:    f.Name,
			Dir:     fi.IsDir(),
			ModTime: fi.ModTime(),
		}
		if !e.Dir {
			rc, err := f.Open()
			if err != nil {
				return nil, backend.Wrap(name, err)
			}
			body, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, backend.Wrap(name, err)
			}
			e.Body = body
		}
		entries = append(entries, e)
	}
	return archivefs.Build(name, entries)
}
