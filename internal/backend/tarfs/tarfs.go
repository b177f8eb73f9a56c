// Package tarfs adapts a TAR archive — optionally gzip, bzip2, or xz
// compressed — to the backend.Backend contract.
package tarfs

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/archivefs"
)

const name = "tar"

// Open parses the (possibly compressed) TAR archive at path, selecting a
// decompressor from its extension per spec §6's extension map.
func Open(path string) (backend.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer f.Close()

	r, err := decompress(path, f)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	entries, err := readEntries(r)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	return archivefs.Build(name, entries)
}

func decompress(path string, r io.Reader) (io.Reader, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(lower, ".tar.bz2"):
		return bzip2.NewReader(r), nil
	case strings.HasSuffix(lower, ".tar.xz"):
		return xz.NewReader(r)
	default:
		return r, nil
	}
}

func readEntries(r io.Reader) ([]archivefs.Entry, error) {
	tr := tar.NewReader(r)
	var entries []archivefs.Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		e := archivefs.Entry{
			Name:    hdr.Name,
			Dir:     hdr.Typeflag == tar.TypeDir,
			ModTime: hdr.ModTime,
		}
		if !e.Dir && hdr.Typeflag == tar.TypeReg {
			body, err := io.ReadAll(tr)
			if err != nil {
				return nil, err
			}
			e.Body = body
			entries = append(entries, e)
		} else if e.Dir {
			entries = append(entries, e)
		}
		// Non-regular, non-directory entries (symlinks, devices) are
		// skipped; they have no place in a browsable read-only tree.
	}
	return entries, nil
}
