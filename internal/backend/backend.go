// Package backend defines the uniform, read-only virtual-filesystem
// contract that every data-format adapter implements, and that the
// protocol frontend drives.
package backend

import (
	"errors"
	"fmt"
	"time"
)

// Kind distinguishes directories from files in a Backend's tree.
type Kind int

const (
	// KindFile identifies a leaf resource with a byte body.
	KindFile Kind = iota
	// KindDirectory identifies an interior resource with children.
	KindDirectory
)

func (k Kind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// Path is an ordered sequence of non-empty, '/'-free, NUL-free name
// segments. The empty slice denotes the root directory.
type Path []string

// String renders p as a forward-slash path rooted at "/", for logging.
func (p Path) String() string {
	s := "/"
	for i, seg := range p {
		if i > 0 {
			s += "/"
		}
		s += seg
	}
	return s
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = name
	return c
}

// Parent returns p with its last segment removed. Calling Parent on the
// root path returns the root path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Equal reports whether p and q name the same resource.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Info is the descriptor returned by Backend.Info.
type Info struct {
	Kind        Kind
	Size        int64     // valid only when Kind == KindFile
	ModTime     time.Time // last-modified instant, or the backend's open time
	ContentType string    // valid only when Kind == KindFile
}

// ErrNotFound is returned (or wrapped) when a virtual path does not exist.
var ErrNotFound = errors.New("resource not found")

// Error reports that a backend could not satisfy an otherwise well-formed
// request: source corruption, I/O failure, or a format violation. It is
// never used to signal a missing resource — that is ErrNotFound.
type Error struct {
	Backend string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: backend error", e.Backend)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Errorf builds a backend Error with a formatted cause.
func Errorf(backendName, format string, args ...any) error {
	return &Error{Backend: backendName, Cause: fmt.Errorf(format, args...)}
}

// Wrap builds a backend Error around an existing cause.
func Wrap(backendName string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Backend: backendName, Cause: cause}
}

// Backend is the narrow capability set every adapter of spec §4.2
// implements: info/list/get plus an idempotent close. Implementations
// must be safe for concurrent use by multiple goroutines.
type Backend interface {
	// Info classifies p. It must not perform heavy work; adapters that
	// cannot answer in near-constant time precompute an index at
	// construction. Returns ErrNotFound if p does not exist.
	Info(p Path) (Info, error)

	// List returns the immediate children of the directory at p, in a
	// stable (not necessarily sorted) order, with no duplicates.
	// Returns ErrNotFound if p does not exist or is not a directory.
	List(p Path) ([]string, error)

	// Get returns the full body of the file at p. Returns ErrNotFound
	// if p does not exist or is not a file.
	Get(p Path) ([]byte, error)

	// Close releases any resources held by the backend. Idempotent.
	Close() error
}
