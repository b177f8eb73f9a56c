package main

import (
	"fmt"
	"strings"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/astfs"
	"github.com/boppreh/davall/internal/backend/csvfs"
	"github.com/boppreh/davall/internal/backend/htmlfs"
	"github.com/boppreh/davall/internal/backend/inifs"
	"github.com/boppreh/davall/internal/backend/jsonfs"
	"github.com/boppreh/davall/internal/backend/mailboxfs"
	"github.com/boppreh/davall/internal/backend/osinfofs"
	"github.com/boppreh/davall/internal/backend/sqlitefs"
	"github.com/boppreh/davall/internal/backend/tarfs"
	"github.com/boppreh/davall/internal/backend/tomlfs"
	"github.com/boppreh/davall/internal/backend/xmlfs"
	"github.com/boppreh/davall/internal/backend/zipfs"
)

// extensionSuffixes implements spec.md §6's extension map. It is
// checked in order, with the compound tar suffixes listed first so
// ".tar.gz" resolves before a bare (unmapped) ".gz" would ever be
// considered.
var extensionSuffixes = []struct {
	suffix string
	tag    string
}{
	{".tar.gz", "tar"},
	{".tar.bz2", "tar"},
	{".tar.xz", "tar"},
	{".tgz", "tar"},
	{".tar", "tar"},
	{".zip", "zip"},
	{".sqlite", "sqlite"},
	{".db", "sqlite"},
	{".json", "json"},
	{".csv", "csv"},
	{".ini", "ini"},
	{".cfg", "ini"},
	{".xml", "xml"},
	{".toml", "toml"},
	{".html", "html"},
	{".htm", "html"},
	{".mbox", "mailbox"},
	{".py", "ast"},
}

// extensionTag resolves a file's adapter type from its extension.
func extensionTag(file string) (string, bool) {
	lower := strings.ToLower(file)
	for _, e := range extensionSuffixes {
		if strings.HasSuffix(lower, e.suffix) {
			return e.tag, true
		}
	}
	return "", false
}

// knownTags are the adapter types openBackend can construct, checked
// against an explicit -t/--type before it is used: an unrecognized tag
// is a configuration error (spec.md §6, exit code 1), not a backend
// construction failure (exit code 2).
var knownTags = map[string]bool{
	"zip": true, "tar": true, "sqlite": true, "json": true, "csv": true,
	"ini": true, "xml": true, "toml": true, "html": true, "mailbox": true,
	"ast": true, "osinfo": true,
}

// openBackend constructs the backend.Backend named by tag. A new
// adapter is wired in here, and its tag is also added to knownTags
// (and to extensionSuffixes for any new extension); nothing else in
// the dispatch shell changes.
func openBackend(tag, file string) (backend.Backend, error) {
	switch tag {
	case "zip":
		return zipfs.Open(file)
	case "tar":
		return tarfs.Open(file)
	case "sqlite":
		return sqlitefs.Open(file)
	case "json":
		return jsonfs.Open(file)
	case "csv":
		return csvfs.Open(file)
	case "ini":
		return inifs.Open(file)
	case "xml":
		return xmlfs.Open(file)
	case "toml":
		return tomlfs.Open(file)
	case "html":
		return htmlfs.Open(file)
	case "mailbox":
		return mailboxfs.Open(file)
	case "ast":
		return astfs.Open(file)
	case "osinfo":
		return osinfofs.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend type %q", tag)
	}
}
