// Package elementfs builds a treefs.Tree from a generic element-tree
// shape shared by the XML (beevik/etree) and HTML (golang.org/x/net/html)
// adapters: spec §4.2's "element becomes a directory, optional _text and
// _attribs.json synthetic files, one child directory per child element,
// repeated tags disambiguated by _0/_1 suffix in document order".
package elementfs

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

// Attr is one element attribute, order-preserving.
type Attr struct{ Name, Value string }

// Element is the format-agnostic shape both adapters reduce their native
// parse tree to before calling Build.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string // non-recursive text directly inside the element
	Children []Element
}

const (
	textFile  = "_text"
	attrsFile = "_attribs.json"
)

// Build renders root (named by its own tag, at path root) into t.
func Build(t *treefs.Tree, backendName string, root backend.Path, el Element) error {
	t.AddDir(root)

	names := childNames(el.Children)

	hasText := strings.TrimSpace(el.Text) != ""
	hasAttrs := len(el.Attrs) > 0

	if hasText {
		name := disambiguateSynthetic(textFile, names)
		t.AddFile(root.Child(name), []byte(el.Text), "text/plain", time.Time{})
	}
	if hasAttrs {
		m := make(map[string]string, len(el.Attrs))
		for _, a := range el.Attrs {
			m[a.Name] = a.Value
		}
		body, err := json.Marshal(m)
		if err != nil {
			return backend.Wrap(backendName, err)
		}
		name := disambiguateSynthetic(attrsFile, names)
		t.AddFile(root.Child(name), body, "application/json", time.Time{})
	}

	counts := make(map[string]int, len(el.Children))
	for _, c := range el.Children {
		counts[c.Tag]++
	}
	seen := make(map[string]int, len(el.Children))
	for _, c := range el.Children {
		var childName string
		if counts[c.Tag] > 1 {
			childName = c.Tag + "_" + strconv.Itoa(seen[c.Tag])
			seen[c.Tag]++
		} else {
			childName = c.Tag
		}
		if err := Build(t, backendName, root.Child(childName), c); err != nil {
			return err
		}
	}
	return nil
}

// childNames returns the final on-disk names children will occupy, used
// to detect a collision with a synthetic filename.
func childNames(children []Element) map[string]bool {
	counts := make(map[string]int, len(children))
	for _, c := range children {
		counts[c.Tag]++
	}
	seen := make(map[string]int, len(children))
	names := make(map[string]bool, len(children))
	for _, c := range children {
		if counts[c.Tag] > 1 {
			names[c.Tag+"_"+strconv.Itoa(seen[c.Tag])] = true
			seen[c.Tag]++
		} else {
			names[c.Tag] = true
		}
	}
	return names
}

// disambiguateSynthetic mangles a synthetic filename with trailing '~'
// characters until it no longer collides with a real child directory
// name, per spec §9: "collisions... should cause the adapter to mangle
// the synthetic name, not the user-facing one".
func disambiguateSynthetic(base string, taken map[string]bool) string {
	name := base
	for taken[name] {
		name += "~"
	}
	return name
}
