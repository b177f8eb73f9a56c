// Package htmlfs adapts an HTML document to the backend.Backend
// contract using golang.org/x/net/html's lenient parser, applying the
// same element-tree mapping rules as xmlfs (via elementfs). The direct
// text nodes of each element are concatenated into its one _text body.
package htmlfs

import (
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/elementfs"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "html"

// Open parses the HTML document at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	root := findRootElement(doc)
	if root == nil {
		return nil, backend.Errorf(name, "document has no root element")
	}

	t := treefs.New(name)
	el := convert(root)
	if err := elementfs.Build(t, name, backend.Path{el.Tag}, el); err != nil {
		return nil, err
	}
	t.SortChildren()
	return t, nil
}

// findRootElement walks down from the synthetic DocumentNode html.Parse
// always produces to the first real element (normally <html>, which the
// parser synthesises even for fragments).
func findRootElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func convert(n *html.Node) elementfs.Element {
	el := elementfs.Element{Tag: n.Data}
	for _, a := range n.Attr {
		el.Attrs = append(el.Attrs, elementfs.Attr{Name: a.Key, Value: a.Val})
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			el.Children = append(el.Children, convert(c))
		}
	}
	el.Text = text.String()
	return el
}
