// Package xmlfs adapts an XML document to the backend.Backend contract
// using github.com/beevik/etree's element tree, per spec §4.2.
package xmlfs

import (
	"github.com/beevik/etree"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/elementfs"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "xml"

// Open parses the XML document at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, backend.Wrap(name, err)
	}
	root := doc.Root()
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

func convert(e *etree.Element) elementfs.Element {
	el := elementfs.Element{
		Tag:  e.Tag,
		Text: e.Text(),
	}
	for _, a := range e.Attr {
		el.Attrs = append(el.Attrs, elementfs.Attr{Name: a.Key, Value: a.Value})
	}
	for _, c := range e.ChildElements() {
		el.Children = append(el.Children, convert(c))
	}
	return el
}
