// Package astfs adapts a Go source file to the backend.Backend contract:
// one file per top-level function, one directory per named type with
// methods, containing one file per method. See SPEC_FULL.md §4.2's
// resolution of the source-AST adapter's target language.
package astfs

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "ast"

// Open parses the Go source file at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		span := span(fset, src, fn.Pos(), fn.End())

		if fn.Recv == nil || len(fn.Recv.List) == 0 {
			t.AddFile(backend.Path{fn.Name.Name + ".src"}, span, "text/plain", time.Time{})
			continue
		}

		typeName := receiverTypeName(fn.Recv.List[0].Type)
		dir := backend.Path{typeName}
		t.AddDir(dir)
		t.AddFile(dir.Child(fn.Name.Name+".src"), span, "text/plain", time.Time{})
	}
	t.SortChildren()
	return t, nil
}

func span(fset *token.FileSet, src []byte, start, end token.Pos) []byte {
	s := fset.Position(start).Offset
	e := fset.Position(end).Offset
	body := make([]byte, e-s)
	copy(body, src[s:e])
	return body
}

// receiverTypeName strips the leading '*' from a pointer receiver type
// expression's textual form.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr: // generic receiver, e.g. Box[T]
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	default:
		return strings.TrimPrefix(fallbackName(expr), "*")
	}
}

func fallbackName(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return "receiver"
}
