// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dav

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/boppreh/davall/internal/backend"
	dpath "github.com/boppreh/davall/internal/dav/path"
)

// maxTreeDepth bounds the ?json export and any other full-subtree
// traversal, per spec.md's "configurable depth cap (e.g. 1024) to
// bound pathological tree depth" design note.
const maxTreeDepth = 1024

// indexTemplate renders a minimal directory listing, grounded on
// rclone's lib/http/serve.Directory template shape (bare anchors, one
// per line).
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Index of {{.Path}}</title>
</head>
<body>
<h1>Index of {{.Path}}</h1>
{{range .Entries}}<a href="{{.Href}}">{{.Name}}</a><br />
{{end}}</body>
</html>
`))

type indexEntry struct {
	Name, Href string
}

type indexData struct {
	Path    string
	Entries []indexEntry
}

// http://www.webdav.org/specs/rfc4918.html#rfc.section.9.4
func (h *Handler) doGetOrHead(w http.ResponseWriter, r *http.Request, p backend.Path, withBody bool) {
	info, err := h.backend.Info(p)
	if err != nil {
		h.serveError(w, p, fromBackendErr(err))
		return
	}

	if info.Kind != backend.KindDirectory {
		h.serveFile(w, p, info, withBody)
		return
	}

	if _, wantsJSON := r.URL.Query()["json"]; wantsJSON {
		h.serveJSONExport(w, p, withBody)
		return
	}
	h.serveIndex(w, p, withBody)
}

func (h *Handler) serveFile(w http.ResponseWriter, p backend.Path, info backend.Info, withBody bool) {
	var body []byte
	if withBody {
		b, err := h.backend.Get(p)
		if err != nil {
			h.serveError(w, p, fromBackendErr(err))
			return
		}
		body = b
	}
	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	// A GET's Content-Length is derived from the body actually fetched,
	// not info.Size, since a live-sampled backend (osinfofs) may report
	// a slightly different length between the Info and Get calls; only
	// a HEAD, which never fetches a body, falls back to info.Size.
	size := info.Size
	if withBody {
		size = int64(len(body))
	}
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	if !info.ModTime.IsZero() {
		w.Header().Set("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if withBody {
		w.Write(body)
	}
}

// serveIndex renders the optional small HTML index for a directory
// (spec.md §4.3's open format choice (a)): one anchor per child, with
// a trailing slash for subdirectories.
func (h *Handler) serveIndex(w http.ResponseWriter, p backend.Path, withBody bool) {
	children, err := h.backend.List(p)
	if err != nil {
		h.serveError(w, p, fromBackendErr(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if !withBody {
		return
	}

	entries := make([]indexEntry, 0, len(children))
	for _, name := range children {
		href := name
		if ci, err := h.backend.Info(p.Child(name)); err == nil && ci.Kind == backend.KindDirectory {
			href += "/"
		}
		entries = append(entries, indexEntry{Name: name, Href: href})
	}
	_ = indexTemplate.Execute(w, indexData{Path: dpath.URLEncode(p), Entries: entries})
}

// serveJSONExport renders the recursive subtree export of §4.4.
func (h *Handler) serveJSONExport(w http.ResponseWriter, p backend.Path, withBody bool) {
	tree, err := h.exportTree(p)
	if err != nil {
		h.serveError(w, p, fromBackendErr(err))
		return
	}
	body, err := json.Marshal(tree)
	if err != nil {
		h.serveError(w, p, ErrorBackend.WithCause(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if withBody {
		w.Write(body)
	}
}

// exportTree materialises the subtree rooted at p into the shape
// described by §4.4 (directories become objects keyed by child name;
// files become UTF-8 strings, or base64 for non-text bodies) via an
// explicit stack rather than direct recursion, per spec.md's design
// note for subtree traversals, mirroring enumerate's frame/stack shape.
// A directory's object cannot be filled in until all of its children
// have been visited, so each directory frame is visited twice: once to
// discover and push its children (recording them on the frame, which
// stays on the stack), once (after they're done) to collect their
// already-computed results into its own object.
func (h *Handler) exportTree(root backend.Path) (any, error) {
	type frame struct {
		path     backend.Path
		level    int
		children []string // nil until the directory's List has run
	}

	results := map[string]any{} // keyed by frame.path.String()
	stack := []frame{{path: root, level: 0}}
	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]

		if f.children == nil {
			info, err := h.backend.Info(f.path)
			if err != nil {
				return nil, err
			}
			if info.Kind != backend.KindDirectory {
				body, err := h.backend.Get(f.path)
				if err != nil {
					return nil, err
				}
				results[f.path.String()] = encodeExportValue(body, info.ContentType)
				stack = stack[:n]
				continue
			}
			if f.level >= maxTreeDepth {
				return nil, backend.Errorf("dav", "subtree at %s exceeds maximum export depth", f.path)
			}

			children, err := h.backend.List(f.path)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				results[f.path.String()] = map[string]any{}
				stack = stack[:n]
				continue
			}
			stack[n].children = children
			for _, name := range children {
				stack = append(stack, frame{path: f.path.Child(name), level: f.level + 1})
			}
			continue
		}

		obj := make(map[string]any, len(f.children))
		for _, name := range f.children {
			obj[name] = results[f.path.Child(name).String()]
			delete(results, f.path.Child(name).String())
		}
		results[f.path.String()] = obj
		stack = stack[:n]
	}
	return results[root.String()], nil
}

func encodeExportValue(body []byte, contentType string) string {
	if strings.HasPrefix(contentType, "text/") || contentType == "application/json" {
		return strings.ToValidUTF8(string(body), "�")
	}
	return base64.StdEncoding.EncodeToString(body)
}
