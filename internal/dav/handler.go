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

// Package dav implements the read-only subset of RFC 4918 needed to
// browse a backend.Backend over HTTP: OPTIONS, GET, HEAD, and PROPFIND,
// with every other verb rejected by 405. It is adapted from
// google-go-webdav's webdav.go, stripped of everything that mutates
// state (PUT, DELETE, MKCOL, COPY, MOVE, PROPPATCH, LOCK, UNLOCK, and
// the conditional-request/lock machinery that exists only to guard
// those verbs).
package dav

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/boppreh/davall/internal/backend"
	dpath "github.com/boppreh/davall/internal/dav/path"
)

// allowedMethods is advertised by both OPTIONS and every 405 response,
// per spec.md §4.3.
const allowedMethods = "OPTIONS, GET, HEAD, PROPFIND"

// Handler is a http.Handler that serves a single backend.Backend
// read-only over WebDAV.
type Handler struct {
	backend backend.Backend
	log     zerolog.Logger
}

// New wraps b as a WebDAV http.Handler.
func New(b backend.Backend, log zerolog.Logger) *Handler {
	return &Handler{backend: b, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := dpath.Canonicalize(r.URL.Path)
	if err != nil {
		h.log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejecting malformed path")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodOptions:
		h.doOptions(w)
	case http.MethodGet:
		h.doGetOrHead(w, r, p, true)
	case http.MethodHead:
		h.doGetOrHead(w, r, p, false)
	case "PROPFIND":
		h.doPropfind(w, r, p)
	default:
		w.Header().Set("Allow", allowedMethods)
		h.serveError(w, p, ErrorNotAllowed)
	}
}

// doOptions answers with the class-1 compliance the server actually
// offers: no locking, no write methods.
// http://www.webdav.org/specs/rfc4918.html#dav.compliance.classes
func (h *Handler) doOptions(w http.ResponseWriter) {
	w.Header().Set("DAV", "1")
	w.Header().Set("Allow", allowedMethods)
	w.WriteHeader(http.StatusOK)
}

// serveError maps a dav.Error (or a raw error, treated as BackendError)
// onto the response, logging it at a level matching severity.
func (h *Handler) serveError(w http.ResponseWriter, p backend.Path, err error) {
	de, ok := err.(Error)
	if !ok {
		de = ErrorBackend.WithCause(err)
	}
	if de.code >= http.StatusInternalServerError {
		h.log.Error().Err(de).Str("path", p.String()).Msg("backend error")
	} else {
		h.log.Debug().Err(de).Str("path", p.String()).Msg("request failed")
	}
	http.Error(w, de.Error(), de.code)
}
