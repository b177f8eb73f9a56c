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
	"errors"
	"fmt"
	"net/http"

	"github.com/boppreh/davall/internal/backend"
)

// Error is the common error type used for frontend-level failures; it
// always carries the HTTP status it maps to, per spec.md §7's two
// internal error kinds (NotFound, BackendError) plus malformed-request
// rejections.
type Error struct {
	code  int
	text  string
	cause error
}

var (
	ErrorBadRequest = Error{code: http.StatusBadRequest, text: "BadRequest"}
	ErrorNotFound   = Error{code: http.StatusNotFound, text: "NotFound"}
	ErrorBackend    = Error{code: http.StatusInternalServerError, text: "BackendError"}
	ErrorNotAllowed = Error{code: http.StatusMethodNotAllowed, text: "NotAllowed"}
)

// WithCause chains a cause onto a reported HTTP error code.
func (e Error) WithCause(cause error) Error {
	return Error{code: e.code, text: e.text, cause: cause}
}

// HTTPCode gets the HTTP status code appropriate for the error.
func (e Error) HTTPCode() int {
	return e.code
}

func (e Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.text, e.cause)
	}
	return e.text
}

// fromBackendErr classifies a backend.Backend error as the frontend's
// NotFound or BackendError kind.
func fromBackendErr(err error) Error {
	if errors.Is(err, backend.ErrNotFound) {
		return ErrorNotFound.WithCause(err)
	}
	return ErrorBackend.WithCause(err)
}
