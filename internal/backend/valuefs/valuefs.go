// Package valuefs walks a generic decoded value tree — the shape both
// encoding/json and BurntSushi/toml produce when decoded into `any` —
// into a treefs.Tree, per spec §4.2's shared JSON/TOML mapping rules:
// scalars become files, maps become directories keyed by field name,
// slices become directories keyed by decimal index.
package valuefs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

// Render renders a scalar leaf value to its file body. Implementations
// are format-specific (e.g. JSON preserves the exact numeric literal via
// json.Number; TOML adds RFC 3339 rendering of its datetimes on top of
// DefaultRender).
type Render func(v any) (body []byte, contentType string, ok bool)

// Walk builds t from v, rooted at root. Maps are asserted as
// map[string]any, sequences as []any; anything else is treated as a
// scalar and passed to render. render returning ok=false means v is of
// an unrecognised type, reported as a BackendError.
func Walk(t *treefs.Tree, backendName string, root backend.Path, v any, render Render) error {
	switch val := v.(type) {
	case map[string]any:
		t.AddDir(root)
		for k, child := range val {
			if err := Walk(t, backendName, root.Child(k), child, render); err != nil {
				return err
			}
		}
		return nil
	case []any:
		t.AddDir(root)
		for i, child := range val {
			if err := Walk(t, backendName, root.Child(strconv.Itoa(i)), child, render); err != nil {
				return err
			}
		}
		return nil
	default:
		body, ct, ok := render(val)
		if !ok {
			return backend.Errorf(backendName, "value at %s has unsupported type %T", root, v)
		}
		if len(root) == 0 {
			// A bare scalar document has no name to file it under;
			// synthesize a single root file.
			t.AddFile(backend.Path{"_value"}, body, ct, time.Time{})
			return nil
		}
		t.AddFile(root, body, ct, time.Time{})
		return nil
	}
}

// DefaultRender renders JSON-like scalars (string/float64/bool/nil/
// json.Number) to their textual form, matching spec §4.2: "A scalar
// value at a key becomes a file whose body is the textual form of the
// value ... Content-type for scalar files is text/plain."
func DefaultRender(v any) ([]byte, string, bool) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), "text/plain", true
	case bool:
		return []byte(strconv.FormatBool(val)), "text/plain", true
	case string:
		return []byte(val), "text/plain", true
	case fmt.Stringer:
		return []byte(val.String()), "text/plain", true
	case int64:
		return []byte(strconv.FormatInt(val, 10)), "text/plain", true
	case float64:
		return []byte(strconv.FormatFloat(val, 'g', -1, 64)), "text/plain", true
	default:
		return nil, "", false
	}
}
