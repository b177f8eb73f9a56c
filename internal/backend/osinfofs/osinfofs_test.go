package osinfofs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/osinfofs"
)

func TestRootListing(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	assert.Contains(t, children, "kernel")
	assert.Contains(t, children, "hostname")
	assert.Contains(t, children, "environment")
}

func TestKernelReportsGOOS(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	body, err := fs.Get(backend.Path{"kernel"})
	require.NoError(t, err)
	assert.Contains(t, string(body), "/")
}

func TestUptimeResamplesOnEveryGet(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	first, err := fs.Get(backend.Path{"uptime"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := fs.Get(backend.Path{"uptime"})
	require.NoError(t, err)
	assert.NotEqual(t, string(first), string(second))
}

func TestEnvironmentDirectoryNotFound(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	_, err := fs.Get(backend.Path{"environment", "__DAVALL_DOES_NOT_EXIST__"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestUnknownPathNotFound(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	_, err := fs.Get(backend.Path{"nope"})
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

// Invariant: len(Get(p)) == Info(p).Size, even for a file that
// re-samples a different body on every call.
func TestInfoSizeMatchesGetLength(t *testing.T) {
	fs := osinfofs.New()
	t.Cleanup(func() { _ = fs.Close() })

	info, err := fs.Info(backend.Path{"kernel"})
	require.NoError(t, err)
	body, err := fs.Get(backend.Path{"kernel"})
	require.NoError(t, err)
	assert.EqualValues(t, len(body), info.Size)
}
