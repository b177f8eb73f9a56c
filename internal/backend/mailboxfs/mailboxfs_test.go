package mailboxfs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/mailboxfs"
)

func TestMailboxSplitsMessages(t *testing.T) {
	mbox := "" +
		"From alice@example.com Mon Jan 1 00:00:00 2024\n" +
		"Subject: Hello World\n" +
		"From: alice@example.com\n" +
		"\n" +
		"body one\n" +
		"From bob@example.com Tue Jan 2 00:00:00 2024\n" +
		"Subject: Second Message\n" +
		"\n" +
		"body two\n"

	path := filepath.Join(t.TempDir(), "inbox.mbox")
	require.NoError(t, os.WriteFile(path, []byte(mbox), 0o644))

	fs, err := mailboxfs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	children, err := fs.List(nil)
	require.NoError(t, err)
	require.Len(t, children, 2)

	var sawHello, sawSecond bool
	for _, c := range children {
		if strings.Contains(c, "Hello_World") {
			sawHello = true
		}
		if strings.Contains(c, "Second_Message") {
			sawSecond = true
		}
		assert.True(t, strings.HasSuffix(c, ".eml"))
	}
	assert.True(t, sawHello)
	assert.True(t, sawSecond)
}
