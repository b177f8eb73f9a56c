// Package mailboxfs adapts an mbox file to the backend.Backend contract:
// one file per message, named by zero-padded ordinal and a sanitised
// subject, body being the raw RFC 822 message.
package mailboxfs

import (
	"bufio"
	"bytes"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "mailbox"

const maxSubjectLen = 40

// Open parses the mbox file at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer f.Close()

	messages, err := splitMessages(f)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	width := len(strconv.Itoa(maxIndex(len(messages))))
	for i, raw := range messages {
		subject := extractSubject(raw)
		fname := fmt.Sprintf("%0*d_%s.eml", width, i, sanitizeSubject(subject))
		t.AddFile(backend.Path{fname}, raw, "message/rfc822", time.Time{})
	}
	t.SortChildren()
	return t, nil
}

func maxIndex(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}

// splitMessages scans an mbox file, splitting on "From " envelope lines
// that begin a line (the classic mbox delimiter). It does not parse the
// messages; extractSubject reads each one's headers with net/mail, the
// way rclone's backend/imap/imap.go parses fetched message headers.
func splitMessages(r *os.File) ([][]byte, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var messages [][]byte
	var current bytes.Buffer
	started := false

	flush := func() {
		if started && current.Len() > 0 {
			body := make([]byte, current.Len())
			copy(body, current.Bytes())
			messages = append(messages, bytes.TrimRight(body, "\n"))
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "From ") {
			flush()
			started = true
			continue
		}
		if started {
			current.WriteString(line)
			current.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return messages, nil
}

func extractSubject(raw []byte) string {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	return msg.Header.Get("Subject")
}

// sanitizeSubject flattens subject to filesystem-safe characters and
// truncates it, per spec §4.2's "subject flattened to filesystem-safe
// characters, truncated".
func sanitizeSubject(subject string) string {
	var b strings.Builder
	for _, r := range subject {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
		if b.Len() >= maxSubjectLen {
			break
		}
	}
	if b.Len() == 0 {
		return "no_subject"
	}
	return b.String()
}
