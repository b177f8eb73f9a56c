// Package csvfs adapts a CSV file to the backend.Backend contract: a
// _headers.txt listing column names, and one zero-padded row_NNNN.json
// per data row.
package csvfs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "csv"

// Open parses the CSV file at path into a read-only backend.
func Open(path string) (backend.Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows rather than failing the whole file
	records, err := r.ReadAll()
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	if len(records) == 0 {
		return nil, backend.Errorf(name, "empty CSV file")
	}

	headers := records[0]
	rows := records[1:]

	t := treefs.New(name)
	t.AddFile(backend.Path{"_headers.txt"}, []byte(strings.Join(headers, "\n")+"\n"), "text/plain", time.Time{})

	width := len(strconv.Itoa(maxIndex(len(rows))))
	for i, row := range rows {
		record := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(row) {
				record[h] = row[j]
			}
		}
		body, err := json.Marshal(record)
		if err != nil {
			return nil, backend.Wrap(name, err)
		}
		fname := fmt.Sprintf("row_%0*d.json", width, i)
		t.AddFile(backend.Path{fname}, body, "application/json", time.Time{})
	}
	t.SortChildren()
	return t, nil
}

// maxIndex returns the largest valid row index for n rows (n-1), or 0
// for zero/one rows, used to size the zero-padding width.
func maxIndex(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}
