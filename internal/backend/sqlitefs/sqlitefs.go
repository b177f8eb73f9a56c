// Package sqlitefs adapts a SQLite database to the backend.Backend
// contract: one directory per table, a synthetic _schema.sql file per
// table, and one row_<rowid>.json file per row.
package sqlitefs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/boppreh/davall/internal/backend"
	"github.com/boppreh/davall/internal/backend/treefs"
)

const name = "sqlite"

// Open snapshots the SQLite database at path into a read-only backend.
// The entire contents are materialised at construction time, per spec
// §4.1's requirement that Info/List/Get answer in near-constant time.
func Open(path string) (backend.Backend, error) {
	// mode=ro opens the file without creating it and without taking a
	// write lock; davall never mutates the source.
	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return nil, backend.Wrap(name, err)
	}

	t := treefs.New(name)
	tables, err := listTables(db)
	if err != nil {
		return nil, backend.Wrap(name, err)
	}
	for _, tbl := range tables {
		if err := addTable(t, db, tbl); err != nil {
			return nil, backend.Wrap(name, err)
		}
	}
	t.SortChildren()
	return t, nil
}

type table struct {
	name, sql string
}

func listTables(db *sql.DB) ([]table, error) {
	rows, err := db.Query(`SELECT name, sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []table
	for rows.Next() {
		var tb table
		if err := rows.Scan(&tb.name, &tb.sql); err != nil {
			return nil, err
		}
		out = append(out, tb)
	}
	return out, rows.Err()
}

func addTable(t *treefs.Tree, db *sql.DB, tbl table) error {
	dir := backend.Path{tbl.name}
	t.AddDir(dir)
	t.AddFile(dir.Child("_schema.sql"), []byte(tbl.sql), "text/plain", time.Time{})

	rows, err := db.Query(fmt.Sprintf("SELECT rowid, * FROM %q ORDER BY rowid", tbl.name))
	if err != nil {
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}

		rowid := vals[0]
		record := make(map[string]any, len(cols)-1)
		for i := 1; i < len(cols); i++ {
			record[cols[i]] = normalize(vals[i])
		}
		body, err := json.Marshal(record)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("row_%v.json", rowid)
		t.AddFile(dir.Child(name), body, "application/json", time.Time{})
	}
	return rows.Err()
}

// normalize converts a database/sql driver value into something
// encoding/json can render sensibly; []byte (TEXT/BLOB) becomes a string.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
