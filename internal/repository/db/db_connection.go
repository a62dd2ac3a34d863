package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection serializes writers; the event log is a single shared table.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", p, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA busy_timeout = 5000;",
}

// sheet_header holds row 1 of the log, one record per column.
const schemaSheetHeader = `
CREATE TABLE IF NOT EXISTS sheet_header (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);
`

// event_rows holds the data rows; a higher seq sits closer to the header.
const schemaEventRows = `
CREATE TABLE IF NOT EXISTS event_rows (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    revision INTEGER NOT NULL,
    recorded_at TEXT NOT NULL, -- RFC3339 with nanoseconds, as rendered in the row cells
    pump TEXT NOT NULL,
    heater TEXT NOT NULL,
    tub TEXT NOT NULL,
    solar TEXT NOT NULL,
    delta TEXT NOT NULL,
    action TEXT NOT NULL,
    note TEXT NOT NULL,
    duration TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSheetHeader,
		schemaEventRows,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
