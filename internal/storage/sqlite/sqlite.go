package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schema — ідемпотентна повна схема; sqlite-бекенд обходиться без goose.
const schema = `
CREATE TABLE IF NOT EXISTS batches (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    status     TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'closed'))
);

CREATE TABLE IF NOT EXISTS cartridges (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    date_received TEXT,
    department    TEXT NOT NULL,
    status        TEXT NOT NULL CHECK (status IN ('withdrawn', 'sent', 'returned', 'issued')),
    date_sent     TEXT,
    date_returned TEXT,
    date_given    TEXT,
    batch_id      INTEGER NOT NULL REFERENCES batches (id)
);

CREATE INDEX IF NOT EXISTS idx_cartridges_batch ON cartridges (batch_id);
`

// Open відкриває файл бази, налаштовує прагми і створює схему.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}
