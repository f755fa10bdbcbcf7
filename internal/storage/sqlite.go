// Package storage opens the backing datastores shared by the history store and
// the feedback sink.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS locations (
	id            TEXT PRIMARY KEY,
	timestamp     INTEGER NOT NULL,
	latitude      REAL NOT NULL,
	longitude     REAL NOT NULL,
	location_name TEXT NOT NULL,
	country       TEXT NOT NULL DEFAULT '',
	country_code  TEXT NOT NULL DEFAULT '',
	over_water    INTEGER NOT NULL DEFAULT 0,
	timezone      TEXT NOT NULL DEFAULT '',
	raw_geocoder  TEXT,
	stored_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_locations_timestamp ON locations(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_locations_country_code ON locations(country_code, timestamp DESC);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	rating     INTEGER NOT NULL DEFAULT 0,
	feedback   TEXT NOT NULL,
	user_agent TEXT NOT NULL,
	source     TEXT NOT NULL,
	timestamp  INTEGER NOT NULL
);
`

// OpenSQLite opens or creates the SQLite database at path and applies the
// schema. ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}
