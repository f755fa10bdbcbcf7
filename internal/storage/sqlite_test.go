package storage

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLite_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "iss.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer db.Close()

	for _, table := range []string{"locations", "feedback"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iss.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO feedback (id, feedback, user_agent, source, timestamp) VALUES ('a', 'hi', 'ua', 'test', 1)`); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM feedback`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 after reopen", count)
	}
}
