package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFileCreatesDir(t *testing.T) {
	path := Path(filepath.Join(t.TempDir(), "nested"), "quiz.db")

	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file missing: %v", err)
	}
}

func TestPath(t *testing.T) {
	if got := Path("data", Memory); got != Memory {
		t.Errorf("Path with memory = %q", got)
	}
	if got := Path("data", "quiz.db"); got != filepath.Join("data", "quiz.db") {
		t.Errorf("Path = %q", got)
	}
}
