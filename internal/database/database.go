package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"
)

// Memory opens a private in-memory database.
const Memory = ":memory:"

// Open creates a SQLite connection via libSQL. File databases get WAL
// journaling and a 5 s busy timeout; the parent directory is created if
// missing.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	pragmas := []string{"PRAGMA busy_timeout=5000"}
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == Memory {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	}

	// libSQL rejects Exec for PRAGMAs that return rows, so drain them
	// through QueryContext instead.
	for _, p := range pragmas {
		rows, err := db.QueryContext(ctx, p)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %s: %w", p, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Path joins the configured directory and file name.
func Path(dir, name string) string {
	if name == Memory {
		return Memory
	}
	return filepath.Join(dir, name)
}
