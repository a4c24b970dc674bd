package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps one JSONB document per key.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	ddl := `CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte) error {
	if !json.Valid(data) {
		return errors.New("snapshot is not valid JSON")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, data, updated_at) VALUES (?, jsonb(?), ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT json(data) FROM snapshots WHERE id = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", key, err)
	}
	return []byte(data), nil
}

// Clear is a no-op for keys that are not stored.
func (s *SQLiteStore) Clear(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, key); err != nil {
		return fmt.Errorf("clearing snapshot %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Check reports whether the database is reachable.
func (s *SQLiteStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
