// Package localstore is the console's durable client storage: a small
// namespaced JSON key/value table in an embedded sqlite file. It plays
// the role the browser's localStorage plays for the web client —
// session and preference blobs that must survive a process restart.
package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	namespace TEXT PRIMARY KEY,
	value     TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Store persists JSON values under fixed namespace keys.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. ":memory:" is accepted
// for tests.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the value stored under namespace into v. It returns
// false when the key is absent, which callers treat as
// "default state" rather than an error.
func (s *Store) Get(namespace string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE namespace = ?`, namespace).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", namespace, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", namespace, err)
	}
	return true, nil
}

// Put marshals v and stores it under namespace, replacing any previous
// value.
func (s *Store) Put(namespace string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (namespace, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, namespace, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", namespace, err)
	}
	return nil
}

// Delete removes the namespace key. Deleting an absent key is not an
// error.
func (s *Store) Delete(namespace string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE namespace = ?`, namespace); err != nil {
		return fmt.Errorf("delete %s: %w", namespace, err)
	}
	return nil
}
