package webstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// durable key/value store in the profile directory, backed by SQLite.
// plays the role localStorage plays for the web client: it survives
// restarts and is only consulted as a fallback.
type LocalStore struct {
	db *sql.DB
}

// opens (and if needed creates) the store at the given path
func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

	if _, err := db.Exec(schema); err != nil {
		db.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to initialize local store: %w", err)
	}

	return &LocalStore{db: db}, nil
}

// returns the value for a key
func (s *LocalStore) Get(key string) (string, bool) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			_ = err // unreadable store behaves as empty
		}
		return "", false
	}

	return value, true
}

// writes or replaces the value for a key
func (s *LocalStore) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key,
		value,
	)

	if err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}

	return nil
}

// removes a key
func (s *LocalStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete from local store: %w", err)
	}

	return nil
}

// closes the underlying database
func (s *LocalStore) Close() error {
	return s.db.Close()
}
