package lm

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Schema for the user-phrase store. added_at orders phrases so the
// newest one loads first.
const schema = `
CREATE TABLE IF NOT EXISTS user_phrases (
    key        TEXT NOT NULL,
    phrase     TEXT NOT NULL,
    added_at   INTEGER NOT NULL DEFAULT (strftime('%s','now')),
    PRIMARY KEY (key, phrase)
);

CREATE INDEX IF NOT EXISTS idx_user_phrases_key ON user_phrases(key);
`

// Store persists user phrases in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path and applies the
// schema.
func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Upsert records a phrase under a key, refreshing its recency when it
// already exists.
func (s *Store) Upsert(key, phrase string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_phrases (key, phrase, added_at)
		VALUES (?, ?, strftime('%s','now'))
		ON CONFLICT (key, phrase) DO UPDATE SET added_at = excluded.added_at`,
		key, phrase)
	if err != nil {
		return fmt.Errorf("upsert user phrase: %w", err)
	}
	return nil
}

// LoadAll returns every stored phrase keyed by reading key, newest
// first within a key.
func (s *Store) LoadAll() (map[string][]string, error) {
	rows, err := s.db.Query(`
		SELECT key, phrase FROM user_phrases ORDER BY key, added_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("load user phrases: %w", err)
	}
	defer rows.Close()

	phrases := make(map[string][]string)
	for rows.Next() {
		var key, phrase string
		if err := rows.Scan(&key, &phrase); err != nil {
			return nil, fmt.Errorf("scan user phrase: %w", err)
		}
		phrases[key] = append(phrases[key], phrase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user phrases: %w", err)
	}
	return phrases, nil
}
