package storage

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Snapshot keys written by the engine.
const (
	KeyChats       = "chats"
	KeyCategories  = "categories"
	KeyTemplates   = "templates"
	KeyPersonality = "personality"
	KeyAppearance  = "appearance"
)

// Store implements the durable snapshot adapter on a local SQLite file: one
// row per key, the value being the JSON-serialized snapshot.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating snapshots table")
	}

	return &Store{db: db}, nil
}

// Save writes the snapshot for key, replacing any previous value.
func (s *Store) Save(key string, value []byte) error {
	_, err := s.db.Exec(`
		REPLACE INTO snapshots (key, value, updated_at)
		VALUES (?, ?, ?)
	`, key, string(value), time.Now().UnixMicro())
	if err != nil {
		return errors.Wrapf(err, "saving snapshot %q", key)
	}
	return nil
}

// Load returns the snapshot for key. An absent key is not an error; it means
// "start empty" and reports ok=false.
func (s *Store) Load(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM snapshots WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "loading snapshot %q", key)
	}
	return []byte(value), true, nil
}

// Delete removes the snapshot for key, if present.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "deleting snapshot %q", key)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
