// Package session provides the persistent client storage: a small
// sqlite-backed key-value store holding the session credential and the
// last-fetched task snapshot.
package session

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Fixed storage keys.
const (
	keyCredential = "token"
	keySnapshot   = "snapshot"
)

// ErrNoCredential indicates no session credential is stored. Dependent
// operations must abandon their remote call and send the user back to
// authentication without a network request.
var ErrNoCredential = errors.New("no session credential")

// Store is the persistent client storage.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("state path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS state (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Credential returns the stored bearer credential, or ErrNoCredential
// if none is stored.
func (s *Store) Credential() (string, error) {
	v, err := s.get(keyCredential)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNoCredential
	}
	return string(v), nil
}

// SetCredential stores the bearer credential.
func (s *Store) SetCredential(token string) error {
	return s.set(keyCredential, []byte(token))
}

// HasCredential reports whether a credential is stored.
func (s *Store) HasCredential() bool {
	_, err := s.Credential()
	return err == nil
}

// SaveSnapshot stores the serialized last-fetched task page. The
// snapshot is advisory only; it is never used for recovery.
func (s *Store) SaveSnapshot(data []byte) error {
	return s.set(keySnapshot, data)
}

// Snapshot returns the stored snapshot, or nil if none is stored.
func (s *Store) Snapshot() ([]byte, error) {
	return s.get(keySnapshot)
}

// Clear wipes all persisted client state. Called on logout and
// whenever the remote service reports the credential invalid.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM state;`)
	return err
}

func (s *Store) get(key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		if key == keyCredential {
			return nil, ErrNoCredential
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	return err
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
