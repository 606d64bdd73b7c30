package store

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/infodaemon/infoterm/internal/config"

	_ "modernc.org/sqlite"
)

// MaxValueBytes bounds a single stored value, like a browser's per-origin
// storage quota.
const MaxValueBytes = 5 << 20

// ErrQuotaExceeded is returned when a value is larger than MaxValueBytes.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store wraps a SQLite database holding per-origin key-value pairs.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database in the infoterm data directory.
func OpenStore() (*Store, error) {
	dir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	dsn := filepath.Join(dir, "infoterm.db")

	db, err := sql.Open("sqlite", dsn+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewFromDB creates a Store from an existing *sql.DB and runs migrations.
// This is useful for testing with an in-memory database.
func NewFromDB(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			origin TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (origin, key)
		);
	`)
	return err
}

// Get returns the value stored under (origin, key).
func (s *Store) Get(origin, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE origin = ? AND key = ?`, origin, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", origin, key, err)
	}
	return value, true, nil
}

// Set stores value under (origin, key), replacing any previous value.
func (s *Store) Set(origin, key, value string) error {
	if len(value) > MaxValueBytes {
		return fmt.Errorf("set %s/%s: %w", origin, key, ErrQuotaExceeded)
	}
	_, err := s.db.Exec(`
		INSERT INTO kv (origin, key, value) VALUES (?, ?, ?)
		ON CONFLICT (origin, key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`,
		origin, key, value)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", origin, key, err)
	}
	return nil
}

// Delete removes (origin, key). Deleting a missing key is not an error.
func (s *Store) Delete(origin, key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE origin = ? AND key = ?`, origin, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", origin, key, err)
	}
	return nil
}

// Keys lists the keys stored for origin in lexical order.
func (s *Store) Keys(origin string) ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv WHERE origin = ? ORDER BY key`, origin)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", origin, err)
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

// Scope returns a view of the store restricted to one origin.
func (s *Store) Scope(origin string) *Scoped {
	return &Scoped{store: s, origin: origin}
}

// Scoped is a key-value view bound to a single origin. It satisfies
// history.Storage.
type Scoped struct {
	store  *Store
	origin string
}

// Get returns the value stored under key.
func (sc *Scoped) Get(key string) (string, bool, error) {
	return sc.store.Get(sc.origin, key)
}

// Set stores value under key.
func (sc *Scoped) Set(key, value string) error {
	return sc.store.Set(sc.origin, key, value)
}
