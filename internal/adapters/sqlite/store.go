// Package sqlite implements ports.Store on SQLite using the CGO-free
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// DBFileName is the database file created inside the state directory.
const DBFileName = "tiltapp.db"

// busyTimeoutPragma makes a writer wait for another process's lock instead of
// failing with SQLITE_BUSY. It is applied by the driver on every connection.
const busyTimeoutPragma = "busy_timeout(3000)"

// Store keeps key/value pairs in a single kv table.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the
// schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty sqlite path")
	}
	if p != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", p+"?_pragma="+url.QueryEscape(busyTimeoutPragma))
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases alive and serialises writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: p}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv(
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?;`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set upserts a single key.
func (s *Store) Set(key, value string) error {
	return s.SetMany([][2]string{{key, value}})
}

// SetMany upserts several keys in one transaction.
func (s *Store) SetMany(pairs [][2]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if _, err := tx.Exec(`
			INSERT INTO kv(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, p[0], p[1]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Remove deletes keys in one transaction.
func (s *Store) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := tx.Exec(`DELETE FROM kv WHERE key = ?;`, k); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Update reads and replaces key inside one write transaction. BEGIN
// IMMEDIATE takes the database write lock before the read.
func (s *Store) Update(key string, fn func(old string, ok bool) (string, error)) error {
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `BEGIN IMMEDIATE;`); err != nil {
		return err
	}
	rollback := func(err error) error {
		_, _ = conn.ExecContext(ctx, `ROLLBACK;`)
		return err
	}

	var old string
	ok := true
	err = conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?;`, key).Scan(&old)
	if errors.Is(err, sql.ErrNoRows) {
		ok = false
	} else if err != nil {
		return rollback(err)
	}

	v, err := fn(old, ok)
	if err != nil {
		return rollback(err)
	}
	if _, err := conn.ExecContext(ctx, `
		INSERT INTO kv(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, v); err != nil {
		return rollback(err)
	}
	_, err = conn.ExecContext(ctx, `COMMIT;`)
	if err != nil {
		return rollback(err)
	}
	return nil
}
