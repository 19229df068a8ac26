// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed transcript store.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// NewSQLite creates a new SQLite store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	if driverName == "" {
		return nil, errors.New("store: sqlite is not available in this build")
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	// Create tables if not exists
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS transcript (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			seq INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			failed INTEGER NOT NULL DEFAULT 0,
			kind TEXT NOT NULL DEFAULT '',
			ts TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript(session, seq);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating transcript schema: %w", err)
	}

	s := &SQLite{db: db}

	// Check/set schema version (use unlocked versions since we're in init)
	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}

	switch version {
	case "":
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Append records an entry.
func (s *SQLite) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if e.Seq == 0 {
		var last sql.NullInt64
		err := s.db.QueryRow("SELECT MAX(seq) FROM transcript WHERE session = ?", e.Session).Scan(&last)
		if err != nil {
			return err
		}
		e.Seq = int(last.Int64) + 1
	}
	if e.Ts.IsZero() {
		e.Ts = time.Now().UTC()
	}

	failed := 0
	if e.Failed {
		failed = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO transcript (session, seq, input, output, failed, kind, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.Session, e.Seq, e.Input, e.Output, failed, e.Kind, e.Ts.Format(time.RFC3339Nano))
	return err
}

// Entries returns a session's entries in order.
func (s *SQLite) Entries(session string, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(`
		SELECT session, seq, input, output, failed, kind, ts
		FROM transcript WHERE session = ? ORDER BY seq, id
	`, session)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var failed int
		var ts string
		if err := rows.Scan(&e.Session, &e.Seq, &e.Input, &e.Output, &failed, &e.Kind, &ts); err != nil {
			return nil, err
		}
		e.Failed = failed != 0
		if e.Ts, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("transcript entry %s/%d: %w", e.Session, e.Seq, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tail(entries, limit), nil
}

// Sessions returns every recorded session ID, oldest first.
func (s *SQLite) Sessions() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query("SELECT session FROM transcript GROUP BY session ORDER BY MIN(id)")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
