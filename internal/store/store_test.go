// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "vortex-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// exerciseStore runs the behaviour shared by every Store implementation.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	inputs := []Entry{
		{Session: "a", Input: "1 + 1", Output: "2"},
		{Session: "b", Input: "let x = 1", Output: ""},
		{Session: "a", Input: "bad syntax (", Output: "syntax error on line 1: unexpected end of input", Failed: true, Kind: "syntax"},
		{Session: "a", Input: "print(\"hi\")", Output: "hi"},
	}
	for _, e := range inputs {
		if err := s.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	entries, err := s.Entries("a", 0)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Seq != i+1 {
			t.Errorf("entry %d: expected seq %d, got %d", i, i+1, e.Seq)
		}
		if e.Ts.IsZero() {
			t.Errorf("entry %d: expected timestamp to be set", i)
		}
	}
	if entries[1].Input != "bad syntax (" || !entries[1].Failed || entries[1].Kind != "syntax" {
		t.Errorf("unexpected failed entry: %+v", entries[1])
	}
	if entries[0].Failed || entries[0].Output != "2" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}

	last, err := s.Entries("a", 2)
	if err != nil {
		t.Fatalf("Entries with limit failed: %v", err)
	}
	if len(last) != 2 || last[0].Seq != 2 || last[1].Seq != 3 {
		t.Errorf("expected the two most recent entries, got %+v", last)
	}

	none, err := s.Entries("missing", 0)
	if err != nil {
		t.Fatalf("Entries for unknown session failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no entries, got %d", len(none))
	}

	sessions, err := s.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 2 || sessions[0] != "a" || sessions[1] != "b" {
		t.Errorf("expected [a b], got %v", sessions)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Append(Entry{Session: "a"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(tempDB(t))
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	exerciseStore(t, s)
}

func TestExplicitSeqAndTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s := NewMemory()
	defer s.Close()

	s.Append(Entry{Session: "x", Seq: 10, Input: "a", Ts: ts})
	s.Append(Entry{Session: "x", Input: "b"})

	entries, _ := s.Entries("x", 0)
	if entries[0].Seq != 10 || !entries[0].Ts.Equal(ts) {
		t.Errorf("explicit fields not kept: %+v", entries[0])
	}
	if entries[1].Seq != 11 {
		t.Errorf("expected next seq 11, got %d", entries[1].Seq)
	}
}

func TestSQLitePersistence(t *testing.T) {
	path := tempDB(t)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	if err := s.Append(Entry{Session: "s1", Input: "40 + 2", Output: "42", Ts: ts}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	s.Close()

	// Close and reopen to verify persistence
	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	entries, err := s2.Entries("s1", 0)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
	if entries[0].Output != "42" || !entries[0].Ts.Equal(ts) {
		t.Errorf("unexpected entry after reopen: %+v", entries[0])
	}

	// Sequence numbering continues across reopen
	s2.Append(Entry{Session: "s1", Input: "x"})
	entries, _ = s2.Entries("s1", 0)
	if entries[1].Seq != 2 {
		t.Errorf("expected seq 2 after reopen, got %d", entries[1].Seq)
	}

	version, err := s2.GetMetadata("schema_version")
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, version)
	}
}

func TestSQLiteRejectsUnknownSchema(t *testing.T) {
	path := tempDB(t)

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db.Exec(`
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '99');
	`)
	db.Close()

	if _, err := NewSQLite(path); err == nil {
		t.Fatal("expected error for unsupported schema version")
	}
}

func TestSQLiteBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "t.db")
	if _, err := NewSQLite(path); err == nil {
		t.Error("expected error opening database in missing directory")
	}
}
