// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store persists REPL transcripts: one entry per evaluated line.
package store

import (
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Entry is one evaluated submission and its outcome.
type Entry struct {
	Session string    // session ID the line was typed in
	Seq     int       // 1-based position within the session; 0 means assign next
	Input   string    // submitted line
	Output  string    // result text, or the error message when Failed
	Failed  bool      // evaluation failed
	Kind    string    // error kind when Failed, empty otherwise
	Ts      time.Time // when the outcome was produced
}

// Store is the interface for transcript persistence.
type Store interface {
	// Append records an entry. A zero Seq is replaced with the next
	// sequence number for the entry's session; a zero Ts with the current time.
	Append(e Entry) error
	// Entries returns a session's entries in order. A positive limit keeps
	// only the most recent entries.
	Entries(session string, limit int) ([]Entry, error)
	// Sessions returns the IDs of every recorded session, oldest first.
	Sessions() ([]string, error)
	// Close releases resources.
	Close() error
}

func tail(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}
