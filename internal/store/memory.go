// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package store

import (
	"sync"
	"time"
)

// Memory is an in-memory transcript store. It is the default when no
// transcript file is configured and the only store in the browser.
type Memory struct {
	mu       sync.RWMutex
	entries  map[string][]Entry
	sessions []string
	closed   bool
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string][]Entry),
	}
}

// Append records an entry.
func (m *Memory) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	list, seen := m.entries[e.Session]
	if !seen {
		m.sessions = append(m.sessions, e.Session)
	}
	if e.Seq == 0 {
		e.Seq = 1
		if n := len(list); n > 0 {
			e.Seq = list[n-1].Seq + 1
		}
	}
	if e.Ts.IsZero() {
		e.Ts = time.Now().UTC()
	}
	m.entries[e.Session] = append(list, e)
	return nil
}

// Entries returns a session's entries in order.
func (m *Memory) Entries(session string, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	list := tail(m.entries[session], limit)
	out := make([]Entry, len(list))
	copy(out, list)
	return out, nil
}

// Sessions returns every recorded session ID, oldest first.
func (m *Memory) Sessions() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]string, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}

// Close marks the store closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
