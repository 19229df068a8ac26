// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package repl implements the terminal session controller: line buffering,
// echo, erase, submission and rendering of interpreter outcomes.
//
// The keystroke logic is the pure function Step; Controller applies the
// effects it returns to a Terminal and calls the interpreter on submit.
package repl

import (
	"strings"

	"github.com/google/uuid"
)

// Input alphabet.
const (
	Submit rune = '\r'
	Delete rune = 0x7F
)

// Session is the state of one REPL session.
type Session struct {
	ID     string // tags transcript entries
	Prompt string
	Buffer []rune // characters typed since the last submission
}

// NewSession creates a session with an empty buffer and a fresh ID.
func NewSession(prompt string) Session {
	return Session{
		ID:     uuid.NewString(),
		Prompt: prompt,
		Buffer: []rune{},
	}
}

// Line returns the buffered input.
func (s Session) Line() string {
	return string(s.Buffer)
}

// Blank reports whether the buffer is empty or holds only whitespace.
func (s Session) Blank() bool {
	return strings.TrimSpace(string(s.Buffer)) == ""
}

func (s Session) cleared() Session {
	s.Buffer = []rune{}
	return s
}
