// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package terminal provides the surfaces a REPL session runs on. A surface
// delivers keystrokes, already mapped onto the REPL input alphabet, to a
// handler and accepts the controller's writes.
package terminal

import "context"

// Input alphabet delivered to handlers.
const (
	KeySubmit rune = '\r'
	KeyDelete rune = 0x7F
)

// Control characters recognised by native surfaces.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	escape    = 0x1b
)

// Surface is a terminal the REPL can run on.
type Surface interface {
	// Write displays controller output.
	Write(text string)
	// Run delivers input to handler, one call per character, until the
	// input ends, the user quits or ctx is cancelled.
	Run(ctx context.Context, handler func(rune)) error
}

// lineTracker mirrors how many characters the current line holds so a
// surface can treat Ctrl+D on an empty line as end of input.
type lineTracker struct {
	n int
}

func (l *lineTracker) track(r rune) {
	switch {
	case r == KeySubmit:
		l.n = 0
	case r == KeyDelete:
		if l.n > 0 {
			l.n--
		}
	case r >= 0x20:
		l.n++
	}
}

func (l *lineTracker) empty() bool {
	return l.n == 0
}
