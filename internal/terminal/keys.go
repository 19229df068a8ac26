// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package terminal

import (
	"errors"
	"io"
	"unicode/utf8"
)

// errQuit ends a read loop without error.
var errQuit = errors.New("quit")

// decodeKeys reads raw terminal bytes, decodes UTF-8 and maps keys onto
// the input alphabet. Enter (CR or LF) becomes KeySubmit; DEL and BS become
// KeyDelete. Escape sequences such as arrow keys are consumed and dropped.
// An invalid UTF-8 byte is dropped on its own; the bytes after it are read
// again. Ctrl+C, and Ctrl+D on an empty line, end the loop with errQuit.
func decodeKeys(r io.ByteReader, emit func(rune)) error {
	var line lineTracker
	send := func(ch rune) {
		line.track(ch)
		emit(ch)
	}

	var replay []byte
	next := func() (byte, error) {
		if len(replay) > 0 {
			b := replay[0]
			replay = replay[1:]
			return b, nil
		}
		return r.ReadByte()
	}

	var pending []byte
	for {
		b, err := next()
		if err != nil {
			return err
		}

		if len(pending) > 0 || b >= utf8.RuneSelf {
			pending = append(pending, b)
			if !utf8.FullRune(pending) {
				continue
			}
			ch, size := utf8.DecodeRune(pending)
			if size < len(pending) {
				replay = append(append([]byte(nil), pending[size:]...), replay...)
			}
			pending = pending[:0]
			if ch != utf8.RuneError || size > 1 {
				send(ch)
			}
			continue
		}

		switch b {
		case ctrlC:
			return errQuit
		case ctrlD:
			if line.empty() {
				return errQuit
			}
		case '\r', '\n':
			send(KeySubmit)
		case 0x7f, backspace:
			send(KeyDelete)
		case escape:
			if err := skipEscape(next); err != nil {
				return err
			}
		default:
			send(rune(b))
		}
	}
}

// skipEscape consumes the rest of an escape sequence: CSI (ESC [ ... final),
// SS3 (ESC O x) or a two-byte Alt+key.
func skipEscape(next func() (byte, error)) error {
	b, err := next()
	if err != nil {
		return err
	}
	switch b {
	case '[':
		for {
			c, err := next()
			if err != nil {
				return err
			}
			if c >= 0x40 && c <= 0x7e {
				return nil
			}
		}
	case 'O':
		_, err := next()
		return err
	}
	return nil
}
