// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Raw is an interactive TTY put into raw mode for the duration of Run.
type Raw struct {
	in  *os.File
	out io.Writer
}

// NewRaw creates a raw-mode surface on in and out.
func NewRaw(in *os.File, out io.Writer) *Raw {
	return &Raw{in: in, out: out}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Write displays text as is; the controller already emits "\r\n".
func (r *Raw) Write(text string) {
	io.WriteString(r.out, text)
}

// Run switches the terminal to raw mode and reads keys until Ctrl+C,
// Ctrl+D on an empty line, end of input or cancellation.
func (r *Raw) Run(ctx context.Context, handler func(rune)) error {
	fd := int(r.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	in := &ctxReader{ctx: ctx, r: bufio.NewReader(r.in)}
	err = decodeKeys(in, handler)
	r.Write("\r\n")
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ctxReader stops a byte loop once its context is done. A blocked read
// returns only when the next byte arrives.
type ctxReader struct {
	ctx context.Context
	r   io.ByteReader
}

func (c *ctxReader) ReadByte() (byte, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.ReadByte()
}
