// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Line is a surface for piped, non-interactive input. Each input line is
// delivered as its characters followed by KeySubmit.
type Line struct {
	in  io.Reader
	out io.Writer
}

// NewLine creates a line surface reading in and writing out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: in, out: out}
}

// Write displays text as is.
func (l *Line) Write(text string) {
	io.WriteString(l.out, text)
}

// Run feeds every line of input to handler. A final line without a
// newline is still submitted. Lines of any length are accepted.
func (l *Line) Run(ctx context.Context, handler func(rune)) error {
	r := bufio.NewReader(l.in)
	for ctx.Err() == nil {
		line, err := r.ReadString('\n')
		if line != "" {
			for _, ch := range strings.TrimRight(line, "\r\n") {
				handler(ch)
			}
			handler(KeySubmit)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	l.Write("\r\n")
	return nil
}
