// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build js && wasm

package terminal

import (
	"context"
	"strings"
	"syscall/js"
)

// XTerm is a surface backed by an xterm.js Terminal object.
type XTerm struct {
	term js.Value
}

// NewXTerm wraps an opened xterm.js Terminal.
func NewXTerm(term js.Value) *XTerm {
	return &XTerm{term: term}
}

// Write forwards text to the terminal.
func (x *XTerm) Write(text string) {
	x.term.Call("write", text)
}

// Run subscribes to onData and delivers each character to handler until
// ctx is cancelled. Data that starts with ESC (arrow keys, function keys)
// is dropped as a whole.
func (x *XTerm) Run(ctx context.Context, handler func(rune)) error {
	onData := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		data := args[0].String()
		if strings.HasPrefix(data, "\x1b") {
			return nil
		}
		for _, r := range data {
			handler(r)
		}
		return nil
	})
	defer onData.Release()

	sub := x.term.Call("onData", onData)
	<-ctx.Done()
	sub.Call("dispose")
	return nil
}
