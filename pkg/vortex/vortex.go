// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package vortex provides the public API for the Vortex interpreter.
package vortex

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"vortexlang.dev/vortex/internal/eval"
	"vortexlang.dev/vortex/internal/parser"
	"vortexlang.dev/vortex/internal/stdlib"
)

// Version is the interpreter release shown in banners.
const Version = "0.3.0"

// SyntaxError is returned when input cannot be parsed.
type SyntaxError = parser.Error

// RuntimeError is returned when a parsed program fails while running.
type RuntimeError = eval.Error

// Runtime is the Vortex interpreter runtime. Bindings made by one Eval call
// stay visible to the next.
type Runtime struct {
	evaluator    *eval.Evaluator
	logger       *slog.Logger
	outputWriter func(text string) error
	prelude      string // Custom prelude source (if empty, uses DefaultPrelude)
	noStdlib     bool   // If true, skip loading prelude
	maxCallDepth int

	captured strings.Builder
}

// DefaultPrelude is the standard library loaded unless WithNoStdlib is given.
var DefaultPrelude = stdlib.Prelude

// New creates a new Vortex runtime with the given options. It fails only
// when the prelude does not load.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	writer := r.outputWriter
	if writer == nil {
		writer = func(text string) error {
			r.captured.WriteString(text)
			return nil
		}
	}

	r.evaluator = eval.New(
		eval.WithLogger(r.logger),
		eval.WithOutputWriter(writer),
		eval.WithMaxCallDepth(r.maxCallDepth),
	)

	if err := r.loadPrelude(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runtime) loadPrelude() error {
	if r.noStdlib {
		return nil
	}
	prelude := r.prelude
	if prelude == "" {
		prelude = DefaultPrelude
	}
	if _, err := r.evaluator.Eval(prelude); err != nil {
		return fmt.Errorf("loading prelude: %w", err)
	}
	r.captured.Reset()
	r.logger.Debug("prelude loaded", "globals", len(r.evaluator.Globals().Names()))
	return nil
}

// Eval evaluates a Vortex string and returns the result. Text written by
// print during the call comes first, followed by the value of the program;
// trailing newlines are dropped.
func (r *Runtime) Eval(input string) (string, error) {
	return r.EvalReader(strings.NewReader(input))
}

// EvalReader evaluates Vortex from a reader.
func (r *Runtime) EvalReader(reader io.Reader) (string, error) {
	r.captured.Reset()
	result, err := r.evaluator.EvalReader(reader)
	out := r.captured.String()
	r.captured.Reset()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out+result, "\n"), nil
}

// EvalFile evaluates a Vortex file.
func (r *Runtime) EvalFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Reset drops every binding made since New and reloads the prelude.
func (r *Runtime) Reset() error {
	r.evaluator.Reset()
	return r.loadPrelude()
}

// Binding describes one global name.
type Binding struct {
	Name  string
	Kind  string
	Value string
}

// Bindings returns the global names defined by the prelude and by
// evaluated code, sorted by name. Builtins are not included.
func (r *Runtime) Bindings() []Binding {
	globals := r.evaluator.Globals()
	var out []Binding
	for _, name := range globals.Names() {
		v, _ := globals.Get(name)
		if _, ok := v.(*eval.Builtin); ok {
			continue
		}
		out = append(out, Binding{Name: name, Kind: v.Kind(), Value: v.String()})
	}
	return out
}

// Kernels returns the names of functions declared with @gpu.
func (r *Runtime) Kernels() []string {
	return r.evaluator.GPU().Kernels()
}

// Close releases resources.
func (r *Runtime) Close() error {
	return nil
}
