// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package bridge is the call boundary between the REPL and the interpreter.
// Every evaluation yields an Outcome; nothing the interpreter does, including
// a panic, escapes Evaluate.
package bridge

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"vortexlang.dev/vortex/pkg/vortex"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	KindInternal Kind = iota // panic or unclassified error
	KindSyntax               // input could not be parsed
	KindRuntime              // input parsed but failed while running
	KindCommand              // unknown or malformed REPL command
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindRuntime:
		return "runtime"
	case KindCommand:
		return "command"
	}
	return "internal"
}

// Error describes a failed evaluation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Action is a request to the session carried by a command outcome.
type Action int

const (
	ActionNone  Action = iota
	ActionClear        // clear the screen before rendering
	ActionQuit         // end the session after rendering
)

// Outcome is the result of one evaluation: Text on success, Err on failure.
type Outcome struct {
	Text   string
	Err    *Error
	Action Action
}

// OK reports whether the evaluation succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Evaluator is the single capability the REPL depends on.
type Evaluator interface {
	Evaluate(text string) Outcome
}

// Interpreter is anything that evaluates a line of source text.
type Interpreter interface {
	Eval(input string) (string, error)
}

// Bridge adapts an Interpreter to the Evaluator contract.
type Bridge struct {
	interp  Interpreter
	closeFn func() error
}

// New wraps interp.
func New(interp Interpreter) *Bridge {
	return &Bridge{interp: interp}
}

// Open creates a Vortex runtime and wraps it. Failure here is fatal to the
// session: no prompt should be shown.
func Open(opts ...vortex.Option) (*Bridge, error) {
	rt, err := vortex.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing interpreter: %w", err)
	}
	return &Bridge{interp: rt, closeFn: rt.Close}, nil
}

// Evaluate runs text through the interpreter and classifies any failure.
// Lines starting with ':' are REPL commands (see Help).
func (b *Bridge) Evaluate(text string) (out Outcome) {
	defer recoverInto(&out)

	if line := strings.TrimSpace(text); strings.HasPrefix(line, ":") {
		return b.command(line)
	}
	result, err := b.interp.Eval(text)
	if err != nil {
		return Outcome{Err: Classify(err)}
	}
	return Outcome{Text: result}
}

// Load runs the source file at path.
func (b *Bridge) Load(path string) (out Outcome) {
	defer recoverInto(&out)

	var result string
	var err error
	if c, ok := b.interp.(Commands); ok {
		result, err = c.EvalFile(path)
	} else {
		var src []byte
		if src, err = os.ReadFile(path); err == nil {
			result, err = b.interp.Eval(string(src))
		}
	}
	if err != nil {
		return Outcome{Err: Classify(err)}
	}
	return Outcome{Text: result}
}

func recoverInto(out *Outcome) {
	if r := recover(); r != nil {
		*out = Outcome{Err: &Error{Kind: KindInternal, Message: fmt.Sprintf("interpreter panic: %v", r)}}
	}
}

// Classify maps an interpreter error onto an Error.
func Classify(err error) *Error {
	var se *vortex.SyntaxError
	if errors.As(err, &se) {
		return &Error{Kind: KindSyntax, Message: se.Error()}
	}
	var re *vortex.RuntimeError
	if errors.As(err, &re) {
		return &Error{Kind: KindRuntime, Message: re.Error()}
	}
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// Close releases the wrapped runtime when the bridge owns it.
func (b *Bridge) Close() error {
	if b.closeFn != nil {
		return b.closeFn()
	}
	return nil
}
