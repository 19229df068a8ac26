// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package bridge

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"vortexlang.dev/vortex/pkg/vortex"
)

type interpFunc func(string) (string, error)

func (f interpFunc) Eval(input string) (string, error) { return f(input) }

func TestOpenEvaluate(t *testing.T) {
	b, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	out := b.Evaluate("1 + 1")
	if !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	if out.Text != "2" {
		t.Errorf("expected '2', got '%s'", out.Text)
	}
}

func TestOpenFailure(t *testing.T) {
	_, err := Open(vortex.WithPrelude("fn ("))
	if err == nil {
		t.Fatal("expected Open to fail with a broken prelude")
	}
	if !strings.HasPrefix(err.Error(), "initializing interpreter: ") {
		t.Errorf("unexpected error '%v'", err)
	}
}

func TestClassification(t *testing.T) {
	b, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	tests := []struct {
		input string
		kind  Kind
		msg   string
	}{
		{"bad syntax (", KindSyntax, "unexpected end of input"},
		{"1 / 0", KindRuntime, "division by zero"},
		{"nothing_here", KindRuntime, "undefined identifier"},
	}

	for _, tt := range tests {
		out := b.Evaluate(tt.input)
		if out.OK() {
			t.Errorf("%q: expected failure, got '%s'", tt.input, out.Text)
			continue
		}
		if out.Err.Kind != tt.kind {
			t.Errorf("%q: expected kind %s, got %s", tt.input, tt.kind, out.Err.Kind)
		}
		if !strings.Contains(out.Err.Message, tt.msg) {
			t.Errorf("%q: expected message containing '%s', got '%s'", tt.input, tt.msg, out.Err.Message)
		}
	}
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	b := New(interpFunc(func(string) (string, error) {
		return "", fmt.Errorf("wrapped: %w", errors.New("disk on fire"))
	}))
	out := b.Evaluate("x")
	if out.OK() || out.Err.Kind != KindInternal {
		t.Fatalf("expected internal error, got %+v", out)
	}
	if out.Err.Message != "wrapped: disk on fire" {
		t.Errorf("unexpected message '%s'", out.Err.Message)
	}
}

func TestWrappedTypedErrorIsClassified(t *testing.T) {
	b := New(interpFunc(func(string) (string, error) {
		return "", fmt.Errorf("outer: %w", &vortex.SyntaxError{Line: 2, Msg: "boom"})
	}))
	out := b.Evaluate("x")
	if out.Err == nil || out.Err.Kind != KindSyntax {
		t.Fatalf("expected syntax error, got %+v", out)
	}
	if out.Err.Message != "syntax error on line 2: boom" {
		t.Errorf("unexpected message '%s'", out.Err.Message)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	b := New(interpFunc(func(string) (string, error) {
		panic("kaboom")
	}))
	out := b.Evaluate("x")
	if out.OK() {
		t.Fatal("expected failure from panic")
	}
	if out.Err.Kind != KindInternal {
		t.Errorf("expected internal kind, got %s", out.Err.Kind)
	}
	if !strings.Contains(out.Err.Message, "kaboom") {
		t.Errorf("expected panic value in message, got '%s'", out.Err.Message)
	}
}

func TestCloseWithoutOwnedRuntime(t *testing.T) {
	b := New(interpFunc(func(s string) (string, error) { return s, nil }))
	if err := b.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
