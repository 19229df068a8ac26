// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package vortex

import (
	"errors"
	"strings"
	"testing"
)

func TestPreludeFunctions(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	tests := []struct {
		input    string
		expected string
	}{
		{"abs(-4)", "4"},
		{"abs(2.5)", "2.5"},
		{"max(3, 9)", "9"},
		{"min(3, 9)", "3"},
		{"clamp(15, 0, 10)", "10"},
		{"clamp(-1, 0, 10)", "0"},
		{"pow(2, 10)", "1024"},
		{"sum(5)", "10"},
		{"PI > 3.14", "true"},
	}

	for _, tt := range tests {
		result, err := r.Eval(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("%q: expected '%s', got '%s'", tt.input, tt.expected, result)
		}
	}
}

func TestNoStdlibOption(t *testing.T) {
	r, err := New(WithNoStdlib())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	// Prelude functions must not exist when stdlib is disabled
	_, err = r.Eval("abs(-1)")
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if !strings.Contains(re.Msg, "undefined identifier 'abs'") {
		t.Errorf("unexpected message '%s'", re.Msg)
	}
}

func TestCustomPrelude(t *testing.T) {
	r, err := New(WithPrelude(`fn greet(name): return "hello " + name`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Close()

	result, err := r.Eval(`greet("world")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", result)
	}

	// The default prelude is replaced, not extended
	if _, err := r.Eval("abs(-1)"); err == nil {
		t.Error("expected abs to be undefined with a custom prelude")
	}
}

func TestBrokenPreludeFailsNew(t *testing.T) {
	_, err := New(WithPrelude("let = 1"))
	if err == nil {
		t.Fatal("expected error for broken prelude")
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("expected wrapped SyntaxError, got %T", err)
	}
	if !strings.HasPrefix(err.Error(), "loading prelude: ") {
		t.Errorf("unexpected error text '%s'", err)
	}
}

func TestPreludePrintIsNotReturned(t *testing.T) {
	r, err := New(WithPrelude(`print("loading")`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := r.Eval("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "1" {
		t.Errorf("expected '1', got '%s'", result)
	}
}
