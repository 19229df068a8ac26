// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package vortex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	r, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestEval(t *testing.T) {
	r := newRuntime(t)

	result, err := r.Eval("1 + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "2" {
		t.Errorf("expected '2', got '%s'", result)
	}
}

func TestStatePersistsBetweenCalls(t *testing.T) {
	r := newRuntime(t)

	if _, err := r.Eval("let greeting = \"hi\""); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Eval("fn shout(s): return s + \"!\""); err != nil {
		t.Fatal(err)
	}
	result, err := r.Eval("shout(greeting)")
	if err != nil {
		t.Fatal(err)
	}
	if result != "hi!" {
		t.Errorf("expected 'hi!', got '%s'", result)
	}
}

func TestPrintOutputComesFirst(t *testing.T) {
	r := newRuntime(t)

	tests := []struct {
		input    string
		expected string
	}{
		{`print("a")`, "a"},
		{"for i in 0..3: print(i)", "0\n1\n2"},
		{`print("x", 1) 42`, "x 1\n42"},
		{`let n = 5`, ""},
	}

	for _, tt := range tests {
		result, err := r.Eval(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, result)
		}
	}
}

func TestOutputWriterOption(t *testing.T) {
	var sb strings.Builder
	r := newRuntime(t, WithOutput(&sb))

	result, err := r.Eval(`print("streamed") 7`)
	if err != nil {
		t.Fatal(err)
	}
	if result != "7" {
		t.Errorf("expected '7', got '%s'", result)
	}
	if sb.String() != "streamed\n" {
		t.Errorf("expected streamed output, got %q", sb.String())
	}
}

func TestErrorTypes(t *testing.T) {
	r := newRuntime(t)

	_, err := r.Eval("bad syntax (")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %T", err)
	}
	if !strings.Contains(err.Error(), "unexpected end of input") {
		t.Errorf("unexpected message: %v", err)
	}

	_, err = r.Eval("1 / 0")
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}

	// print output from a failed line is dropped
	result, err := r.Eval(`print("lost") undefinedName`)
	if err == nil || result != "" {
		t.Errorf("expected error and empty result, got '%s', %v", result, err)
	}
	result, _ = r.Eval("3")
	if result != "3" {
		t.Errorf("expected '3' after failed line, got '%s'", result)
	}
}

func TestMaxCallDepthOption(t *testing.T) {
	r := newRuntime(t, WithNoStdlib(), WithMaxCallDepth(10))

	r.Eval("fn down(n): return down(n - 1)")
	_, err := r.Eval("down(1)")
	if err == nil || !strings.Contains(err.Error(), "maximum call depth 10 exceeded") {
		t.Errorf("expected depth error, got %v", err)
	}
}

func TestReset(t *testing.T) {
	r := newRuntime(t)

	r.Eval("let x = 1")
	if err := r.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Eval("x"); err == nil {
		t.Error("expected x to be undefined after Reset")
	}
	result, err := r.Eval("abs(-3)")
	if err != nil || result != "3" {
		t.Errorf("expected prelude after Reset, got '%s' (%v)", result, err)
	}
}

func TestKernels(t *testing.T) {
	r := newRuntime(t)

	r.Eval("@gpu fn double(x): x * 2")
	kernels := r.Kernels()
	if len(kernels) != 1 || kernels[0] != "double" {
		t.Errorf("expected [double], got %v", kernels)
	}
}

func TestBindings(t *testing.T) {
	r := newRuntime(t, WithNoStdlib())

	if got := r.Bindings(); len(got) != 0 {
		t.Fatalf("expected no bindings without a prelude, got %v", got)
	}
	r.Eval("let x = 4")
	r.Eval("fn inc(n): n + 1")

	got := r.Bindings()
	want := []Binding{
		{Name: "inc", Kind: "fn", Value: "<fn inc(n)>"},
		{Name: "x", Kind: "int", Value: "4"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("binding %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	r.Eval("@gpu fn k(v): v")
	if err := r.Reset(); err != nil {
		t.Fatal(err)
	}
	if len(r.Bindings()) != 0 || len(r.Kernels()) != 0 {
		t.Errorf("expected empty state after Reset, got %v %v", r.Bindings(), r.Kernels())
	}
}

func TestEvalFile(t *testing.T) {
	r := newRuntime(t)

	path := filepath.Join(t.TempDir(), "prog.vx")
	src := "let a = 20\nlet b = 22\na + b\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	result, err := r.EvalFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if result != "42" {
		t.Errorf("expected '42', got '%s'", result)
	}

	if _, err := r.EvalFile(filepath.Join(t.TempDir(), "missing.vx")); err == nil {
		t.Error("expected error for missing file")
	}
}
