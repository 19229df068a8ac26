// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package parser

import (
	"errors"
	"strings"
	"testing"

	"vortexlang.dev/vortex/internal/ast"
)

func render(stmts []ast.Stmt) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"-x", "-x"},
		{"let mut n: int = 5", "let mut n: int = 5"},
		{"n = n + 1", "n = n + 1"},
		{`print("hi", 2)`, `print("hi", 2)`},
		{"0..n", "0..n"},
		{"range(1, 4)", "1..4"},
		{"a < b == true", "a < b == true"},
		{"fn add(a: int, b) -> int: return a + b", "fn add(a: int, b) -> int: return a + b"},
		{"@gpu fn k(x): x * 2", "@gpu fn k(x): x * 2"},
		{"for i in 0..3: print(i)", "for i in 0..3: print(i)"},
		{"parallel i in 8: i", "parallel i in 8: i"},
		{"branch x > 1 => x", "branch x > 1 => x"},
		{"fallback => 0", "fallback => 0"},
		{"return", "return"},
		{"1 2", "1; 2"},
		{"", ""},
		{"// only a comment", ""},
	}

	for _, tt := range tests {
		stmts, err := ParseString(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.input, err)
			continue
		}
		if got := render(stmts); got != tt.expected {
			t.Errorf("%q: expected '%s', got '%s'", tt.input, tt.expected, got)
		}
	}
}

func TestIfChain(t *testing.T) {
	stmts, err := ParseString(`if a: 1 then b: 2 else: 3`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	root, ok := stmts[0].(ast.If)
	if !ok {
		t.Fatalf("expected ast.If, got %T", stmts[0])
	}
	chained, ok := root.Else.(ast.If)
	if !ok {
		t.Fatalf("expected then clause as nested ast.If, got %T", root.Else)
	}
	if _, ok := chained.Else.(*ast.Block); !ok {
		t.Errorf("expected else block, got %T", chained.Else)
	}
}

func TestBodiesEndAtNextConstruct(t *testing.T) {
	src := `fn one(): 1
let x = one()
for i in 2: print(i)
fn two(): 2`
	stmts, err := ParseString(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d: %s", len(stmts), render(stmts))
	}
	fn := stmts[0].(ast.FuncDef)
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("expected one statement in fn body, got %d", len(fn.Body.Stmts))
	}
}

func TestBracedBody(t *testing.T) {
	stmts, err := ParseString("fn f(n): { if n: 1 else: 2 } f(0)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %s", len(stmts), render(stmts))
	}
	fn := stmts[0].(ast.FuncDef)
	if _, ok := fn.Body.Stmts[0].(ast.If); !ok {
		t.Errorf("expected if inside braced body, got %T", fn.Body.Stmts[0])
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		line  int
	}{
		{"bad syntax (", "unexpected end of input", 1},
		{"let = 1", "expected variable name after 'let', got '='", 1},
		{"let x 1", "expected '=' in let statement, got '1'", 1},
		{"1 +", "unexpected end of input", 1},
		{"1 )", "unexpected ')'", 1},
		{"print(1", "unexpected end of input, expected ')' after arguments", 1},
		{"@gpu let", "expected 'fn' after @gpu, got 'let'", 1},
		{"fn (): 1", "expected function name after 'fn', got '('", 1},
		{"for i 0..1: i", "expected 'in' after loop variable, got '0'", 1},
		{"x\n\n!", "unexpected character '!'", 3},
		{"fn f(): { 1", "unexpected end of input, expected '}'", 1},
	}

	for _, tt := range tests {
		_, err := ParseString(tt.input)
		if err == nil {
			t.Errorf("%q: expected error", tt.input)
			continue
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected *Error, got %T", tt.input, err)
			continue
		}
		if pe.Msg != tt.msg {
			t.Errorf("%q: expected message '%s', got '%s'", tt.input, tt.msg, pe.Msg)
		}
		if pe.Line != tt.line {
			t.Errorf("%q: expected line %d, got %d", tt.input, tt.line, pe.Line)
		}
	}
}
