// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package repl

import "testing"

func typeAll(s Session, text string) (Session, []Effect) {
	var all []Effect
	for _, r := range text {
		var effects []Effect
		s, effects = Step(s, r)
		all = append(all, effects...)
	}
	return s, all
}

func kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}

func sameKinds(a, b []EffectKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStepPrintable(t *testing.T) {
	s := NewSession("vortex> ")
	s, effects := typeAll(s, "héllo ✓")
	if s.Line() != "héllo ✓" {
		t.Errorf("expected buffer 'héllo ✓', got '%s'", s.Line())
	}
	if len(effects) != 7 {
		t.Fatalf("expected one echo per character, got %d", len(effects))
	}
	for _, e := range effects {
		if e.Kind != EffectEcho {
			t.Errorf("expected echo, got %s", e.Kind)
		}
	}
	if effects[1].Text != "é" {
		t.Errorf("expected echo 'é', got '%s'", effects[1].Text)
	}
}

func TestStepControlCharactersIgnored(t *testing.T) {
	s, _ := typeAll(NewSession("> "), "ab")
	for _, ch := range []rune{0x00, 0x03, 0x04, '\t', '\n', 0x1b, 0x08, 0x1f} {
		next, effects := Step(s, ch)
		if len(effects) != 0 {
			t.Errorf("%U: expected no effects, got %v", ch, kinds(effects))
		}
		if next.Line() != "ab" {
			t.Errorf("%U: buffer changed to '%s'", ch, next.Line())
		}
	}
}

func TestStepDelete(t *testing.T) {
	s, _ := typeAll(NewSession("> "), "abc")
	s, effects := Step(s, Delete)
	if s.Line() != "ab" {
		t.Errorf("expected 'ab', got '%s'", s.Line())
	}
	if !sameKinds(kinds(effects), []EffectKind{EffectErase}) {
		t.Errorf("expected [erase], got %v", kinds(effects))
	}
}

func TestStepDeleteOnEmptyIsAbsorbed(t *testing.T) {
	s := NewSession("> ")
	s, effects := Step(s, Delete)
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %v", kinds(effects))
	}
	if s.Buffer == nil || len(s.Buffer) != 0 {
		t.Errorf("expected empty non-nil buffer, got %#v", s.Buffer)
	}
}

// Typing any printable sequence and deleting it character by character
// returns to an empty buffer with one erase per echo.
func TestStepTypeThenDeleteAll(t *testing.T) {
	inputs := []string{"", "a", "1 + 1", "  spaced  ", "ünïcödé", "let x = \"}{\""}
	for _, in := range inputs {
		s, echoes := typeAll(NewSession("> "), in)
		n := len([]rune(in))
		var erases []Effect
		for i := 0; i < n; i++ {
			var effects []Effect
			s, effects = Step(s, Delete)
			erases = append(erases, effects...)
		}
		if len(s.Buffer) != 0 {
			t.Errorf("%q: expected empty buffer, got '%s'", in, s.Line())
		}
		if len(echoes) != n || len(erases) != n {
			t.Errorf("%q: expected %d echoes and erases, got %d and %d", in, n, len(echoes), len(erases))
		}
	}
}

func TestStepSubmit(t *testing.T) {
	s, _ := typeAll(NewSession("> "), "1 + 1")
	s, effects := Step(s, Submit)
	want := []EffectKind{EffectNewline, EffectSubmit, EffectPrompt}
	if !sameKinds(kinds(effects), want) {
		t.Fatalf("expected %v, got %v", want, kinds(effects))
	}
	if effects[1].Text != "1 + 1" {
		t.Errorf("expected submitted line '1 + 1', got '%s'", effects[1].Text)
	}
	if len(s.Buffer) != 0 {
		t.Errorf("expected empty buffer after submit, got '%s'", s.Line())
	}
}

func TestStepSubmitBlank(t *testing.T) {
	for _, in := range []string{"", " ", "   ", "\u00a0"} {
		s, _ := typeAll(NewSession("> "), in)
		s, effects := Step(s, Submit)
		want := []EffectKind{EffectNewline, EffectPrompt}
		if !sameKinds(kinds(effects), want) {
			t.Errorf("%q: expected %v, got %v", in, want, kinds(effects))
		}
		if len(s.Buffer) != 0 {
			t.Errorf("%q: expected empty buffer", in)
		}
	}
}

func TestStepKeepsLineVerbatim(t *testing.T) {
	s, _ := typeAll(NewSession("> "), "  x  ")
	_, effects := Step(s, Submit)
	if effects[1].Text != "  x  " {
		t.Errorf("expected untrimmed line, got %q", effects[1].Text)
	}
}

func TestStepDoesNotAliasPreviousSession(t *testing.T) {
	s, _ := typeAll(NewSession("> "), "ab")
	shorter, _ := Step(s, Delete)
	longer, _ := Step(shorter, 'z')
	if s.Line() != "ab" {
		t.Errorf("original session changed to '%s'", s.Line())
	}
	if shorter.Line() != "a" || longer.Line() != "az" {
		t.Errorf("unexpected sessions '%s' and '%s'", shorter.Line(), longer.Line())
	}
}

func TestNewSessionIDs(t *testing.T) {
	a, b := NewSession("> "), NewSession("> ")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct session IDs, got '%s' and '%s'", a.ID, b.ID)
	}
}
