// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package repl

// EffectKind identifies what an Effect asks the controller to do.
type EffectKind int

const (
	EffectEcho    EffectKind = iota // write Text
	EffectErase                     // erase one column to the left
	EffectNewline                   // end the current terminal line
	EffectSubmit                    // evaluate Text and render the outcome
	EffectPrompt                    // start a fresh prompt line
)

func (k EffectKind) String() string {
	switch k {
	case EffectEcho:
		return "echo"
	case EffectErase:
		return "erase"
	case EffectNewline:
		return "newline"
	case EffectSubmit:
		return "submit"
	case EffectPrompt:
		return "prompt"
	}
	return "unknown"
}

// Effect is one output action produced by Step.
type Effect struct {
	Kind EffectKind
	Text string
}

// Step applies one input character to s. It never modifies s.Buffer in
// place, so a caller may keep the previous session.
//
//   - Submit ends the line. A blank line yields Newline, Prompt; any other
//     line yields Newline, Submit, Prompt. The returned buffer is empty.
//   - Delete drops the last character and yields Erase; on an empty buffer
//     it does nothing.
//   - Any other character at or above 0x20 is appended and echoed.
//   - Remaining control characters are ignored.
func Step(s Session, ch rune) (Session, []Effect) {
	switch {
	case ch == Submit:
		if s.Blank() {
			return s.cleared(), []Effect{{Kind: EffectNewline}, {Kind: EffectPrompt}}
		}
		line := s.Line()
		return s.cleared(), []Effect{
			{Kind: EffectNewline},
			{Kind: EffectSubmit, Text: line},
			{Kind: EffectPrompt},
		}

	case ch == Delete:
		if len(s.Buffer) == 0 {
			return s, nil
		}
		s.Buffer = s.Buffer[:len(s.Buffer)-1]
		return s, []Effect{{Kind: EffectErase}}

	case ch >= 0x20:
		buf := make([]rune, len(s.Buffer), len(s.Buffer)+1)
		copy(buf, s.Buffer)
		s.Buffer = append(buf, ch)
		return s, []Effect{{Kind: EffectEcho, Text: string(ch)}}
	}
	return s, nil
}
