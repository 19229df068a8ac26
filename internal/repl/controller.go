// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package repl

import (
	"io"
	"log/slog"
	"strings"

	"vortexlang.dev/vortex/internal/bridge"
	"vortexlang.dev/vortex/internal/store"
)

// ErrorMarker starts every rendered failure.
const ErrorMarker = "error: "

// eraseSeq moves back one column, blanks it and moves back again.
const eraseSeq = "\b \b"

// clearSeq erases the screen and homes the cursor.
const clearSeq = "\x1b[2J\x1b[H"

// Terminal is the output side of a terminal surface.
type Terminal interface {
	Write(text string)
}

// TerminalFunc adapts a function to Terminal.
type TerminalFunc func(text string)

func (f TerminalFunc) Write(text string) { f(text) }

// State is the controller's position in the submit cycle.
type State int

const (
	Editing    State = iota // accumulating input
	Evaluating              // inside the interpreter call
	Closed                  // ended by :exit; input is ignored
)

func (s State) String() string {
	switch s {
	case Evaluating:
		return "evaluating"
	case Closed:
		return "closed"
	}
	return "editing"
}

// Controller owns one session and drives it from keystrokes.
type Controller struct {
	term       Terminal
	eval       bridge.Evaluator
	session    Session
	state      State
	banner     string
	transcript store.Store
	logger     *slog.Logger
	onQuit     func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithBanner sets a line written once before the first prompt.
func WithBanner(banner string) Option {
	return func(c *Controller) { c.banner = banner }
}

// WithTranscript records every evaluated line in st. Recording failures are
// logged and otherwise ignored.
func WithTranscript(st store.Store) Option {
	return func(c *Controller) { c.transcript = st }
}

// WithLogger sets the logger for submit and outcome events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithQuit sets the function called when an outcome ends the session.
func WithQuit(fn func()) Option {
	return func(c *Controller) { c.onQuit = fn }
}

// WithSessionID replaces the generated session ID.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.session.ID = id }
}

// New creates a controller writing to term and evaluating through ev.
func New(term Terminal, ev bridge.Evaluator, prompt string, opts ...Option) *Controller {
	c := &Controller{
		term:    term,
		eval:    ev,
		session: NewSession(prompt),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start writes the banner, if any, and the first prompt.
func (c *Controller) Start() {
	if c.banner != "" {
		c.term.Write(Translate(c.banner))
	}
	c.Prompt()
}

// OnCharacter handles one input character.
func (c *Controller) OnCharacter(ch rune) {
	if c.state == Closed {
		return
	}
	next, effects := Step(c.session, ch)
	c.session = next
	for _, e := range effects {
		c.apply(e)
	}
}

func (c *Controller) apply(e Effect) {
	switch e.Kind {
	case EffectEcho:
		c.term.Write(e.Text)
	case EffectErase:
		c.term.Write(eraseSeq)
	case EffectNewline:
		c.term.Write("\r\n")
	case EffectSubmit:
		c.submit(e.Text)
	case EffectPrompt:
		if c.state != Closed {
			c.Prompt()
		}
	}
}

func (c *Controller) submit(line string) {
	c.logger.Debug("repl.submit", "session", c.session.ID, "chars", len(line))
	c.state = Evaluating
	out := c.eval.Evaluate(line)
	c.state = Editing
	if out.OK() {
		c.logger.Debug("repl.outcome", "session", c.session.ID, "ok", true)
	} else {
		c.logger.Debug("repl.outcome", "session", c.session.ID, "ok", false, "kind", out.Err.Kind.String())
	}
	c.Render(out)
	c.record(line, out)
	if out.Action == bridge.ActionQuit {
		c.state = Closed
		c.logger.Debug("repl.quit", "session", c.session.ID)
		if c.onQuit != nil {
			c.onQuit()
		}
	}
}

func (c *Controller) record(line string, out bridge.Outcome) {
	if c.transcript == nil {
		return
	}
	e := store.Entry{Session: c.session.ID, Input: line, Output: out.Text}
	if !out.OK() {
		e.Failed = true
		e.Output = out.Err.Message
		e.Kind = out.Err.Kind.String()
	}
	if err := c.transcript.Append(e); err != nil {
		c.logger.Warn("repl.transcript", "session", c.session.ID, "error", err)
	}
}

// Render writes an outcome. Success writes the result text; failure writes
// ErrorMarker followed by the message. Line breaks become "\r\n". A clear
// action erases the screen first.
func (c *Controller) Render(out bridge.Outcome) {
	if out.Action == bridge.ActionClear {
		c.term.Write(clearSeq)
	}
	if out.OK() {
		c.term.Write(Translate(out.Text))
		return
	}
	c.term.Write(ErrorMarker + Translate(out.Err.Message))
}

// Prompt starts a new line with the prompt and clears the buffer.
func (c *Controller) Prompt() {
	c.term.Write("\r\n" + c.session.Prompt)
	c.session = c.session.cleared()
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	s := c.session
	s.Buffer = make([]rune, len(c.session.Buffer))
	copy(s.Buffer, c.session.Buffer)
	return s
}

// Translate converts bare "\n" line breaks to "\r\n". Existing "\r\n"
// pairs are kept as they are.
func Translate(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + strings.Count(text, "\n"))
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' && (i == 0 || text[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}
