// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen runs the REPL full-screen on a tcell screen, emulating a plain
// terminal with a Grid.
type Screen struct {
	screen tcell.Screen
	grid   *Grid
	style  tcell.Style
	ready  bool
}

// NewScreen creates a surface on the process terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenOn(s), nil
}

// NewScreenOn creates a surface on an existing, uninitialised tcell screen.
func NewScreenOn(s tcell.Screen) *Screen {
	return &Screen{
		screen: s,
		grid:   NewGrid(80, 24),
		style:  tcell.StyleDefault,
	}
}

// Grid returns the emulated terminal contents.
func (s *Screen) Grid() *Grid {
	return s.grid
}

// Write displays text on the grid and refreshes the screen once it runs.
func (s *Screen) Write(text string) {
	s.grid.Write(text)
	if s.ready {
		s.draw()
	}
}

func (s *Screen) draw() {
	w, h := s.grid.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, y, s.grid.Cell(x, y), nil, s.style)
		}
	}
	cx, cy := s.grid.Cursor()
	s.screen.ShowCursor(cx, cy)
	s.screen.Show()
}

// Run initialises the screen and delivers key events until Ctrl+C, Ctrl+D
// on an empty line or cancellation.
func (s *Screen) Run(ctx context.Context, handler func(rune)) error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer s.screen.Fini()
	defer func() { s.ready = false }()

	s.grid.Resize(s.screen.Size())
	s.ready = true
	s.screen.Clear()
	s.draw()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	var line lineTracker
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || s.handle(ev, &line, handler) || ctx.Err() != nil {
				return nil
			}
		}
	}
}

// handle applies one event and reports whether the session should end.
func (s *Screen) handle(ev tcell.Event, line *lineTracker, handler func(rune)) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.grid.Resize(ev.Size())
		s.screen.Clear()
		s.draw()
		s.screen.Sync()
	case *tcell.EventKey:
		r, quit := mapKey(ev, line.empty())
		if quit {
			return true
		}
		if r != 0 {
			line.track(r)
			handler(r)
		}
	}
	return false
}

// mapKey converts a tcell key event to the input alphabet. A zero rune
// means the key is ignored.
func mapKey(ev *tcell.EventKey, emptyLine bool) (r rune, quit bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return 0, true
	case tcell.KeyCtrlD:
		return 0, emptyLine
	case tcell.KeyEnter:
		return KeySubmit, false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyDelete, false
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return 0, false
		}
		return ev.Rune(), false
	}
	return 0, false
}
