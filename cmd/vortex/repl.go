// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"vortexlang.dev/vortex/internal/bridge"
	"vortexlang.dev/vortex/internal/config"
	"vortexlang.dev/vortex/internal/repl"
	"vortexlang.dev/vortex/internal/store"
	"vortexlang.dev/vortex/internal/terminal"
)

func runREPL(b *bridge.Bridge, cfg config.Config, logger *slog.Logger) error {
	surface, err := openSurface(cfg.Surface)
	if err != nil {
		return err
	}

	transcript, err := openTranscript(cfg.Transcript)
	if err != nil {
		return err
	}
	defer transcript.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	opts := []repl.Option{
		repl.WithTranscript(transcript),
		repl.WithLogger(logger),
		repl.WithQuit(quit),
	}
	if cfg.BannerEnabled() {
		opts = append(opts, repl.WithBanner(bannerText("Ctrl+D to exit")))
	}
	c := repl.New(surface, b, cfg.Prompt, opts...)
	logger.Debug("repl.start", "session", c.Session().ID, "surface", fmt.Sprintf("%T", surface))

	c.Start()
	return surface.Run(ctx, c.OnCharacter)
}

// openSurface picks the terminal implementation. auto uses raw mode on a
// TTY and line mode for pipes.
func openSurface(name string) (terminal.Surface, error) {
	switch name {
	case config.SurfaceRaw:
		return terminal.NewRaw(os.Stdin, os.Stdout), nil
	case config.SurfaceLine:
		return terminal.NewLine(os.Stdin, os.Stdout), nil
	case config.SurfaceScreen:
		s, err := terminal.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("opening screen: %w", err)
		}
		return s, nil
	}
	if terminal.IsTerminal(os.Stdin) {
		return terminal.NewRaw(os.Stdin, os.Stdout), nil
	}
	return terminal.NewLine(os.Stdin, os.Stdout), nil
}

// openTranscript opens the SQLite transcript at path, or an in-memory one
// when path is empty.
func openTranscript(path string) (store.Store, error) {
	if path == "" {
		return store.NewMemory(), nil
	}
	st, err := store.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	return st, nil
}

// dumpTranscript prints every recorded session in order.
func dumpTranscript(w io.Writer, path string) error {
	if path == "" {
		return errors.New("-dump-transcript needs a transcript path")
	}
	st, err := store.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("opening transcript: %w", err)
	}
	defer st.Close()

	sessions, err := st.Sessions()
	if err != nil {
		return err
	}
	for _, id := range sessions {
		entries, err := st.Entries(id, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "session %s\n", id)
		for _, e := range entries {
			fmt.Fprintf(w, "%4d %s > %s\n", e.Seq, e.Ts.Local().Format("2006-01-02 15:04:05"), e.Input)
			if e.Failed {
				fmt.Fprintf(w, "     %s%s\n", repl.ErrorMarker, e.Output)
			} else if e.Output != "" {
				fmt.Fprintf(w, "     %s\n", e.Output)
			}
		}
	}
	return nil
}
