// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewLogger builds a text logger at the configured level. Records go to
// log.file when set, otherwise to w. The returned close func releases the
// log file and is never nil.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error { return nil }
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("config: open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closeFn, nil
}
