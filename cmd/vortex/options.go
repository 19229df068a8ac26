// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"fmt"
	"log/slog"

	"vortexlang.dev/vortex/internal/config"
	"vortexlang.dev/vortex/pkg/vortex"
)

// runtimeOptions translates the config into interpreter options.
func runtimeOptions(cfg config.Config, logger *slog.Logger) []vortex.Option {
	opts := []vortex.Option{vortex.WithLogger(logger)}
	if !cfg.StdlibEnabled() {
		opts = append(opts, vortex.WithNoStdlib())
	}
	if cfg.MaxCallDepth > 0 {
		opts = append(opts, vortex.WithMaxCallDepth(cfg.MaxCallDepth))
	}
	return opts
}

// bannerText is the start-up line; hint says how to leave or get help on
// the running surface.
func bannerText(hint string) string {
	return fmt.Sprintf("Vortex REPL v%s (%s)", vortex.Version, hint)
}
