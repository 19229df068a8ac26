// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build js && wasm

package main

import (
	"context"
	"io"
	"log/slog"
	"syscall/js"

	"vortexlang.dev/vortex/internal/bridge"
	"vortexlang.dev/vortex/internal/config"
	"vortexlang.dev/vortex/internal/repl"
	"vortexlang.dev/vortex/internal/terminal"
)

// main hosts the REPL in a page that has loaded xterm.js and has a
// #terminal element. An optional global vortexConfig object overrides the
// prompt, banner, stdlib and theme settings.
func main() {
	cfg := browserConfig(js.Global().Get("vortexConfig"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	doc := js.Global().Get("document")
	host := doc.Call("getElementById", "terminal")

	b, err := bridge.Open(runtimeOptions(cfg, logger)...)
	if err != nil {
		if host.Truthy() {
			host.Set("textContent", err.Error())
		}
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	defer b.Close()

	options := js.Global().Get("Object").New()
	theme := js.Global().Get("Object").New()
	theme.Set("background", cfg.Theme.Background)
	theme.Set("foreground", cfg.Theme.Foreground)
	options.Set("theme", theme)
	options.Set("cursorBlink", true)
	options.Set("fontFamily", cfg.Theme.FontFamily)
	options.Set("fontSize", cfg.Theme.FontSize)

	xterm := js.Global().Get("Terminal").New(options)
	xterm.Call("open", host)

	surface := terminal.NewXTerm(xterm)
	ctx, quit := context.WithCancel(context.Background())
	defer quit()

	opts := []repl.Option{repl.WithQuit(quit)}
	if cfg.BannerEnabled() {
		opts = append(opts, repl.WithBanner(bannerText(":help for commands")))
	}
	c := repl.New(surface, b, cfg.Prompt, opts...)
	c.Start()

	// Run returns after :exit; otherwise the page owns the lifetime.
	surface.Run(ctx, c.OnCharacter)
}

// browserConfig merges the page's vortexConfig object over the defaults.
// Invalid values fall back to the defaults.
func browserConfig(v js.Value) config.Config {
	cfg := config.Default()
	if !v.Truthy() {
		return cfg
	}
	var o config.Config
	if f := v.Get("prompt"); f.Type() == js.TypeString {
		o.Prompt = f.String()
	}
	if f := v.Get("banner"); f.Type() == js.TypeBoolean {
		cfg.SetBanner(f.Bool())
	}
	if f := v.Get("stdlib"); f.Type() == js.TypeBoolean {
		cfg.SetStdlib(f.Bool())
	}
	if f := v.Get("maxCallDepth"); f.Type() == js.TypeNumber {
		o.MaxCallDepth = f.Int()
	}
	if t := v.Get("theme"); t.Type() == js.TypeObject {
		if f := t.Get("background"); f.Type() == js.TypeString {
			o.Theme.Background = f.String()
		}
		if f := t.Get("foreground"); f.Type() == js.TypeString {
			o.Theme.Foreground = f.String()
		}
		if f := t.Get("fontFamily"); f.Type() == js.TypeString {
			o.Theme.FontFamily = f.String()
		}
		if f := t.Get("fontSize"); f.Type() == js.TypeNumber {
			o.Theme.FontSize = f.Int()
		}
	}
	merged := cfg
	merged.Merge(o)
	if err := merged.Validate(); err != nil {
		js.Global().Get("console").Call("warn", err.Error())
		return cfg
	}
	return merged
}
