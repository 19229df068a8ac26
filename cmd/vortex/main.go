// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

//go:build !(js && wasm)

// Command vortex is the Vortex interpreter CLI and REPL.
package main

import (
	"flag"
	"fmt"
	"os"

	"vortexlang.dev/vortex/internal/bridge"
	"vortexlang.dev/vortex/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		evalStr    = flag.String("e", "", "Evaluate Vortex string")
		file       = flag.String("f", "", "Execute Vortex file")
		prompt     = flag.String("prompt", "", "REPL prompt")
		surface    = flag.String("surface", "", "REPL surface: auto, raw, line or screen")
		transcript = flag.String("transcript", "", "SQLite transcript path (empty keeps it in memory)")
		dump       = flag.Bool("dump-transcript", false, "Print the transcript and exit")
		noStdlib   = flag.Bool("no-stdlib", false, "Disable standard library prelude")
		noBanner   = flag.Bool("no-banner", false, "Do not print the start-up banner")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn or error")
		logFile    = flag.String("log-file", "", "Write logs to this file instead of stderr")
	)

	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override the file
	cfg.Merge(config.Config{
		Prompt:     *prompt,
		Surface:    *surface,
		Transcript: *transcript,
		Log:        config.Log{Level: *logLevel, File: *logFile},
	})
	if *noStdlib {
		cfg.SetStdlib(false)
	}
	if *noBanner {
		cfg.SetBanner(false)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *dump {
		if err := dumpTranscript(os.Stdout, cfg.Transcript); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	b, err := bridge.Open(runtimeOptions(cfg, logger)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	// Step 1: run the file, if any
	if *file != "" {
		report(b.Load(*file))
	}

	// Step 2: run -e after the file so it sees the file's definitions
	if *evalStr != "" {
		report(b.Evaluate(*evalStr))
	}

	if *file != "" || *evalStr != "" {
		return
	}

	if err := runREPL(b, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// report prints a successful result, or the error and exits.
func report(out bridge.Outcome) {
	if !out.OK() {
		fmt.Fprintf(os.Stderr, "Error: %s\n", out.Err.Message)
		os.Exit(1)
	}
	if out.Text != "" {
		fmt.Println(out.Text)
	}
}
