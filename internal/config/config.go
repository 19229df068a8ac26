// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads REPL settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Surface names accepted by the surface key.
const (
	SurfaceAuto   = "auto"
	SurfaceRaw    = "raw"
	SurfaceLine   = "line"
	SurfaceScreen = "screen"
)

// DefaultPrompt is shown at the start of every input line.
const DefaultPrompt = "vortex> "

// Config holds every setting the REPL reads at start-up.
type Config struct {
	Prompt       string `yaml:"prompt"`
	Banner       *bool  `yaml:"banner"`
	Surface      string `yaml:"surface"`
	Transcript   string `yaml:"transcript"`
	Stdlib       *bool  `yaml:"stdlib"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Log          Log    `yaml:"log"`
	Theme        Theme  `yaml:"theme"`
}

// Log configures structured logging.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Theme holds the xterm.js options used by the browser build.
type Theme struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func boolPtr(v bool) *bool { return &v }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prompt:  DefaultPrompt,
		Banner:  boolPtr(true),
		Surface: SurfaceAuto,
		Stdlib:  boolPtr(true),
		Log:     Log{Level: "warn"},
		Theme: Theme{
			Background: "#181818",
			Foreground: "#eee",
			FontFamily: "monospace",
			FontSize:   16,
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. Unknown
// keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode parses YAML from r and merges it over the defaults. name is used
// in error messages.
func Decode(r io.Reader, name string) (Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file Config
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse %s: %w", name, err)
	}
	cfg := Default()
	cfg.Merge(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge copies every set field of o over c.
func (c *Config) Merge(o Config) {
	if o.Prompt != "" {
		c.Prompt = o.Prompt
	}
	if o.Banner != nil {
		c.Banner = o.Banner
	}
	if o.Surface != "" {
		c.Surface = o.Surface
	}
	if o.Transcript != "" {
		c.Transcript = o.Transcript
	}
	if o.Stdlib != nil {
		c.Stdlib = o.Stdlib
	}
	if o.MaxCallDepth != 0 {
		c.MaxCallDepth = o.MaxCallDepth
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
	if o.Log.File != "" {
		c.Log.File = o.Log.File
	}
	if o.Theme.Background != "" {
		c.Theme.Background = o.Theme.Background
	}
	if o.Theme.Foreground != "" {
		c.Theme.Foreground = o.Theme.Foreground
	}
	if o.Theme.FontFamily != "" {
		c.Theme.FontFamily = o.Theme.FontFamily
	}
	if o.Theme.FontSize != 0 {
		c.Theme.FontSize = o.Theme.FontSize
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var issues []string
	if c.Prompt == "" {
		issues = append(issues, "prompt must not be empty")
	}
	for _, r := range c.Prompt {
		if r < 0x20 || r == 0x7F {
			issues = append(issues, fmt.Sprintf("prompt contains control character %U", r))
			break
		}
	}
	switch c.Surface {
	case SurfaceAuto, SurfaceRaw, SurfaceLine, SurfaceScreen:
	default:
		issues = append(issues, fmt.Sprintf("surface %q is not one of auto, raw, line, screen", c.Surface))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		issues = append(issues, err.Error())
	}
	if c.MaxCallDepth < 0 {
		issues = append(issues, "max_call_depth must not be negative")
	}
	if c.Theme.FontSize < 0 {
		issues = append(issues, "theme.font_size must not be negative")
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// BannerEnabled reports whether the start-up banner is shown.
func (c Config) BannerEnabled() bool {
	return c.Banner == nil || *c.Banner
}

// StdlibEnabled reports whether the prelude is loaded.
func (c Config) StdlibEnabled() bool {
	return c.Stdlib == nil || *c.Stdlib
}

// SetBanner overrides the banner setting.
func (c *Config) SetBanner(on bool) { c.Banner = boolPtr(on) }

// SetStdlib overrides the stdlib setting.
func (c *Config) SetStdlib(on bool) { c.Stdlib = boolPtr(on) }

// ParseLevel maps a level name onto a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}
