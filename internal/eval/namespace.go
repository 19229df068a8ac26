// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the Vortex evaluator.
package eval

import "sort"

// Env is a lexical scope holding Vortex bindings. Lookups walk the parent
// chain; definitions always land in the innermost scope.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a new empty root scope.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child creates a scope nested in e.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]Value), parent: e}
}

// Get retrieves a value by name from the nearest scope that defines it.
func (e *Env) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in this scope, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Assign rebinds name in the nearest scope that defines it.
// Returns false if no scope defines the name.
func (e *Env) Assign(name string, v Value) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return true
		}
	}
	return false
}

// Has returns true if the name is visible from this scope.
func (e *Env) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Names returns the names bound directly in this scope, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
