// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"strconv"
	"strings"

	"vortexlang.dev/vortex/internal/ast"
)

// Value is a runtime value.
type Value interface {
	// String returns the display form of the value.
	String() string
	// Kind names the value's type for error messages.
	Kind() string
}

// Int is a 64-bit integer.
type Int int64

// Float is a 64-bit float.
type Float float64

// Str is a string.
type Str string

// Bool is a boolean.
type Bool bool

// Nil is the absent value.
type Nil struct{}

// Range is a half-open range start..end. Bounds are kept as values so that
// non-integer ranges can be displayed even though only integer ranges iterate.
type Range struct {
	Start Value
	End   Value
}

// Function is a user-defined function closed over its defining scope.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	GPU    bool
	Env    *Env
}

// Builtin is a function implemented in Go.
type Builtin struct {
	Name   string
	Params []string
	Fn     func(args []Value) (Value, error)
}

func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 64) }
func (v Str) String() string   { return string(v) }
func (v Bool) String() string  { return strconv.FormatBool(bool(v)) }
func (Nil) String() string     { return "nil" }
func (v Range) String() string { return v.Start.String() + ".." + v.End.String() }
func (v *Function) String() string {
	return "<fn " + v.Name + "(" + strings.Join(v.Params, ", ") + ")>"
}
func (v *Builtin) String() string {
	return "<fn " + v.Name + "(" + strings.Join(v.Params, ", ") + ")>"
}

func (Int) Kind() string       { return "int" }
func (Float) Kind() string     { return "float" }
func (Str) Kind() string       { return "string" }
func (Bool) Kind() string      { return "bool" }
func (Nil) Kind() string       { return "nil" }
func (Range) Kind() string     { return "range" }
func (*Function) Kind() string { return "fn" }
func (*Builtin) Kind() string  { return "fn" }

// Truthy reports whether v counts as true in a condition.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Nil:
		return false
	case Int:
		return v != 0
	case Float:
		return v != 0
	case Str:
		return v != ""
	}
	return true
}

// Equal reports whether two values are the same kind and hold the same value.
// Functions compare by identity.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Range:
		r, ok := b.(Range)
		return ok && Equal(a.Start, r.Start) && Equal(a.End, r.End)
	case *Function:
		f, ok := b.(*Function)
		return ok && a == f
	case *Builtin:
		f, ok := b.(*Builtin)
		return ok && a == f
	}
	return a == b
}
