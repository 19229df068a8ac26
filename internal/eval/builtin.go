// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"strings"
	"unicode/utf8"
)

func (e *Evaluator) installBuiltins() {
	builtins := []*Builtin{
		{Name: "print", Params: []string{"value"}, Fn: e.builtinPrint},
		{Name: "len", Params: []string{"value"}, Fn: builtinLen},
		{Name: "str", Params: []string{"value"}, Fn: builtinStr},
		{Name: "type", Params: []string{"value"}, Fn: builtinType},
	}
	for _, b := range builtins {
		e.globals.Define(b.Name, b)
	}
}

// builtinPrint writes its arguments joined by spaces as one line.
func (e *Evaluator) builtinPrint(args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	if e.outputWriter != nil {
		if err := e.outputWriter(strings.Join(parts, " ") + "\n"); err != nil {
			return nil, errorf(0, "print: %v", err)
		}
	}
	return Nil{}, nil
}

func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, errorf(0, "len expects 1 argument, but got %d", len(args))
	}
	switch v := args[0].(type) {
	case Str:
		return Int(utf8.RuneCountInString(string(v))), nil
	case Range:
		s, ok1 := v.Start.(Int)
		t, ok2 := v.End.(Int)
		if ok1 && ok2 {
			if t < s {
				return Int(0), nil
			}
			return t - s, nil
		}
	}
	return nil, errorf(0, "len is not defined for %s", args[0].Kind())
}

func builtinStr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, errorf(0, "str expects 1 argument, but got %d", len(args))
	}
	return Str(args[0].String()), nil
}

func builtinType(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, errorf(0, "type expects 1 argument, but got %d", len(args))
	}
	return Str(args[0].Kind()), nil
}
