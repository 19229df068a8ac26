// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "vortexlang.dev/vortex/internal/token"

func negate(v Value) (Value, error) {
	switch v := v.(type) {
	case Int:
		return -v, nil
	case Float:
		return -v, nil
	}
	return nil, errorf(0, "cannot apply unary '-' to %s", v.Kind())
}

func binaryOp(op token.Token, l, r Value) (Value, error) {
	switch op {
	case token.PLUS:
		return add(l, r)
	case token.MINUS:
		return arith(op, l, r, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case token.STAR:
		return arith(op, l, r, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case token.SLASH:
		switch d := r.(type) {
		case Int:
			if d == 0 {
				return nil, errorf(0, "division by zero (integer)")
			}
		case Float:
			if d == 0 {
				return nil, errorf(0, "division by zero (float)")
			}
		}
		return arith(op, l, r, func(a, b int64) int64 { return a / b }, func(a, b float64) float64 { return a / b })
	case token.EQ:
		return Bool(Equal(l, r)), nil
	case token.NE:
		return Bool(!Equal(l, r)), nil
	case token.GT:
		return compare(op, l, r, func(c int) bool { return c > 0 })
	case token.LT:
		return compare(op, l, r, func(c int) bool { return c < 0 })
	case token.GE:
		return compare(op, l, r, func(c int) bool { return c >= 0 })
	case token.LE:
		return compare(op, l, r, func(c int) bool { return c <= 0 })
	}
	return nil, errorf(0, "unsupported binary operator '%s'", op)
}

// add handles numeric addition and string concatenation with scalars.
func add(l, r Value) (Value, error) {
	ls, lok := l.(Str)
	rs, rok := r.(Str)
	switch {
	case lok && rok:
		return ls + rs, nil
	case lok && isScalar(r):
		return ls + Str(r.String()), nil
	case rok && isScalar(l):
		return Str(l.String()) + rs, nil
	}
	if v, err := arith(token.PLUS, l, r, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b }); err == nil {
		return v, nil
	}
	return nil, errorf(0, "cannot apply '+' to %s and %s", l.Kind(), r.Kind())
}

func isScalar(v Value) bool {
	switch v.(type) {
	case Int, Float, Bool:
		return true
	}
	return false
}

// arith applies an integer op when both sides are ints and a float op when
// either side is a float.
func arith(op token.Token, l, r Value, fi func(a, b int64) int64, ff func(a, b float64) float64) (Value, error) {
	switch a := l.(type) {
	case Int:
		switch b := r.(type) {
		case Int:
			return Int(fi(int64(a), int64(b))), nil
		case Float:
			return Float(ff(float64(a), float64(b))), nil
		}
	case Float:
		switch b := r.(type) {
		case Int:
			return Float(ff(float64(a), float64(b))), nil
		case Float:
			return Float(ff(float64(a), float64(b))), nil
		}
	}
	return nil, errorf(0, "'%s' requires numbers, got %s and %s", op, l.Kind(), r.Kind())
}

func compare(op token.Token, l, r Value, ok func(c int) bool) (Value, error) {
	var a, b float64
	switch x := l.(type) {
	case Int:
		if y, isInt := r.(Int); isInt {
			return Bool(ok(cmpInt(int64(x), int64(y)))), nil
		}
		a = float64(x)
	case Float:
		a = float64(x)
	default:
		return nil, errorf(0, "comparison '%s' requires numbers, got %s and %s", op, l.Kind(), r.Kind())
	}
	switch y := r.(type) {
	case Int:
		b = float64(y)
	case Float:
		b = float64(y)
	default:
		return nil, errorf(0, "comparison '%s' requires numbers, got %s and %s", op, l.Kind(), r.Kind())
	}
	switch {
	case a < b:
		return Bool(ok(-1)), nil
	case a > b:
		return Bool(ok(1)), nil
	case a == b:
		return Bool(ok(0)), nil
	}
	// NaN compares false with everything.
	return Bool(false), nil
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
