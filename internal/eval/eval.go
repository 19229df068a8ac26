// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"vortexlang.dev/vortex/internal/ast"
	"vortexlang.dev/vortex/internal/parser"
)

// DefaultMaxCallDepth bounds nested function calls.
const DefaultMaxCallDepth = 1000

// Error is a runtime error raised while executing a program.
type Error struct {
	Line int // 0 when unknown
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error on line %d: %s", e.Line, e.Msg)
	}
	return "runtime error: " + e.Msg
}

func errorf(line int, format string, args ...any) error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// OutputWriter receives text written by print.
type OutputWriter func(text string) error

// Evaluator executes Vortex programs against a persistent global scope.
type Evaluator struct {
	globals      *Env
	gpu          *GPURuntime
	logger       *slog.Logger
	outputWriter OutputWriter
	maxDepth     int
	depth        int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for debug events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithOutputWriter sets the writer for print.
func WithOutputWriter(w OutputWriter) Option {
	return func(e *Evaluator) { e.outputWriter = w }
}

// WithMaxCallDepth limits nested function calls. Values <= 0 keep the default.
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxCallDepth,
		outputWriter: func(text string) error {
			fmt.Print(text)
			return nil
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset discards every global binding and kernel, then reinstalls the
// builtins.
func (e *Evaluator) Reset() {
	e.gpu = NewGPURuntime(e.logger)
	e.globals = NewEnv()
	e.installBuiltins()
}

// Globals returns the global scope.
func (e *Evaluator) Globals() *Env {
	return e.globals
}

// GPU returns the GPU runtime.
func (e *Evaluator) GPU() *GPURuntime {
	return e.gpu
}

// Eval parses and runs a program, returning the display form of its result.
// A program with no result yields the empty string.
func (e *Evaluator) Eval(input string) (string, error) {
	return e.EvalReader(strings.NewReader(input))
}

// EvalReader parses and runs a program from a reader.
func (e *Evaluator) EvalReader(r io.Reader) (string, error) {
	stmts, err := parser.Parse(r)
	if err != nil {
		return "", err
	}
	v, err := e.Run(stmts)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return v.String(), nil
}

// Run executes statements in the global scope. The result is the value of
// the last expression statement, cleared by any later statement that yields
// nothing; a top-level return ends the program with its value.
func (e *Evaluator) Run(stmts []ast.Stmt) (Value, error) {
	e.depth = 0
	var last Value
	for _, stmt := range stmts {
		r, err := e.exec(stmt, e.globals)
		if err != nil {
			return nil, err
		}
		switch r.kind {
		case flowValue:
			if _, isNil := r.val.(Nil); !isNil {
				last = r.val
			}
		case flowReturn:
			return r.val, nil
		case flowNone:
			last = nil
		}
	}
	return last, nil
}

type flow int

const (
	flowNone flow = iota
	flowValue
	flowReturn
)

type result struct {
	kind flow
	val  Value
}

var none = result{}

func valueOf(v Value) result  { return result{kind: flowValue, val: v} }
func returnOf(v Value) result { return result{kind: flowReturn, val: v} }

func (e *Evaluator) exec(stmt ast.Stmt, env *Env) (result, error) {
	switch s := stmt.(type) {
	case ast.ExprStmt:
		v, err := e.expr(s.Expr, env)
		if err != nil {
			return none, err
		}
		return valueOf(v), nil

	case ast.Let:
		v, err := e.expr(s.Value, env)
		if err != nil {
			return none, err
		}
		env.Define(s.Name, v)
		return none, nil

	case *ast.Block:
		return e.block(s, env.Child())

	case ast.If:
		cond, err := e.expr(s.Cond, env)
		if err != nil {
			return none, err
		}
		if Truthy(cond) {
			return e.block(s.Then, env.Child())
		}
		if s.Else != nil {
			return e.exec(s.Else, env)
		}
		return none, nil

	case ast.Branch:
		cond, err := e.expr(s.Cond, env)
		if err != nil {
			return none, err
		}
		if !Truthy(cond) {
			return none, nil
		}
		return e.exec(s.Body, env)

	case ast.Fallback:
		return e.exec(s.Body, env)

	case ast.For:
		start, end, err := e.bounds(s.Range, env, "for")
		if err != nil {
			return none, err
		}
		return e.loop(s.Var, start, end, s.Body, env)

	case ast.Parallel:
		start, end, err := e.bounds(s.Range, env, "parallel")
		if err != nil {
			return none, err
		}
		if end > start {
			e.gpu.Launch("parallel:"+s.Var, end-start)
		}
		return e.loop(s.Var, start, end, s.Body, env)

	case ast.Return:
		if s.Value == nil {
			return returnOf(Nil{}), nil
		}
		v, err := e.expr(s.Value, env)
		if err != nil {
			return none, err
		}
		return returnOf(v), nil

	case ast.FuncDef:
		fn := &Function{
			Name:   s.Name,
			Params: s.ParamNames(),
			Body:   s.Body,
			GPU:    s.GPU,
			Env:    env,
		}
		env.Define(s.Name, fn)
		if s.GPU {
			e.gpu.Register(fn)
		}
		return none, nil
	}
	return none, errorf(0, "unsupported statement %T", stmt)
}

// block runs statements in scope; the block's value is its last value.
func (e *Evaluator) block(b *ast.Block, scope *Env) (result, error) {
	out := none
	for _, stmt := range b.Stmts {
		r, err := e.exec(stmt, scope)
		if err != nil {
			return none, err
		}
		switch r.kind {
		case flowReturn:
			return r, nil
		case flowValue:
			out = r
		}
	}
	return out, nil
}

func (e *Evaluator) loop(name string, start, end int64, body *ast.Block, env *Env) (result, error) {
	for i := start; i < end; i++ {
		scope := env.Child()
		scope.Define(name, Int(i))
		r, err := e.block(body, scope)
		if err != nil {
			return none, err
		}
		if r.kind == flowReturn {
			return r, nil
		}
	}
	return none, nil
}

// bounds evaluates a loop range: either start..end of integers or a
// non-negative integer n meaning 0..n.
func (e *Evaluator) bounds(x ast.Expr, env *Env, kw string) (int64, int64, error) {
	v, err := e.expr(x, env)
	if err != nil {
		return 0, 0, err
	}
	switch v := v.(type) {
	case Range:
		s, ok1 := v.Start.(Int)
		t, ok2 := v.End.(Int)
		if !ok1 || !ok2 {
			return 0, 0, errorf(0, "%s range bounds must be integers, got %s..%s", kw, v.Start.Kind(), v.End.Kind())
		}
		return int64(s), int64(t), nil
	case Int:
		if v >= 0 {
			return 0, int64(v), nil
		}
	}
	return 0, 0, errorf(0, "%s loop range must be a range (e.g. 0..10) or a non-negative integer, got %s", kw, v)
}

func (e *Evaluator) expr(x ast.Expr, env *Env) (Value, error) {
	switch x := x.(type) {
	case ast.Int:
		return Int(x.Value), nil
	case ast.Float:
		return Float(x.Value), nil
	case ast.Bool:
		return Bool(x.Value), nil
	case ast.String:
		return Str(x.Value), nil

	case ast.Ident:
		v, ok := env.Get(x.Name)
		if !ok {
			return nil, errorf(x.Line, "undefined identifier '%s'", x.Name)
		}
		return v, nil

	case ast.Assign:
		v, err := e.expr(x.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(x.Name, v) {
			return nil, errorf(x.Line, "undefined variable '%s', cannot assign", x.Name)
		}
		return v, nil

	case ast.Grouping:
		return e.expr(x.Expr, env)

	case ast.Unary:
		v, err := e.expr(x.Expr, env)
		if err != nil {
			return nil, err
		}
		return negate(v)

	case ast.Binary:
		l, err := e.expr(x.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := e.expr(x.Right, env)
		if err != nil {
			return nil, err
		}
		v, err := binaryOp(x.Op, l, r)
		if err != nil {
			if re, ok := err.(*Error); ok && re.Line == 0 {
				re.Line = x.Line
			}
			return nil, err
		}
		return v, nil

	case ast.Range:
		s, err := e.expr(x.Start, env)
		if err != nil {
			return nil, err
		}
		t, err := e.expr(x.End, env)
		if err != nil {
			return nil, err
		}
		return Range{Start: s, End: t}, nil

	case ast.Call:
		return e.call(x, env)
	}
	return nil, errorf(0, "unsupported expression %T", x)
}

func (e *Evaluator) call(x ast.Call, env *Env) (Value, error) {
	callee, err := e.expr(x.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(x.Args))
	for _, a := range x.Args {
		v, err := e.expr(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case *Builtin:
		v, err := fn.Fn(args)
		if err != nil {
			if re, ok := err.(*Error); ok && re.Line == 0 {
				re.Line = x.Line
			}
			return nil, err
		}
		return v, nil

	case *Function:
		if len(args) != len(fn.Params) {
			return nil, errorf(x.Line, "function '%s' expects %d arguments, but got %d", fn.Name, len(fn.Params), len(args))
		}
		if e.depth >= e.maxDepth {
			return nil, errorf(x.Line, "maximum call depth %d exceeded in '%s'", e.maxDepth, fn.Name)
		}
		if fn.GPU {
			e.gpu.Launch(fn.Name, 1)
		}
		scope := fn.Env.Child()
		for i, p := range fn.Params {
			scope.Define(p, args[i])
		}
		e.depth++
		r, err := e.block(fn.Body, scope)
		e.depth--
		if err != nil {
			return nil, err
		}
		if r.kind == flowNone {
			return Nil{}, nil
		}
		return r.val, nil
	}
	return nil, errorf(x.Line, "'%s' is not callable", callee)
}
