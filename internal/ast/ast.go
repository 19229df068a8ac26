// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package ast defines Vortex expression and statement nodes.
package ast

import (
	"strconv"
	"strings"

	"vortexlang.dev/vortex/internal/token"
)

// Node is implemented by every expression and statement.
type Node interface {
	// String returns a source-like rendering of the node.
	String() string
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Int is an integer literal.
type Int struct{ Value int64 }

// Float is a floating point literal.
type Float struct{ Value float64 }

// Bool is a boolean literal.
type Bool struct{ Value bool }

// String is a string literal.
type String struct{ Value string }

// Ident references a name.
type Ident struct {
	Name string
	Line int
}

// Unary is a prefix operator application.
type Unary struct {
	Op   token.Token
	Expr Expr
}

// Binary is an infix operator application.
type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
	Line  int
}

// Assign rebinds an existing name.
type Assign struct {
	Name  string
	Value Expr
	Line  int
}

// Grouping is a parenthesized expression.
type Grouping struct{ Expr Expr }

// Call applies a callee to arguments.
type Call struct {
	Callee Expr
	Args   []Expr
	Line   int
}

// Range is a half-open integer range (start..end).
type Range struct {
	Start Expr
	End   Expr
}

func (Int) exprNode()      {}
func (Float) exprNode()    {}
func (Bool) exprNode()     {}
func (String) exprNode()   {}
func (Ident) exprNode()    {}
func (Unary) exprNode()    {}
func (Binary) exprNode()   {}
func (Assign) exprNode()   {}
func (Grouping) exprNode() {}
func (Call) exprNode()     {}
func (Range) exprNode()    {}

func (e Int) String() string    { return strconv.FormatInt(e.Value, 10) }
func (e Float) String() string  { return strconv.FormatFloat(e.Value, 'f', -1, 64) }
func (e Bool) String() string   { return strconv.FormatBool(e.Value) }
func (e String) String() string { return strconv.Quote(e.Value) }
func (e Ident) String() string  { return e.Name }
func (e Unary) String() string  { return e.Op.String() + e.Expr.String() }
func (e Binary) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}
func (e Assign) String() string   { return e.Name + " = " + e.Value.String() }
func (e Grouping) String() string { return "(" + e.Expr.String() + ")" }
func (e Call) String() string {
	return e.Callee.String() + "(" + joinExprs(e.Args) + ")"
}
func (e Range) String() string { return e.Start.String() + ".." + e.End.String() }

// Param is a function parameter with an optional type annotation.
type Param struct {
	Name string
	Type string
}

// Let declares a name in the current scope.
type Let struct {
	Name    string
	Type    string
	Mutable bool
	Value   Expr
}

// ExprStmt evaluates an expression for its value.
type ExprStmt struct{ Expr Expr }

// Block is a sequence of statements run in a new scope.
type Block struct{ Stmts []Stmt }

// If is a conditional with an optional else branch. A "then" clause is
// represented as a nested If in Else.
type If struct {
	Cond Expr
	Then *Block
	Else Stmt
}

// FuncDef declares a named function.
type FuncDef struct {
	Name       string
	Params     []Param
	ReturnType string
	Body       *Block
	GPU        bool
}

// For iterates a variable over a range.
type For struct {
	Var   string
	Range Expr
	Body  *Block
}

// Parallel iterates a variable over a range as a data-parallel loop.
type Parallel struct {
	Var   string
	Range Expr
	Body  *Block
}

// Branch runs its body when the condition holds.
type Branch struct {
	Cond Expr
	Body Stmt
}

// Fallback always runs its body.
type Fallback struct{ Body Stmt }

// Return ends the enclosing function (or line) with a value.
type Return struct{ Value Expr }

func (Let) stmtNode()      {}
func (ExprStmt) stmtNode() {}
func (Block) stmtNode()    {}
func (If) stmtNode()       {}
func (FuncDef) stmtNode()  {}
func (For) stmtNode()      {}
func (Parallel) stmtNode() {}
func (Branch) stmtNode()   {}
func (Fallback) stmtNode() {}
func (Return) stmtNode()   {}

func (s Let) String() string {
	var sb strings.Builder
	sb.WriteString("let ")
	if s.Mutable {
		sb.WriteString("mut ")
	}
	sb.WriteString(s.Name)
	if s.Type != "" {
		sb.WriteString(": " + s.Type)
	}
	sb.WriteString(" = " + s.Value.String())
	return sb.String()
}

func (s ExprStmt) String() string { return s.Expr.String() }

func (s Block) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return strings.Join(parts, " ")
}

func (s If) String() string {
	out := "if " + s.Cond.String() + ": " + s.Then.String()
	if s.Else != nil {
		out += " else: " + s.Else.String()
	}
	return out
}

func (s FuncDef) String() string {
	var sb strings.Builder
	if s.GPU {
		sb.WriteString("@gpu ")
	}
	sb.WriteString("fn " + s.Name + "(")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.Type != "" {
			sb.WriteString(": " + p.Type)
		}
	}
	sb.WriteString(")")
	if s.ReturnType != "" {
		sb.WriteString(" -> " + s.ReturnType)
	}
	sb.WriteString(": " + s.Body.String())
	return sb.String()
}

func (s For) String() string {
	return "for " + s.Var + " in " + s.Range.String() + ": " + s.Body.String()
}

func (s Parallel) String() string {
	return "parallel " + s.Var + " in " + s.Range.String() + ": " + s.Body.String()
}

func (s Branch) String() string   { return "branch " + s.Cond.String() + " => " + s.Body.String() }
func (s Fallback) String() string { return "fallback => " + s.Body.String() }
func (s Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ParamNames returns the parameter names of a function in order.
func (s FuncDef) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
