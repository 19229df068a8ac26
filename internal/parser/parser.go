// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser turns a Vortex token stream into statements.
//
// Vortex has no block delimiters in its basic form: the body of an if, for,
// parallel or fn statement runs until the next token that starts a new
// top-level construct (see token.EndsBlock). A body may also be wrapped in
// braces to end it explicitly.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"vortexlang.dev/vortex/internal/ast"
	"vortexlang.dev/vortex/internal/scanner"
	"vortexlang.dev/vortex/internal/token"
)

// Error is a syntax error with the line it was detected on.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Msg)
}

// Parser is a recursive-descent parser over a scanned token slice.
type Parser struct {
	items []*scanner.Item
	pos   int
}

// Parse scans and parses a complete program.
func Parse(r io.Reader) ([]ast.Stmt, error) {
	items, err := scanner.New(r).All()
	if err != nil {
		return nil, err
	}
	p := &Parser{items: items}
	return p.program()
}

// ParseString parses a program held in a string.
func ParseString(src string) ([]ast.Stmt, error) {
	return Parse(strings.NewReader(src))
}

func (p *Parser) program() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for p.peek().Token != token.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, p.unexpected(p.peek())
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// statement parses one statement. It returns (nil, nil) when the next token
// cannot start a statement, leaving the decision to the caller.
func (p *Parser) statement() (ast.Stmt, error) {
	item := p.peek()
	switch item.Token {
	case token.ILLEGAL:
		return nil, p.errorf(item, "unexpected character %s", item)
	case token.LET:
		return p.letStatement()
	case token.IF:
		return p.ifStatement()
	case token.BRANCH:
		return p.branchStatement()
	case token.FALLBACK:
		return p.fallbackStatement()
	case token.FOR, token.PARALLEL:
		return p.loopStatement()
	case token.FN:
		return p.funcStatement(false)
	case token.GPU:
		p.next()
		if p.peek().Token != token.FN {
			return nil, p.errorf(p.peek(), "expected 'fn' after @gpu, got %s", p.peek())
		}
		return p.funcStatement(true)
	case token.RETURN:
		p.next()
		if !p.isExpressionStart() {
			return ast.Return{}, nil
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.Return{Value: value}, nil
	case token.IDENT:
		if p.peekAt(1).Token == token.ASSIGN {
			p.next()
			p.next()
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			return ast.ExprStmt{Expr: ast.Assign{Name: item.Value, Value: value, Line: item.Line}}, nil
		}
	}
	if !p.isExpressionStart() {
		return nil, nil
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: e}, nil
}

func (p *Parser) letStatement() (ast.Stmt, error) {
	p.next() // let
	s := ast.Let{}
	if p.accept(token.MUT) {
		s.Mutable = true
	}
	name, err := p.expect(token.IDENT, "variable name after 'let'")
	if err != nil {
		return nil, err
	}
	s.Name = name.Value
	if p.accept(token.COLON) {
		typ, err := p.expect(token.IDENT, "type name after ':'")
		if err != nil {
			return nil, err
		}
		s.Type = typ.Value
	}
	if _, err := p.expect(token.ASSIGN, "'=' in let statement"); err != nil {
		return nil, err
	}
	s.Value, err = p.expression()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	p.next() // if
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.body(stopIf)
	if err != nil {
		return nil, err
	}
	root := &ast.If{Cond: cond, Then: then}

	// Each "then" clause chains another conditional onto the innermost else.
	tail := root
	for p.accept(token.THEN) {
		c, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON, "':' after then condition"); err != nil {
			return nil, err
		}
		b, err := p.body(stopIf)
		if err != nil {
			return nil, err
		}
		next := &ast.If{Cond: c, Then: b}
		tail.Else = next
		tail = next
	}

	if p.accept(token.ELSE) {
		if _, err := p.expect(token.COLON, "':' after else"); err != nil {
			return nil, err
		}
		b, err := p.body(stopElse)
		if err != nil {
			return nil, err
		}
		tail.Else = b
	}
	return derefIf(root), nil
}

// derefIf converts the pointer chain built while parsing into value nodes.
func derefIf(n *ast.If) ast.If {
	out := ast.If{Cond: n.Cond, Then: n.Then, Else: n.Else}
	if next, ok := n.Else.(*ast.If); ok {
		out.Else = derefIf(next)
	}
	return out
}

func (p *Parser) branchStatement() (ast.Stmt, error) {
	p.next() // branch
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FAT_ARROW, "'=>' after branch condition"); err != nil {
		return nil, err
	}
	body, err := p.arm()
	if err != nil {
		return nil, err
	}
	return ast.Branch{Cond: cond, Body: body}, nil
}

func (p *Parser) fallbackStatement() (ast.Stmt, error) {
	p.next() // fallback
	if _, err := p.expect(token.FAT_ARROW, "'=>' after fallback"); err != nil {
		return nil, err
	}
	body, err := p.arm()
	if err != nil {
		return nil, err
	}
	return ast.Fallback{Body: body}, nil
}

// arm parses the single expression on the right of "=>"; it may be absent.
func (p *Parser) arm() (ast.Stmt, error) {
	if !p.isExpressionStart() {
		return &ast.Block{}, nil
	}
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: e}, nil
}

func (p *Parser) loopStatement() (ast.Stmt, error) {
	kw := p.next()
	v, err := p.expect(token.IDENT, fmt.Sprintf("loop variable after '%s'", kw.Token))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "'in' after loop variable"); err != nil {
		return nil, err
	}
	rng, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':' after loop range"); err != nil {
		return nil, err
	}
	body, err := p.body(token.Token.EndsBlock)
	if err != nil {
		return nil, err
	}
	if kw.Token == token.PARALLEL {
		return ast.Parallel{Var: v.Value, Range: rng, Body: body}, nil
	}
	return ast.For{Var: v.Value, Range: rng, Body: body}, nil
}

func (p *Parser) funcStatement(gpu bool) (ast.Stmt, error) {
	p.next() // fn
	name, err := p.expect(token.IDENT, "function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}
	fn := ast.FuncDef{Name: name.Value, GPU: gpu}
	if p.peek().Token != token.RPAREN {
		for {
			pn, err := p.expect(token.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			param := ast.Param{Name: pn.Value}
			if p.accept(token.COLON) {
				pt, err := p.expect(token.IDENT, "parameter type after ':'")
				if err != nil {
					return nil, err
				}
				param.Type = pt.Value
			}
			fn.Params = append(fn.Params, param)
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN, "')' after parameters"); err != nil {
		return nil, err
	}
	if p.accept(token.ARROW) {
		rt, err := p.expect(token.IDENT, "return type after '->'")
		if err != nil {
			return nil, err
		}
		fn.ReturnType = rt.Value
	}
	if _, err := p.expect(token.COLON, "':' before function body"); err != nil {
		return nil, err
	}
	fn.Body, err = p.body(token.Token.EndsBlock)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func stopIf(t token.Token) bool {
	return t == token.THEN || t == token.ELSE || stopElse(t)
}

func stopElse(t token.Token) bool {
	return t != token.IF && t.EndsBlock()
}

// body parses statements until stop reports true or no statement can start.
func (p *Parser) body(stop func(token.Token) bool) (*ast.Block, error) {
	if open := p.peek(); open.Token == token.LBRACE {
		p.next()
		block := &ast.Block{}
		for !p.accept(token.RBRACE) {
			if p.peek().Token == token.EOF {
				return nil, p.errorf(p.peek(), "unexpected end of input, expected '}'")
			}
			stmt, err := p.statement()
			if err != nil {
				return nil, err
			}
			if stmt == nil {
				return nil, p.unexpected(p.peek())
			}
			block.Stmts = append(block.Stmts, stmt)
		}
		return block, nil
	}

	block := &ast.Block{}
	for !stop(p.peek().Token) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			break
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.comparison()
}

func (p *Parser) comparison() (ast.Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().Token.IsComparison() {
		op := p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Op: op.Token, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) term() (ast.Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for t := p.peek().Token; t == token.PLUS || t == token.MINUS; t = p.peek().Token {
		op := p.next()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Op: op.Token, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for t := p.peek().Token; t == token.STAR || t == token.SLASH; t = p.peek().Token {
		op := p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = ast.Binary{Left: left, Op: op.Token, Right: right, Line: op.Line}
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.peek().Token == token.MINUS {
		op := p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: op.Token, Expr: operand}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Token == token.LPAREN {
		open := p.next()
		var args []ast.Expr
		if p.peek().Token != token.RPAREN {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.accept(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.expect(token.RPAREN, "')' after arguments"); err != nil {
			return nil, err
		}
		e = ast.Call{Callee: e, Args: args, Line: open.Line}
	}
	return e, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	item := p.next()
	switch item.Token {
	case token.INT:
		n, err := strconv.ParseInt(item.Value, 10, 64)
		if err != nil {
			return nil, p.errorf(item, "invalid integer literal %s", item)
		}
		return p.maybeRange(ast.Int{Value: n})
	case token.FLOAT:
		f, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, p.errorf(item, "invalid float literal %s", item)
		}
		return p.maybeRange(ast.Float{Value: f})
	case token.TRUE:
		return ast.Bool{Value: true}, nil
	case token.FALSE:
		return ast.Bool{Value: false}, nil
	case token.STRING:
		return ast.String{Value: item.Value}, nil
	case token.IDENT:
		return p.maybeRange(ast.Ident{Name: item.Value, Line: item.Line})
	case token.RANGE:
		if item.Value == ".." {
			break
		}
		if !p.accept(token.LPAREN) {
			return ast.Ident{Name: "range", Line: item.Line}, nil
		}
		start, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COMMA, "',' in range(start, end)"); err != nil {
			return nil, err
		}
		end, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')' after range bounds"); err != nil {
			return nil, err
		}
		return ast.Range{Start: start, End: end}, nil
	case token.LPAREN:
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{Expr: inner}, nil
	}
	return nil, p.unexpected(item)
}

// maybeRange extends a literal or name into start..end when followed by "..".
func (p *Parser) maybeRange(start ast.Expr) (ast.Expr, error) {
	if next := p.peek(); next.Token != token.RANGE || next.Value != ".." {
		return start, nil
	}
	p.next()
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.Range{Start: start, End: end}, nil
}

func (p *Parser) isExpressionStart() bool {
	switch p.peek().Token {
	case token.INT, token.FLOAT, token.TRUE, token.FALSE, token.STRING,
		token.IDENT, token.LPAREN, token.MINUS, token.RANGE:
		return true
	}
	return false
}

func (p *Parser) peek() *scanner.Item {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) *scanner.Item {
	if i := p.pos + n; i < len(p.items) {
		return p.items[i]
	}
	return p.items[len(p.items)-1]
}

func (p *Parser) next() *scanner.Item {
	item := p.peek()
	if item.Token != token.EOF {
		p.pos++
	}
	return item
}

func (p *Parser) accept(t token.Token) bool {
	if p.peek().Token == t {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(t token.Token, what string) (*scanner.Item, error) {
	item := p.peek()
	if item.Token != t {
		if item.Token == token.EOF {
			return nil, p.errorf(item, "unexpected end of input, expected %s", what)
		}
		return nil, p.errorf(item, "expected %s, got %s", what, item)
	}
	return p.next(), nil
}

func (p *Parser) unexpected(item *scanner.Item) error {
	if item.Token == token.EOF {
		return p.errorf(item, "unexpected end of input")
	}
	return p.errorf(item, "unexpected %s", item)
}

func (p *Parser) errorf(item *scanner.Item, format string, args ...any) error {
	return &Error{Line: item.Line, Msg: fmt.Sprintf(format, args...)}
}
