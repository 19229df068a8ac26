// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines Vortex token types and keyword lookup.
package token

// Token represents a Vortex token type.
type Token int

const (
	EOF Token = iota
	ILLEGAL

	// Literals
	INT    // 42
	FLOAT  // 4.2
	STRING // "text"
	IDENT  // name
	TRUE   // true
	FALSE  // false

	// Keywords
	LET
	MUT
	IF
	THEN
	ELSE
	FOR
	IN
	RANGE // range keyword and the .. operator
	FN
	RETURN
	BRANCH
	FALLBACK
	PARALLEL
	GPU // @gpu annotation

	// Symbols
	ASSIGN    // =
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	DOT       // .
	COMMA     // ,
	COLON     // :
	ARROW     // ->
	FAT_ARROW // =>

	// Comparison
	GT // >
	LT // <
	GE // >=
	LE // <=
	EQ // ==
	NE // !=
)

var keywords = map[string]Token{
	"let":      LET,
	"mut":      MUT,
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"for":      FOR,
	"in":       IN,
	"range":    RANGE,
	"fn":       FN,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"branch":   BRANCH,
	"fallback": FALLBACK,
	"parallel": PARALLEL,
}

// Lookup returns the keyword token for ident, or IDENT if it is not a keyword.
func Lookup(ident string) Token {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

var names = [...]string{
	EOF:       "EOF",
	ILLEGAL:   "ILLEGAL",
	INT:       "INT",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	IDENT:     "IDENT",
	TRUE:      "true",
	FALSE:     "false",
	LET:       "let",
	MUT:       "mut",
	IF:        "if",
	THEN:      "then",
	ELSE:      "else",
	FOR:       "for",
	IN:        "in",
	RANGE:     "..",
	FN:        "fn",
	RETURN:    "return",
	BRANCH:    "branch",
	FALLBACK:  "fallback",
	PARALLEL:  "parallel",
	GPU:       "@gpu",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	DOT:       ".",
	COMMA:     ",",
	COLON:     ":",
	ARROW:     "->",
	FAT_ARROW: "=>",
	GT:        ">",
	LT:        "<",
	GE:        ">=",
	LE:        "<=",
	EQ:        "==",
	NE:        "!=",
}

// String returns the string representation of a token.
func (t Token) String() string {
	if t >= 0 && int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "UNKNOWN"
}

// IsComparison returns true for the comparison operators.
func (t Token) IsComparison() bool {
	switch t {
	case GT, LT, GE, LE, EQ, NE:
		return true
	}
	return false
}

// EndsBlock returns true if the token closes an open statement body.
// Bodies run until the next top-level construct, mirroring the
// indentation-free block rule of the language.
func (t Token) EndsBlock() bool {
	switch t {
	case EOF, BRANCH, FALLBACK, FOR, PARALLEL, FN, GPU, LET, IF:
		return true
	}
	return false
}
