// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming Unicode-aware lexer for Vortex.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"vortexlang.dev/vortex/internal/token"
)

// Scanner tokenizes Vortex input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	peeked *Item
	line   int // Current line number (1-based)
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Line  int // Line number where this token started
}

func (i *Item) String() string {
	switch i.Token {
	case token.EOF:
		return "end of input"
	case token.STRING:
		return fmt.Sprintf("%q", i.Value)
	case token.INT, token.FLOAT, token.IDENT, token.ILLEGAL:
		return fmt.Sprintf("'%s'", i.Value)
	}
	return fmt.Sprintf("'%s'", i.Token)
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// All scans the remaining input into a slice ending with an EOF item.
func (s *Scanner) All() ([]*Item, error) {
	var items []*Item
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if item.Token == token.EOF {
			return items, nil
		}
	}
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	if err := s.skipSpaceAndComments(); err != nil {
		return nil, err
	}

	r, err := s.read()
	if err == io.EOF {
		return &Item{Token: token.EOF, Line: s.line}, nil
	}
	if err != nil {
		return nil, err
	}

	line := s.line
	emit := func(t token.Token, v string) (*Item, error) {
		return &Item{Token: t, Value: v, Line: line}, nil
	}

	switch r {
	case '=':
		if s.accept('=') {
			return emit(token.EQ, "==")
		}
		if s.accept('>') {
			return emit(token.FAT_ARROW, "=>")
		}
		return emit(token.ASSIGN, "=")
	case '-':
		if s.accept('>') {
			return emit(token.ARROW, "->")
		}
		return emit(token.MINUS, "-")
	case '!':
		if s.accept('=') {
			return emit(token.NE, "!=")
		}
		return emit(token.ILLEGAL, "!")
	case '>':
		if s.accept('=') {
			return emit(token.GE, ">=")
		}
		return emit(token.GT, ">")
	case '<':
		if s.accept('=') {
			return emit(token.LE, "<=")
		}
		return emit(token.LT, "<")
	case '.':
		if s.accept('.') {
			return emit(token.RANGE, "..")
		}
		return emit(token.DOT, ".")
	case '+':
		return emit(token.PLUS, "+")
	case '*':
		return emit(token.STAR, "*")
	case '/':
		return emit(token.SLASH, "/")
	case ':':
		return emit(token.COLON, ":")
	case ',':
		return emit(token.COMMA, ",")
	case '(':
		return emit(token.LPAREN, "(")
	case ')':
		return emit(token.RPAREN, ")")
	case '{':
		return emit(token.LBRACE, "{")
	case '}':
		return emit(token.RBRACE, "}")
	case '[':
		return emit(token.LBRACKET, "[")
	case ']':
		return emit(token.RBRACKET, "]")
	case '"':
		return s.scanString(line)
	case '@':
		name, err := s.scanWhile(isIdentChar)
		if err != nil {
			return nil, err
		}
		if name == "gpu" {
			return emit(token.GPU, "@gpu")
		}
		// Unknown annotations read as plain identifiers.
		return emit(token.IDENT, "@"+name)
	}

	if isDigit(r) {
		return s.scanNumber(r, line)
	}
	if unicode.IsLetter(r) || r == '_' {
		rest, err := s.scanWhile(isIdentChar)
		if err != nil {
			return nil, err
		}
		ident := string(r) + rest
		return emit(token.Lookup(ident), ident)
	}
	return emit(token.ILLEGAL, string(r))
}

func (s *Scanner) read() (rune, error) {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		s.line++
	}
	return r, nil
}

func (s *Scanner) unread(r rune) {
	s.reader.UnreadRune()
	if r == '\n' {
		s.line--
	}
}

// peekRune returns the next rune without consuming it. Returns 0 on EOF.
func (s *Scanner) peekRune() rune {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return 0
	}
	s.reader.UnreadRune()
	return r
}

// peekSecond returns the rune after the next one. Returns 0 on EOF.
func (s *Scanner) peekSecond() rune {
	b, err := s.reader.Peek(2)
	if err != nil || len(b) < 2 {
		return 0
	}
	return rune(b[1])
}

func (s *Scanner) accept(want rune) bool {
	if s.peekRune() == want {
		s.read()
		return true
	}
	return false
}

func (s *Scanner) skipSpaceAndComments() error {
	for {
		r := s.peekRune()
		switch {
		case r == 0:
			return nil
		case unicode.IsSpace(r):
			s.read()
		case r == '/' && s.peekSecond() == '/':
			for {
				c, err := s.read()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				if c == '\n' {
					break
				}
			}
		default:
			return nil
		}
	}
}

func (s *Scanner) scanWhile(ok func(rune) bool) (string, error) {
	var sb strings.Builder
	for {
		r, err := s.read()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if !ok(r) {
			s.unread(r)
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// scanString reads up to the closing quote. An unterminated string runs to
// the end of input.
func (s *Scanner) scanString(line int) (*Item, error) {
	var sb strings.Builder
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if r == '"' {
			break
		}
		sb.WriteRune(r)
	}
	return &Item{Token: token.STRING, Value: sb.String(), Line: line}, nil
}

// scanNumber reads an integer or float literal. A '.' directly followed by
// another '.' is a range operator and is left in the stream.
func (s *Scanner) scanNumber(first rune, line int) (*Item, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	isFloat := false
	for {
		r := s.peekRune()
		switch {
		case isDigit(r):
			s.read()
			sb.WriteRune(r)
			continue
		case r == '.' && !isFloat && s.peekSecond() != '.':
			s.read()
			isFloat = true
			sb.WriteRune(r)
			continue
		}
		break
	}
	t := token.INT
	if isFloat {
		t = token.FLOAT
	}
	return &Item{Token: t, Value: sb.String(), Line: line}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentChar returns true if the rune is valid in an identifier (letter, digit, underscore).
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
