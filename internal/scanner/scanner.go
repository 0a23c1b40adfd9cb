// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides the indentation-sensitive rmscript lexer.
package scanner

import (
	"strings"

	"nickandperla.net/rmscript/internal/diag"
	"nickandperla.net/rmscript/internal/token"
)

// Scanner tokenizes rmscript source rune-by-rune, tracking significant
// indentation with a stack of widths. A tab counts as 4 spaces.
type Scanner struct {
	src     []rune
	pos     int
	line    int // 1-based
	col     int // 1-based
	indents []int
	tokens  []token.Token
	diags   []diag.Diagnostic
}

const tabWidth = 4

// New creates a Scanner for the given source text.
func New(source string) *Scanner {
	return &Scanner{
		src:     []rune(source),
		line:    1,
		col:     1,
		indents: []int{0},
	}
}

// Scan tokenizes source and returns the tokens with any diagnostics.
func Scan(source string) ([]token.Token, []diag.Diagnostic) {
	return New(source).Scan()
}

// Scan tokenizes the entire source. The token stream always ends with EOF,
// preceded by DEDENTs closing any open indentation.
func (s *Scanner) Scan() ([]token.Token, []diag.Diagnostic) {
	atLineStart := true

	for s.pos < len(s.src) {
		if atLineStart {
			if s.skipBlankLine() {
				continue
			}
			s.handleIndentation()
			atLineStart = false
			// A DESCRIPTION header owns the remainder of its line.
			if s.scanDescriptionLine() {
				atLineStart = true
				continue
			}
		}

		s.skipInlineWhitespace()
		s.skipComment()

		if s.pos >= len(s.src) {
			break
		}

		r := s.peek(0)
		switch {
		case r == '\n':
			s.emit(token.NEWLINE, "\\n", s.line, s.col)
			s.advance()
			atLineStart = true

		case r >= '0' && r <= '9':
			s.scanNumber()

		case isIdentStart(r):
			s.scanIdentifier()

		default:
			s.diags = append(s.diags, diag.Errorf(s.line, s.col, "Unexpected character: %q", string(r)))
			s.advance()
		}
	}

	// Close any remaining indentation levels.
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		s.emit(token.DEDENT, "", s.line, 1)
	}
	s.emit(token.EOF, "", s.line, s.col)

	return s.tokens, s.diags
}

func (s *Scanner) peek(offset int) rune {
	if s.pos+offset < len(s.src) {
		return s.src[s.pos+offset]
	}
	return 0
}

func (s *Scanner) advance() rune {
	if s.pos >= len(s.src) {
		return 0
	}
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) emit(t token.Type, value string, line, col int) {
	s.tokens = append(s.tokens, token.Token{Type: t, Value: value, Line: line, Column: col})
}

// skipBlankLine consumes a blank or comment-only line, returning true if one
// was consumed. Such lines never affect indentation.
func (s *Scanner) skipBlankLine() bool {
	p := s.pos
	for p < len(s.src) && (s.src[p] == ' ' || s.src[p] == '\t') {
		p++
	}
	if p < len(s.src) && s.src[p] != '\n' && s.src[p] != '#' {
		return false
	}
	for s.pos < len(s.src) && s.peek(0) != '\n' {
		s.advance()
	}
	if s.pos < len(s.src) {
		s.advance() // newline
	}
	return true
}

// handleIndentation measures the leading whitespace of the current line and
// emits INDENT/DEDENT tokens against the indent stack.
func (s *Scanner) handleIndentation() {
	width := 0
	sawSpace := false
	mixed := false
	for s.pos < len(s.src) {
		r := s.peek(0)
		if r == ' ' {
			sawSpace = true
			width++
		} else if r == '\t' {
			if sawSpace {
				mixed = true
			}
			width += tabWidth
		} else {
			break
		}
		s.advance()
	}
	if mixed {
		s.diags = append(s.diags, diag.Errorf(s.line, 1, "Inconsistent indentation"))
	}

	top := s.indents[len(s.indents)-1]
	switch {
	case width > top:
		s.indents = append(s.indents, width)
		s.emit(token.INDENT, "", s.line, 1)
	case width < top:
		for len(s.indents) > 1 && width < s.indents[len(s.indents)-1] {
			s.indents = s.indents[:len(s.indents)-1]
			s.emit(token.DEDENT, "", s.line, 1)
		}
		if width != s.indents[len(s.indents)-1] {
			s.diags = append(s.diags, diag.Errorf(s.line, 1, "Inconsistent indentation (level %d)", width))
			s.indents = append(s.indents, width)
		}
	}
}

// scanDescriptionLine handles the line-level DESCRIPTION construct: when the
// first word of a line is the DESCRIPTION keyword, the trimmed remainder of
// the line becomes a single DESCRIPTION_TEXT token. Returns true if the line
// was consumed.
func (s *Scanner) scanDescriptionLine() bool {
	p := s.pos
	for p < len(s.src) && isIdentPart(s.src[p]) {
		p++
	}
	word := string(s.src[s.pos:p])
	if !strings.EqualFold(word, "description") {
		return false
	}

	startLine, startCol := s.line, s.col
	for s.pos < p {
		s.advance()
	}
	s.emit(token.DESCRIPTION, "description", startLine, startCol)

	textCol := s.col
	var text strings.Builder
	for s.pos < len(s.src) && s.peek(0) != '\n' && s.peek(0) != '#' {
		text.WriteRune(s.advance())
	}
	s.emit(token.DESCRIPTION_TEXT, strings.TrimSpace(text.String()), startLine, textCol)

	for s.pos < len(s.src) && s.peek(0) != '\n' {
		s.advance() // trailing comment
	}
	if s.pos < len(s.src) {
		s.emit(token.NEWLINE, "\\n", s.line, s.col)
		s.advance()
	}
	return true
}

func (s *Scanner) skipInlineWhitespace() {
	for s.peek(0) == ' ' || s.peek(0) == '\t' {
		s.advance()
	}
}

func (s *Scanner) skipComment() {
	if s.peek(0) == '#' {
		for s.pos < len(s.src) && s.peek(0) != '\n' {
			s.advance()
		}
	}
}

// scanNumber reads a number literal, and when immediately followed by a bare
// 's' (not part of a longer identifier) a duration literal that consumes it.
func (s *Scanner) scanNumber() {
	startLine, startCol := s.line, s.col
	var lit strings.Builder

	for isDigit(s.peek(0)) {
		lit.WriteRune(s.advance())
	}
	if s.peek(0) == '.' && isDigit(s.peek(1)) {
		lit.WriteRune(s.advance())
		for isDigit(s.peek(0)) {
			lit.WriteRune(s.advance())
		}
	}

	if (s.peek(0) == 's' || s.peek(0) == 'S') && !isIdentPart(s.peek(1)) {
		s.advance()
		s.emit(token.DURATION, lit.String()+"s", startLine, startCol)
		return
	}
	s.emit(token.NUMBER, lit.String(), startLine, startCol)
}

// scanIdentifier reads a word and classifies it against the keyword tables.
// Keywords match case-insensitively; identifier payloads keep their case.
func (s *Scanner) scanIdentifier() {
	startLine, startCol := s.line, s.col
	var lit strings.Builder

	for isIdentPart(s.peek(0)) {
		lit.WriteRune(s.advance())
	}

	t, value := token.Classify(lit.String())
	s.emit(t, value, startLine, startCol)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
