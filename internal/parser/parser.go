// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser builds the rmscript AST from a token stream.
package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"nickandperla.net/rmscript/internal/ast"
	"nickandperla.net/rmscript/internal/diag"
	"nickandperla.net/rmscript/internal/ir"
	"nickandperla.net/rmscript/internal/token"
)

// Parser is a single-pass recursive descent parser. On a syntax error it
// records a diagnostic and resumes at the next newline, so one bad line does
// not discard the rest of the script.
type Parser struct {
	tokens []token.Token
	pos    int
	lines  []string
	diags  []diag.Diagnostic
}

// New creates a Parser. The original source is kept so action statements can
// carry their source text into the IR.
func New(tokens []token.Token, source string) *Parser {
	return &Parser{
		tokens: tokens,
		lines:  strings.Split(source, "\n"),
	}
}

// Parse parses tokens into a Program, returning it with any diagnostics.
func Parse(tokens []token.Token, source string) (*ast.Program, []diag.Diagnostic) {
	return New(tokens, source).Parse()
}

// Parse parses the whole program.
func (p *Parser) Parse() (*ast.Program, []diag.Diagnostic) {
	program := &ast.Program{}

	p.skipNewlines()
	program.Description = p.parseDescription()
	program.Statements = p.parseStatements()

	// Anything left over after the top-level statements is stray structure.
	for p.current().Type != token.EOF {
		t := p.current()
		if t.Type != token.DEDENT && t.Type != token.NEWLINE && t.Type != token.END {
			p.errorf(t, "Unexpected token: '%s'", t.Value)
		}
		p.advance()
	}

	return program, p.diags
}

// parseDescription consumes leading DESCRIPTION lines, concatenating their
// text with single spaces.
func (p *Parser) parseDescription() string {
	var parts []string
	for p.current().Type == token.DESCRIPTION {
		p.advance()
		if p.current().Type == token.DESCRIPTION_TEXT {
			if text := p.current().Value; text != "" {
				parts = append(parts, text)
			}
			p.advance()
		}
		p.skipNewlines()
	}
	return strings.Join(parts, " ")
}

func (p *Parser) parseStatements() []ast.Statement {
	var statements []ast.Statement

	for {
		p.skipNewlines()
		t := p.current()
		if t.Type == token.EOF || t.Type == token.DEDENT || t.Type == token.END {
			break
		}
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// parseStatement parses one statement, or returns nil after recording a
// diagnostic and syncing to the next newline.
func (p *Parser) parseStatement() ast.Statement {
	t := p.current()

	switch {
	case t.Type == token.REPEAT:
		return p.parseRepeat()
	case t.Type == token.WAIT:
		return p.parseWait()
	case t.Type == token.PICTURE:
		return p.parsePicture()
	case t.Type == token.PLAY:
		return p.parsePlay()
	case t.Type == token.LOOP:
		return p.parseLoop()
	case t.Type.IsMovement():
		return p.parseActionStmt()
	case t.Type == token.INDENT:
		p.errorf(t, "Unexpected indentation")
		p.advance()
		return nil
	case t.Type == token.IDENTIFIER:
		if hint := suggestKeyword(t.Value); hint != "" {
			p.errorf(t, "Unknown keyword '%s' (did you mean '%s'?)", t.Value, hint)
		} else {
			p.errorf(t, "Unknown keyword '%s'", t.Value)
		}
		p.syncToNewline()
		return nil
	default:
		p.errorf(t, "Unexpected token: '%s'", t.Value)
		p.syncToNewline()
		return nil
	}
}

func (p *Parser) parseWait() ast.Statement {
	kw := p.current()
	p.advance()

	var seconds float64
	switch p.current().Type {
	case token.DURATION:
		seconds = durationSeconds(p.current().Value)
		p.advance()
	case token.DURATION_KEYWORD:
		seconds = token.DurationKeywords[p.current().Value]
		p.advance()
	case token.NUMBER:
		p.errorf(p.current(), "Expected 's' after wait duration (e.g., 'wait %ss')", p.current().Value)
		p.syncToNewline()
		return nil
	default:
		p.errorf(p.current(), "Expected duration after 'wait' (e.g., 'wait 1s')")
		p.syncToNewline()
		return nil
	}

	if !p.endStatement("wait") {
		return nil
	}
	return &ast.WaitStmt{Seconds: seconds, SourceLine: kw.Line}
}

func (p *Parser) parsePicture() ast.Statement {
	kw := p.current()
	p.advance()

	if !p.endStatement("picture") {
		return nil
	}
	return &ast.PictureStmt{SourceLine: kw.Line}
}

func (p *Parser) parsePlay() ast.Statement {
	kw := p.current()
	p.advance()

	name, ok := p.expectSoundName("play")
	if !ok {
		return nil
	}

	stmt := &ast.PlaySoundStmt{Name: name, Mode: ir.PlayAsync, SourceLine: kw.Line}
	switch p.current().Type {
	case token.DURATION:
		stmt.Mode = ir.PlayBlockForSeconds
		stmt.Seconds = durationSeconds(p.current().Value)
		p.advance()
	case token.SOUND_BLOCKING, token.WAIT:
		// 'wait' lexes as its own keyword but is also a blocking modifier.
		stmt.Mode = ir.PlayBlockUntilDone
		p.advance()
	}

	if !p.endStatement("play") {
		return nil
	}
	return stmt
}

func (p *Parser) parseLoop() ast.Statement {
	kw := p.current()
	p.advance()

	name, ok := p.expectSoundName("loop")
	if !ok {
		return nil
	}

	stmt := &ast.LoopSoundStmt{Name: name, Seconds: 10.0, SourceLine: kw.Line}
	if p.current().Type == token.DURATION {
		stmt.Seconds = durationSeconds(p.current().Value)
		p.advance()
	}

	if !p.endStatement("loop") {
		return nil
	}
	return stmt
}

func (p *Parser) expectSoundName(keyword string) (string, bool) {
	t := p.current()
	if t.Type != token.IDENTIFIER {
		p.errorf(t, "Expected sound name after '%s', got '%s'", keyword, t.Value)
		p.syncToNewline()
		return "", false
	}
	p.advance()
	return t.Value, true
}

func (p *Parser) parseRepeat() ast.Statement {
	kw := p.current()
	p.advance()

	t := p.current()
	if t.Type != token.NUMBER {
		p.errorf(t, "Expected number after 'repeat'")
		p.syncToNewline()
		return nil
	}
	count, err := strconv.Atoi(t.Value)
	if err != nil {
		p.errorf(t, "Repeat count must be a non-negative integer")
		p.syncToNewline()
		return nil
	}
	p.advance()

	p.skipNewlines()

	if p.current().Type == token.EOF {
		p.errorf(p.current(), "Unexpected end of file inside 'repeat' block")
		return nil
	}
	if p.current().Type != token.INDENT {
		p.errorf(p.current(), "Expected indented block after 'repeat'")
		p.syncToNewline()
		return nil
	}
	p.advance()

	body := p.parseStatements()

	if p.current().Type == token.DEDENT {
		p.advance()
	}
	// An optional trailing 'end' is tolerated.
	if p.current().Type == token.END {
		p.advance()
		p.skipNewlines()
	}

	return &ast.RepeatStmt{Count: count, Body: body, SourceLine: kw.Line}
}

func (p *Parser) parseActionStmt() ast.Statement {
	kw := p.current()
	stmt := &ast.ActionStmt{SourceLine: kw.Line, SourceText: p.sourceLine(kw.Line)}

	first, ok := p.parsePart("")
	if !ok {
		return nil
	}
	stmt.Parts = append(stmt.Parts, first)

	// A part without its own keyword inherits the current head keyword; an
	// explicit keyword becomes the new head for the rest of the chain.
	head := first.Keyword
	for p.current().Type == token.AND {
		p.advance()
		part, ok := p.parsePart(head)
		if !ok {
			return nil
		}
		head = part.Keyword
		stmt.Parts = append(stmt.Parts, part)
	}

	if !p.endStatement(first.Keyword) {
		return nil
	}
	return stmt
}

// parsePart parses a single action part. When prevKeyword is non-empty and no
// keyword is present, the part inherits the previous head keyword.
func (p *Parser) parsePart(prevKeyword string) (ast.ActionPart, bool) {
	t := p.current()
	part := ast.ActionPart{SourceLine: t.Line}

	switch {
	case t.Type.IsMovement():
		part.Keyword = t.Value
		p.advance()
	case prevKeyword != "":
		if t.Type.IsControl() {
			p.errorf(t, "Cannot combine movement with '%s' using 'and'. Use separate lines instead.", t.Value)
			p.syncToNewline()
			return part, false
		}
		part.Keyword = prevKeyword
	default:
		p.errorf(t, "Expected movement keyword, got '%s'", t.Value)
		p.syncToNewline()
		return part, false
	}

	if part.Keyword == "antenna" {
		if !p.parseAntennaTarget(&part) {
			return part, false
		}
	} else {
		t := p.current()
		if t.Type != token.DIRECTION {
			p.errorf(t, "Expected direction after '%s', got '%s'", part.Keyword, t.Value)
			p.syncToNewline()
			return part, false
		}
		if !validDirection(part.Keyword, t.Value) {
			p.errorf(t, "Invalid direction '%s' for keyword '%s'", t.Value, part.Keyword)
			p.syncToNewline()
			return part, false
		}
		part.Direction = t.Value
		p.advance()
	}

	// Optional strength and duration, in any order.
	for {
		t := p.current()
		switch t.Type {
		case token.NUMBER:
			v, _ := strconv.ParseFloat(t.Value, 64)
			if part.Strength.Kind == ast.StrengthQualitative {
				p.warnBothStrengths(t, part.Strength.Qualitative, v)
			}
			part.Strength = ast.Strength{Kind: ast.StrengthNumeric, Value: v}
		case token.QUALITATIVE:
			// A numeric strength always wins over a qualitative one.
			if part.Strength.Kind == ast.StrengthNumeric {
				p.warnBothStrengths(t, t.Value, part.Strength.Value)
			} else {
				part.Strength = ast.Strength{Kind: ast.StrengthQualitative, Qualitative: t.Value}
			}
		case token.DURATION:
			part.Duration = ast.Duration{Kind: ast.DurationSeconds, Seconds: durationSeconds(t.Value)}
		case token.DURATION_KEYWORD:
			part.Duration = ast.Duration{Kind: ast.DurationKeyword, Keyword: t.Value}
		default:
			return part, true
		}
		p.advance()
	}
}

// parseAntennaTarget parses the antenna selector (left/right/both) and the
// target position: a numeric clock 0-12, a clock keyword, or a directional
// keyword.
func (p *Parser) parseAntennaTarget(part *ast.ActionPart) bool {
	t := p.current()
	if t.Type == token.DIRECTION && (t.Value == "left" || t.Value == "right" || t.Value == "both") {
		part.AntennaSelector = t.Value
		p.advance()
	} else {
		p.errorf(t, "Antenna command requires a modifier (left/right/both), got '%s'", t.Value)
		p.syncToNewline()
		return false
	}

	t = p.current()
	switch {
	case t.Type == token.NUMBER:
		hours, _ := strconv.ParseFloat(t.Value, 64)
		if hours < 0 || hours > 12 {
			p.errorf(t, "Antenna clock position must be between 0 and 12, got %s", t.Value)
			p.syncToNewline()
			return false
		}
		part.Direction = "clock"
		part.ClockHours = hours
		p.advance()
	case t.Type == token.ANTENNA_CLOCK:
		part.Direction = "clock"
		part.ClockHours = token.AntennaClockKeywords[t.Value]
		p.advance()
	case t.Type == token.DIRECTION:
		hours, ok := token.AntennaDirectionKeywords[t.Value]
		if !ok {
			p.errorf(t, "Invalid direction '%s' for keyword 'antenna'", t.Value)
			p.syncToNewline()
			return false
		}
		part.Direction = "clock"
		part.ClockHours = hours
		p.advance()
	default:
		p.errorf(t, "Antenna command requires a position (0-12, high/low/ext/int, or up/down/left/right), got '%s'", t.Value)
		p.syncToNewline()
		return false
	}
	return true
}

// endStatement expects the logical line to be over. It reports a dedicated
// error when a non-movement statement is chained with 'and'.
func (p *Parser) endStatement(keyword string) bool {
	t := p.current()
	switch t.Type {
	case token.NEWLINE:
		p.advance()
		return true
	case token.EOF, token.DEDENT, token.END:
		return true
	case token.AND:
		p.errorf(t, "Cannot combine movement with '%s' using 'and'. Use separate lines instead.", keyword)
		p.syncToNewline()
		return false
	default:
		p.errorf(t, "Unexpected token: '%s'", t.Value)
		p.syncToNewline()
		return false
	}
}

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1] // EOF
}

func (p *Parser) advance() token.Token {
	t := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) skipNewlines() {
	for p.current().Type == token.NEWLINE {
		p.advance()
	}
}

// syncToNewline discards tokens through the next newline so parsing can
// resume with the following statement.
func (p *Parser) syncToNewline() {
	for {
		switch p.current().Type {
		case token.NEWLINE:
			p.advance()
			return
		case token.EOF, token.DEDENT:
			return
		}
		p.advance()
	}
}

func (p *Parser) errorf(t token.Token, format string, args ...any) {
	p.diags = append(p.diags, diag.Errorf(t.Line, t.Column, format, args...))
}

func (p *Parser) warnBothStrengths(t token.Token, qualitative string, numeric float64) {
	p.diags = append(p.diags, diag.Warningf(t.Line, t.Column,
		"Both qualitative '%s' and quantitative '%g' strength specified, using %g",
		qualitative, numeric, numeric))
}

func (p *Parser) sourceLine(line int) string {
	if line >= 1 && line <= len(p.lines) {
		return strings.TrimSpace(p.lines[line-1])
	}
	return ""
}

func durationSeconds(lit string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSuffix(lit, "s"), 64)
	return v
}

// statementKeywords are the candidates for unknown-keyword suggestions.
var statementKeywords = []string{
	"look", "turn", "head", "tilt", "antenna",
	"wait", "picture", "play", "loop", "repeat",
}

// suggestKeyword returns the closest statement keyword to word, or "" when
// nothing is close enough to be a plausible typo.
func suggestKeyword(word string) string {
	if ranks := fuzzy.RankFindFold(word, statementKeywords); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", 3
	lower := strings.ToLower(word)
	for _, kw := range statementKeywords {
		if d := fuzzy.LevenshteinDistance(lower, kw); d < bestDist {
			best, bestDist = kw, d
		}
	}
	return best
}

// validDirection checks the per-keyword direction tables.
func validDirection(keyword, dir string) bool {
	switch keyword {
	case "turn", "tilt":
		return dir == "left" || dir == "right" || token.IsCenter(dir)
	case "look":
		return dir == "left" || dir == "right" || dir == "up" || dir == "down" || token.IsCenter(dir)
	case "head":
		return dir == "forward" || dir == "left" || dir == "right" ||
			dir == "up" || dir == "down" || token.IsBackward(dir)
	}
	return false
}
