package cst

import (
	"fmt"

	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/lexer"
)

// Parser drives the event-log Pratt loop over a flat token stream. It never
// backtracks: Open/Close/OpenBefore record structure as a list of events
// that buildTree replays once parsing finishes, which is what lets a
// CALL_EXPR wrap a NAME_REF it has already closed once it sees a trailing
// `(` (see OpenBefore in events.go).
type Parser struct {
	tokens []lexer.Token
	pos    int
	events []event
	fuel   int
	Errors []*errors.Report
	file   string
}

// NewParser builds a Parser over a token stream from internal/lexer.
// Tokenize() already appends a trailing EOF.
func NewParser(tokens []lexer.Token) *Parser {
	file := ""
	if len(tokens) > 0 {
		file = tokens[0].File
	}
	return &Parser{tokens: tokens, fuel: 256, file: file}
}

// Parse runs the top-level SOURCE_FILE grammar and materializes the tree.
func Parse(tokens []lexer.Token) (*Node, []*errors.Report) {
	p := NewParser(tokens)
	m := p.Open()
	p.eatNewlines()
	for !p.atEOF() {
		p.parseItem()
		p.eatNewlines()
	}
	p.Close(m, SOURCE_FILE)
	return buildTree(p.events, p.tokens), p.Errors
}

// --- lookahead -------------------------------------------------------

func (p *Parser) nth(n int) lexer.Token {
	idx := p.pos
	count := 0
	for idx < len(p.tokens) {
		if !p.tokens[idx].IsTrivia() {
			if count == n {
				return p.tokens[idx]
			}
			count++
		}
		idx++
	}
	return lexer.Token{Kind: lexer.EOF, File: p.file}
}

func (p *Parser) current() lexer.Token { return p.nth(0) }

func (p *Parser) at(kind lexer.TokenKind) bool { return p.current().Kind == kind }

func (p *Parser) atAny(kinds ...lexer.TokenKind) bool {
	c := p.current().Kind
	for _, k := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

func (p *Parser) atEOF() bool { return p.at(lexer.EOF) }

// --- token consumption -------------------------------------------------

// Advance consumes one significant token, carrying along any trivia
// immediately preceding it so the tree stays lossless.
func (p *Parser) Advance() {
	p.fuel = 256
	for p.pos < len(p.tokens) && p.tokens[p.pos].IsTrivia() {
		p.events = append(p.events, event{kind: evToken})
		p.pos++
	}
	if p.pos < len(p.tokens) {
		p.events = append(p.events, event{kind: evToken})
		p.pos++
	}
}

func (p *Parser) eat(kind lexer.TokenKind) bool {
	if p.at(kind) {
		p.Advance()
		return true
	}
	return false
}

func (p *Parser) eatNewlines() {
	for p.at(lexer.NEWLINE) {
		p.Advance()
	}
}

// expect consumes kind or records a diagnostic and leaves the cursor in
// place so callers can attempt recovery.
func (p *Parser) expect(kind lexer.TokenKind, code, msg string) bool {
	if p.eat(kind) {
		return true
	}
	p.errorHere(code, msg)
	return false
}

func (p *Parser) errorHere(code, msg string) {
	span := spanOfToken(p.current())
	report := errors.New(code, msg, &span)
	p.Errors = append(p.Errors, report)
}

// errorWithRelated records a diagnostic that points back at an earlier
// token (e.g. the `do` a missing `end` belongs to), mirroring
// expressions.rs's error_with_related for unterminated blocks.
func (p *Parser) errorWithRelated(code, msg string, related lexer.Token, relatedMsg string) {
	span := spanOfToken(p.current())
	report := errors.New(code, msg, &span)
	relSpan := spanOfToken(related)
	report = report.WithData("related_span", relSpan).WithData("related_message", relatedMsg)
	p.Errors = append(p.Errors, report)
}

// recover wraps the unexpected current token in an ERROR_NODE and advances
// past it, so a single bad token doesn't cascade into an infinite loop.
func (p *Parser) recover(code, msg string) {
	p.errorHere(code, msg)
	m := p.Open()
	p.Advance()
	p.Close(m, ERROR_NODE)
}

// progressing guards statement/list loops against getting stuck on a
// token no rule consumes; it panics loudly during development rather than
// hanging, matching the fuel counter snow-parser's Pratt loop uses.
func (p *Parser) progressing() {
	p.fuel--
	if p.fuel <= 0 {
		panic(fmt.Sprintf("cst: parser stuck at %s", p.current()))
	}
}
