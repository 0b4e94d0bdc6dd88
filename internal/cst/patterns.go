package cst

import "github.com/snowlang/snow/internal/lexer"

// parsePattern parses a single pattern (used by let bindings, case/receive
// arms, and function clauses), including `as` bindings and `|` alternation.
func (p *Parser) parsePattern() MarkClosed {
	first := p.patternAtom()
	if p.at(lexer.PIPE) {
		m := p.OpenBefore(first)
		for p.eat(lexer.PIPE) {
			p.patternAtom()
		}
		return p.Close(m, OR_PAT)
	}
	if p.at(lexer.IDENT) && p.current().Literal == "as" {
		m := p.OpenBefore(first)
		p.Advance() // as
		p.expect(lexer.IDENT, "PAR037", "expected binding name after 'as'")
		return p.Close(m, AS_PAT)
	}
	return first
}

func (p *Parser) patternAtom() MarkClosed {
	tok := p.current()
	switch tok.Kind {
	case lexer.IDENT:
		if tok.Literal == "_" {
			m := p.Open()
			p.Advance()
			return p.Close(m, WILDCARD_PAT)
		}
		// Uppercase-leading identifiers are constructor/variant patterns;
		// lowercase ones bind a fresh name. Snow doesn't reserve case in the
		// lexer, so the parser makes the call the way original_source's
		// pattern parser does, off the first rune.
		if isUpperIdent(tok.Literal) {
			return p.parseConstructorPattern()
		}
		m := p.Open()
		p.Advance()
		return p.Close(m, IDENT_PAT)

	case lexer.INT, lexer.FLOAT, lexer.STRING_CONTENT, lexer.TRUE, lexer.FALSE, lexer.NIL, lexer.CHAR:
		m := p.Open()
		p.Advance()
		return p.Close(m, LITERAL_PAT)

	case lexer.MINUS:
		m := p.Open()
		p.Advance()
		p.expect(lexer.INT, "PAR038", "expected numeric literal after '-' in pattern")
		return p.Close(m, LITERAL_PAT)

	case lexer.LPAREN:
		m := p.Open()
		p.Advance()
		for !p.at(lexer.RPAREN) && !p.atEOF() {
			p.progressing()
			p.parsePattern()
			if !p.eat(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RPAREN, "PAR039", "expected ')' to close tuple pattern")
		return p.Close(m, TUPLE_PAT)

	default:
		m := p.Open()
		p.recover("PAR040", "unexpected token in pattern position")
		return p.Close(m, ERROR_NODE)
	}
}

func isUpperIdent(s string) bool {
	if s == "" {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z'
}

// parseConstructorPattern covers bare variant references (`None`),
// positional constructors (`Some(x)`), and struct patterns
// (`Point { x, y }`).
func (p *Parser) parseConstructorPattern() MarkClosed {
	m := p.Open()
	p.Advance() // constructor name
	for p.at(lexer.DCOLON) {
		p.Advance()
		p.expect(lexer.IDENT, "PAR004", "expected identifier after '::'")
	}
	if p.eat(lexer.LPAREN) {
		for !p.at(lexer.RPAREN) && !p.atEOF() {
			p.progressing()
			p.parsePattern()
			if !p.eat(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RPAREN, "PAR041", "expected ')' to close constructor pattern")
		return p.Close(m, CONSTRUCTOR_PAT)
	}
	if p.eat(lexer.LBRACE) {
		for !p.at(lexer.RBRACE) && !p.atEOF() {
			p.progressing()
			p.expect(lexer.IDENT, "PAR042", "expected field name in struct pattern")
			if p.eat(lexer.COLON) {
				p.parsePattern()
			}
			if !p.eat(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RBRACE, "PAR042", "expected '}' to close struct pattern")
		return p.Close(m, STRUCT_PAT)
	}
	return p.Close(m, CONSTRUCTOR_PAT)
}
