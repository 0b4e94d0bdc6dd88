package cst

import "github.com/snowlang/snow/internal/lexer"

// Binding power tables, grounded byte-for-byte on the precedence climbing
// original_source's Pratt parser uses: pipe binds loosest, arithmetic
// tightest, postfix (call/field/index) tighter than any infix operator.
const postfixBP = 25

func infixBindingPower(k lexer.TokenKind) (left, right int, ok bool) {
	switch k {
	case lexer.PIPEOP:
		return 3, 4, true
	case lexer.OR:
		return 5, 6, true
	case lexer.AND:
		return 7, 8, true
	case lexer.EQ, lexer.NEQ:
		return 9, 10, true
	case lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return 11, 12, true
	case lexer.RANGE:
		return 13, 14, true
	case lexer.CONCAT, lexer.APPEND:
		return 15, 16, true
	case lexer.PLUS, lexer.MINUS:
		return 17, 18, true
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return 19, 20, true
	default:
		return 0, 0, false
	}
}

func prefixBindingPower(k lexer.TokenKind) (right int, ok bool) {
	switch k {
	case lexer.MINUS, lexer.NOT:
		return 23, true
	default:
		return 0, false
	}
}

// parseExpr parses a full expression at the loosest precedence.
func (p *Parser) parseExpr() {
	p.exprBP(0)
}

// exprBP is the classic Pratt loop: parse an atom (lhs), then repeatedly
// fold in postfix and infix operators whose binding power clears minBP.
// Postfix forms retroactively wrap lhs via OpenBefore since by the time we
// see the trailing `(` or `.` the atom has already been closed.
func (p *Parser) exprBP(minBP int) {
	lhs := p.lhs()

	for {
		p.progressing()

		if p.at(lexer.LPAREN) && postfixBP > minBP {
			m := p.OpenBefore(lhs)
			p.parseArgList()
			lhs = p.Close(m, CALL_EXPR)
			if p.atTrailingClosureOpener() {
				p.parseTrailingClosure(&lhs)
			}
			continue
		}
		if p.at(lexer.DOT) && postfixBP > minBP {
			m := p.OpenBefore(lhs)
			p.Advance() // .
			p.expect(lexer.IDENT, "PAR002", "expected field name after '.'")
			lhs = p.Close(m, FIELD_ACCESS)
			continue
		}
		if p.at(lexer.LBRACKET) && postfixBP > minBP {
			m := p.OpenBefore(lhs)
			p.Advance() // [
			p.parseExpr()
			p.expect(lexer.RBRACKET, "PAR003", "expected ']' to close index expression")
			lhs = p.Close(m, INDEX_EXPR)
			continue
		}

		k := p.current().Kind
		lbp, rbp, ok := infixBindingPower(k)
		if !ok || lbp <= minBP {
			break
		}
		m := p.OpenBefore(lhs)
		p.Advance() // operator
		p.eatNewlines()
		p.exprBP(rbp)
		kind := BINARY_EXPR
		if k == lexer.PIPEOP {
			kind = PIPE_EXPR
		}
		lhs = p.Close(m, kind)
	}
}

// lhs parses a single atom: literal, name, grouped/tuple expression,
// string, closure, or one of the block-structured expression forms
// (if/case/match/spawn/receive/...).
func (p *Parser) lhs() MarkClosed {
	tok := p.current()

	if right, ok := prefixBindingPower(tok.Kind); ok {
		m := p.Open()
		p.Advance()
		p.exprBP(right)
		return p.Close(m, UNARY_EXPR)
	}

	switch tok.Kind {
	case lexer.INT, lexer.FLOAT, lexer.TRUE, lexer.FALSE, lexer.NIL, lexer.CHAR:
		m := p.Open()
		p.Advance()
		return p.Close(m, LITERAL)

	case lexer.STRING_CONTENT, lexer.STRING_START:
		return p.parseStringExpr()

	case lexer.SQL_QUOTE, lexer.HTML_QUOTE, lexer.JSON_QUOTE, lexer.REGEX_QUOTE, lexer.URL_QUOTE, lexer.SHELL_QUOTE:
		m := p.Open()
		p.Advance()
		return p.Close(m, LITERAL)

	case lexer.IDENT:
		m := p.Open()
		p.Advance()
		for p.at(lexer.DCOLON) {
			p.Advance()
			p.expect(lexer.IDENT, "PAR004", "expected identifier after '::'")
		}
		closed := p.Close(m, NAME_REF)
		if p.at(lexer.LBRACE) && p.looksLikeStructLiteral() {
			return p.parseStructLiteral(closed)
		}
		return closed

	case lexer.SELF:
		m := p.Open()
		p.Advance()
		return p.Close(m, SELF_EXPR)

	case lexer.LPAREN:
		return p.parseParenOrTuple()

	case lexer.IF:
		return p.parseIfExpr()

	case lexer.MATCH:
		return p.parseMatchExpr()

	case lexer.COND:
		return p.parseCondExpr()

	case lexer.FN:
		return p.parseClosure()

	case lexer.SPAWN:
		return p.parseSpawnExpr()

	case lexer.SEND:
		return p.parseSendExpr()

	case lexer.RECEIVE:
		return p.parseReceiveExpr()

	case lexer.LINK, lexer.MONITOR:
		m := p.Open()
		p.Advance()
		p.exprBP(postfixBP)
		return p.Close(m, LINK_EXPR)

	case lexer.LET:
		return p.parseLetBinding()

	default:
		m := p.Open()
		p.recover("PAR001", "unexpected token in expression position")
		return p.Close(m, ERROR_NODE)
	}
}

func (p *Parser) parseParenOrTuple() MarkClosed {
	m := p.Open()
	p.Advance() // (
	p.eatNewlines()
	count := 0
	for !p.at(lexer.RPAREN) && !p.atEOF() {
		p.progressing()
		p.parseExpr()
		count++
		p.eatNewlines()
		if !p.eat(lexer.COMMA) {
			break
		}
		p.eatNewlines()
	}
	p.expect(lexer.RPAREN, "PAR005", "expected ')' to close grouped expression")
	_ = count // a single parenthesized expr and a one-tuple share TUPLE_EXPR; callers disambiguate by child count
	return p.Close(m, TUPLE_EXPR)
}

// parseStringExpr consumes a string literal, folding in
// ${...} interpolations when the lexer has split the literal into the
// STRING_START/INTERPOLATION_START/.../STRING_END sequence; plain
// single-token strings (the common case today) just wrap STRING_CONTENT.
func (p *Parser) parseStringExpr() MarkClosed {
	m := p.Open()
	if p.at(lexer.STRING_CONTENT) {
		p.Advance()
		return p.Close(m, LITERAL)
	}
	p.expect(lexer.STRING_START, "LEX004", "expected string literal")
	for !p.at(lexer.STRING_END) && !p.atEOF() {
		p.progressing()
		switch p.current().Kind {
		case lexer.STRING_CONTENT:
			p.Advance()
		case lexer.INTERPOLATION_START:
			im := p.Open()
			p.Advance()
			p.parseExpr()
			p.expect(lexer.INTERPOLATION_END, "LEX005", "expected '}' to close interpolation")
			p.Close(im, INTERPOLATION)
		default:
			p.recover("LEX004", "unexpected token inside string literal")
		}
	}
	p.expect(lexer.STRING_END, "LEX004", "unterminated string literal")
	return p.Close(m, STRING_EXPR)
}

func (p *Parser) looksLikeStructLiteral() bool {
	// A `{` right after a name is ambiguous with a trailing-closure `do`
	// block body only in degenerate grammars; Snow reserves `{ field: ... }`
	// for struct literals, so any `{` here is one.
	return p.at(lexer.LBRACE)
}

func (p *Parser) parseStructLiteral(name MarkClosed) MarkClosed {
	m := p.OpenBefore(name)
	p.Advance() // {
	p.eatNewlines()
	for !p.at(lexer.RBRACE) && !p.atEOF() {
		p.progressing()
		fm := p.Open()
		p.expect(lexer.IDENT, "PAR006", "expected field name")
		p.expect(lexer.COLON, "PAR006", "expected ':' after field name")
		p.parseExpr()
		p.Close(fm, STRUCT_LITERAL_FIELD)
		p.eatNewlines()
		if !p.eat(lexer.COMMA) {
			break
		}
		p.eatNewlines()
	}
	p.expect(lexer.RBRACE, "PAR006", "expected '}' to close struct literal")
	return p.Close(m, STRUCT_LITERAL)
}

// parseArgList consumes `( expr (, expr)* )`, assuming the caller is at LPAREN.
func (p *Parser) parseArgList() {
	m := p.Open()
	p.Advance() // (
	p.eatNewlines()
	for !p.at(lexer.RPAREN) && !p.atEOF() {
		p.progressing()
		p.parseExpr()
		p.eatNewlines()
		if !p.eat(lexer.COMMA) {
			break
		}
		p.eatNewlines()
	}
	p.expect(lexer.RPAREN, "PAR007", "expected ')' to close argument list")
	p.Close(m, ARG_LIST)
}

func (p *Parser) atTrailingClosureOpener() bool {
	return p.at(lexer.DO)
}

// parseTrailingClosure attaches a `do |params| ... end` block to the
// CALL_EXPR already closed at *call.
func (p *Parser) parseTrailingClosure(call *MarkClosed) {
	m := p.OpenBefore(*call)
	p.Advance() // do
	if p.eat(lexer.PIPE) {
		p.parseParamList(lexer.PIPE)
	}
	p.eatNewlines()
	doTok := p.current()
	p.parseBlockBody()
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR008", "expected 'end' to close trailing closure", doTok, "block opened here")
	}
	*call = p.Close(m, TRAILING_CLOSURE)
}

// parseBlockBody consumes statements until END, ELSE, CASE or EOF, matching
// the terminator set original_source's parse_block_body stops on.
func (p *Parser) parseBlockBody() {
	m := p.Open()
	p.eatNewlines()
	for !p.atAny(lexer.END, lexer.ELSE, lexer.CASE) && !p.atEOF() {
		p.progressing()
		p.parseStatement()
		p.eatNewlines()
	}
	p.Close(m, BLOCK)
}

func (p *Parser) parseStatement() {
	switch p.current().Kind {
	case lexer.LET:
		p.parseLetBinding()
	case lexer.TYPE:
		p.parseTypeAlias()
		return
	default:
		if p.at(lexer.IDENT) && p.nth(1).Kind == lexer.ASSIGN {
			p.parseReturnAssign()
			return
		}
		p.parseExprStatement()
	}
}

func (p *Parser) parseExprStatement() {
	if p.current().Kind == lexer.IDENT {
		// RETURN_EXPR has no dedicated keyword in Snow; the last expression
		// of a block is its value, matching original_source's tail-expr rule.
	}
	p.parseExpr()
}

func (p *Parser) parseReturnAssign() {
	m := p.Open()
	p.Advance() // name
	p.Advance() // =
	p.eatNewlines()
	p.parseExpr()
	p.Close(m, LET_BINDING)
}

func (p *Parser) parseLetBinding() MarkClosed {
	m := p.Open()
	p.Advance() // let
	p.parsePattern()
	if p.eat(lexer.COLON) {
		p.parseTypeAnnotation()
	}
	p.expect(lexer.ASSIGN, "PAR009", "expected '=' in let binding")
	p.eatNewlines()
	p.parseExpr()
	return p.Close(m, LET_BINDING)
}

func (p *Parser) parseIfExpr() MarkClosed {
	m := p.Open()
	ifTok := p.current()
	p.Advance() // if
	p.parseExpr()
	p.expect(lexer.THEN, "PAR010", "expected 'then'")
	p.parseBlockBody()
	if p.eat(lexer.ELSE) {
		em := p.Open()
		p.parseBlockBody()
		p.Close(em, ELSE_BRANCH)
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'if'", ifTok, "'if' opened here")
	}
	return p.Close(m, IF_EXPR)
}

func (p *Parser) parseMatchExpr() MarkClosed {
	m := p.Open()
	matchTok := p.current()
	p.Advance() // match
	p.parseExpr()
	p.expect(lexer.DO, "PAR010", "expected 'do' after match subject")
	p.eatNewlines()
	for p.at(lexer.CASE) {
		p.parseMatchArm()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'match'", matchTok, "'match' opened here")
	}
	return p.Close(m, CASE_EXPR)
}

func (p *Parser) parseMatchArm() {
	m := p.Open()
	p.Advance() // case
	p.parsePattern()
	if p.eat(lexer.WHEN) {
		gm := p.Open()
		p.parseExpr()
		p.Close(gm, GUARD_CLAUSE)
	}
	p.expect(lexer.FARROW, "PAR011", "expected '=>' after pattern")
	p.eatNewlines()
	bm := p.Open()
	for !p.atAny(lexer.CASE, lexer.END) && !p.atEOF() {
		p.progressing()
		p.parseStatement()
		p.eatNewlines()
	}
	p.Close(bm, BLOCK)
	p.Close(m, MATCH_ARM)
}

func (p *Parser) parseCondExpr() MarkClosed {
	m := p.Open()
	condTok := p.current()
	p.Advance() // cond
	p.expect(lexer.DO, "PAR010", "expected 'do' after 'cond'")
	p.eatNewlines()
	for p.at(lexer.CASE) {
		p.parseMatchArm()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'cond'", condTok, "'cond' opened here")
	}
	return p.Close(m, CASE_EXPR)
}

func (p *Parser) parseClosure() MarkClosed {
	m := p.Open()
	p.Advance() // fn
	p.expect(lexer.LPAREN, "PAR012", "expected '(' to open closure parameters")
	p.parseParamList(lexer.RPAREN)
	p.expect(lexer.ARROW, "PAR013", "expected '->' after closure parameters")
	bm := p.Open()
	if p.at(lexer.DO) {
		doTok := p.current()
		p.Advance()
		p.parseBlockBody()
		if !p.eat(lexer.END) {
			p.errorWithRelated("PAR008", "expected 'end' to close closure body", doTok, "closure opened here")
		}
	} else {
		p.parseExpr()
	}
	p.Close(bm, FN_EXPR_BODY)
	return p.Close(m, CLOSURE_EXPR)
}

// parseParamList consumes comma-separated params up to and including
// closer, which is either RPAREN for `fn (...)` or PIPE for `do |...|`.
func (p *Parser) parseParamList(closer lexer.TokenKind) {
	m := p.Open()
	for !p.at(closer) && !p.atEOF() {
		p.progressing()
		pm := p.Open()
		p.expect(lexer.IDENT, "PAR014", "expected parameter name")
		if p.eat(lexer.COLON) {
			p.parseTypeAnnotation()
		}
		p.Close(pm, PARAM)
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	p.expect(closer, "PAR015", "expected closing delimiter for parameter list")
	p.Close(m, PARAM_LIST)
}

func (p *Parser) parseTypeAnnotation() {
	m := p.Open()
	p.expect(lexer.IDENT, "PAR016", "expected type name")
	if p.eat(lexer.LT) {
		for !p.at(lexer.GT) && !p.atEOF() {
			p.progressing()
			p.parseTypeAnnotation()
			if !p.eat(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.GT, "PAR016", "expected '>' to close generic arguments")
	}
	p.Close(m, TYPE_ANNOTATION)
}

func (p *Parser) parseTypeAlias() {
	m := p.Open()
	p.Advance() // type
	p.expect(lexer.IDENT, "PAR017", "expected type name")
	p.expect(lexer.ASSIGN, "PAR017", "expected '=' in type alias")
	p.parseTypeAnnotation()
	p.Close(m, TYPE_ALIAS_DEF)
}
