package cst

import "github.com/snowlang/snow/internal/lexer"

// parseSpawnExpr covers `spawn Name(args)` and `spawn Name.init(args)`.
func (p *Parser) parseSpawnExpr() MarkClosed {
	m := p.Open()
	p.Advance() // spawn
	p.exprBP(postfixBP)
	return p.Close(m, SPAWN_EXPR)
}

// parseSendExpr covers the keyword form `send target, message` used for
// fire-and-forget casts; there is no operator form of send.
func (p *Parser) parseSendExpr() MarkClosed {
	m := p.Open()
	p.Advance() // send
	p.exprBP(postfixBP)
	p.expect(lexer.COMMA, "PAR018", "expected ',' between send target and message")
	p.parseExpr()
	return p.Close(m, SEND_EXPR)
}

// parseReceiveExpr covers:
//
//	receive do
//	  case Pattern [when guard] => body
//	after ms do
//	  body
//	end
//
// A single `end` closes both the after block and the receive.
func (p *Parser) parseReceiveExpr() MarkClosed {
	m := p.Open()
	recvTok := p.current()
	p.Advance() // receive
	p.expect(lexer.DO, "PAR010", "expected 'do' after 'receive'")
	p.eatNewlines()
	for p.at(lexer.CASE) {
		p.parseReceiveArm()
		p.eatNewlines()
	}
	if p.eat(lexer.AFTER) {
		am := p.Open()
		p.parseExpr()
		p.expect(lexer.DO, "PAR010", "expected 'do' after 'after' timeout")
		p.parseBlockBody()
		p.Close(am, AFTER_CLAUSE)
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'receive'", recvTok, "'receive' opened here")
	}
	return p.Close(m, RECEIVE_EXPR)
}

func (p *Parser) parseReceiveArm() {
	m := p.Open()
	p.Advance() // case
	p.parsePattern()
	if p.eat(lexer.WHEN) {
		gm := p.Open()
		p.parseExpr()
		p.Close(gm, GUARD_CLAUSE)
	}
	p.expect(lexer.FARROW, "PAR011", "expected '=>' after receive pattern")
	p.eatNewlines()
	bm := p.Open()
	for !p.atAny(lexer.CASE, lexer.AFTER, lexer.END) && !p.atEOF() {
		p.progressing()
		p.parseStatement()
		p.eatNewlines()
	}
	p.Close(bm, BLOCK)
	p.Close(m, RECEIVE_ARM)
}

// parseActorDef covers:
//
//	actor Name(init_args) do
//	  state ...
//	  receive ... end
//	end
func (p *Parser) parseActorDef() {
	m := p.Open()
	actorTok := p.current()
	p.Advance() // actor
	p.expect(lexer.IDENT, "PAR019", "expected actor name")
	if p.at(lexer.LPAREN) {
		p.parseArgList()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' after actor header")
	p.parseBlockBody()
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'actor'", actorTok, "'actor' opened here")
	}
	p.Close(m, ACTOR_DEF)
}

// parseServiceDef covers:
//
//	service Name do
//	  call handler_name(args) do ... end
//	  cast handler_name(args) do ... end
//	end
func (p *Parser) parseServiceDef() {
	m := p.Open()
	svcTok := p.current()
	p.Advance() // service
	p.expect(lexer.IDENT, "PAR020", "expected service name")
	p.expect(lexer.DO, "PAR010", "expected 'do' after service header")
	p.eatNewlines()
	for p.at(lexer.IDENT) && (p.current().Literal == "call" || p.current().Literal == "cast") {
		p.parseServiceHandler()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'service'", svcTok, "'service' opened here")
	}
	p.Close(m, SERVICE_DEF)
}

func (p *Parser) parseServiceHandler() {
	m := p.Open()
	isCall := p.current().Literal == "call"
	p.Advance() // call | cast
	p.expect(lexer.IDENT, "PAR021", "expected handler name")
	if p.at(lexer.LPAREN) {
		p.parseArgList()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' to open handler body")
	p.parseBlockBody()
	p.expect(lexer.END, "PAR010", "expected 'end' to close handler body")
	kind := CAST_HANDLER
	if isCall {
		kind = CALL_HANDLER
	}
	p.Close(m, kind)
}

// parseSupervisorDef covers:
//
//	supervisor Name do
//	  strategy one_for_one
//	  child ChildActor
//	end
func (p *Parser) parseSupervisorDef() {
	m := p.Open()
	supTok := p.current()
	p.Advance() // supervisor
	p.expect(lexer.IDENT, "PAR022", "expected supervisor name")
	p.expect(lexer.DO, "PAR010", "expected 'do' after supervisor header")
	p.eatNewlines()
	for p.at(lexer.IDENT) && (p.current().Literal == "strategy" || p.current().Literal == "child") {
		if p.current().Literal == "strategy" {
			sm := p.Open()
			p.Advance()
			p.expect(lexer.IDENT, "PAR023", "expected restart strategy name")
			p.Close(sm, STRATEGY_CLAUSE)
		} else {
			cm := p.Open()
			p.Advance() // child
			p.exprBP(postfixBP)
			p.Close(cm, CHILD_SPEC_DEF)
		}
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close 'supervisor'", supTok, "'supervisor' opened here")
	}
	p.Close(m, SUPERVISOR_DEF)
}
