package cst

import "github.com/snowlang/snow/internal/lexer"

// parseItem dispatches on the current token to one of the top-level
// declaration forms a module body can contain.
func (p *Parser) parseItem() {
	pub := p.at(lexer.PUB)
	var vm Marker
	if pub {
		vm = p.Open()
		p.Advance()
		p.Close(vm, VISIBILITY)
	}

	switch p.current().Kind {
	case lexer.MODULE:
		p.parseModuleDef()
	case lexer.IMPORT:
		p.parseImportDecl()
	case lexer.FROM:
		p.parseFromImportDecl()
	case lexer.FN:
		p.parseFnDef()
	case lexer.STRUCT:
		p.parseStructDef()
	case lexer.TYPE:
		p.parseSumTypeOrAlias()
	case lexer.TRAIT, lexer.INTERFACE:
		p.parseInterfaceDef()
	case lexer.IMPL:
		p.parseImplDef()
	case lexer.ACTOR:
		p.parseActorDef()
	case lexer.SERVICE:
		p.parseServiceDef()
	case lexer.SUPERVISOR:
		p.parseSupervisorDef()
	case lexer.LET:
		p.parseLetBinding()
	default:
		p.recover("PAR024", "expected a top-level declaration")
	}
}

func (p *Parser) parseModuleDef() {
	m := p.Open()
	p.Advance() // module
	p.parsePath()
	p.Close(m, MODULE_DEF)
}

func (p *Parser) parsePath() {
	m := p.Open()
	p.expect(lexer.IDENT, "PAR025", "expected module path segment")
	for p.eat(lexer.DOT) {
		p.expect(lexer.IDENT, "PAR025", "expected module path segment")
	}
	p.Close(m, PATH)
}

func (p *Parser) parseImportDecl() {
	m := p.Open()
	p.Advance() // import
	p.parsePath()
	p.Close(m, IMPORT_DECL)
}

// parseFromImportDecl covers `from Path import a, b, c`.
func (p *Parser) parseFromImportDecl() {
	m := p.Open()
	p.Advance() // from
	p.parsePath()
	p.expect(lexer.IMPORT, "PAR026", "expected 'import' after module path")
	lm := p.Open()
	for {
		p.progressing()
		p.expect(lexer.IDENT, "PAR026", "expected imported name")
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	p.Close(lm, IMPORT_LIST)
	p.Close(m, FROM_IMPORT_DECL)
}

func (p *Parser) parseFnDef() {
	m := p.Open()
	p.Advance() // fn
	p.expect(lexer.IDENT, "PAR027", "expected function name")
	if p.at(lexer.LT) {
		p.parseGenericParamList()
	}
	p.expect(lexer.LPAREN, "PAR012", "expected '(' to open parameter list")
	p.parseParamList(lexer.RPAREN)
	if p.eat(lexer.ARROW) {
		p.parseTypeAnnotation()
	}
	if p.eat(lexer.WHERE) {
		p.parseWhereClause()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' to open function body")
	bodyTok := p.current()
	p.parseBlockBody()
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close function body", bodyTok, "function body opened here")
	}
	p.Close(m, FN_DEF)
}

func (p *Parser) parseGenericParamList() {
	m := p.Open()
	p.Advance() // <
	for !p.at(lexer.GT) && !p.atEOF() {
		p.progressing()
		p.expect(lexer.IDENT, "PAR028", "expected type parameter name")
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.GT, "PAR028", "expected '>' to close type parameters")
	p.Close(m, GENERIC_PARAM_LIST)
}

func (p *Parser) parseWhereClause() {
	m := p.Open()
	for {
		p.progressing()
		bm := p.Open()
		p.expect(lexer.IDENT, "PAR029", "expected type parameter in where clause")
		p.expect(lexer.COLON, "PAR029", "expected ':' in trait bound")
		p.expect(lexer.IDENT, "PAR029", "expected trait name")
		p.Close(bm, TRAIT_BOUND)
		if !p.eat(lexer.COMMA) {
			break
		}
	}
	p.Close(m, WHERE_CLAUSE)
}

func (p *Parser) parseStructDef() {
	m := p.Open()
	structTok := p.current()
	p.Advance() // struct
	p.expect(lexer.IDENT, "PAR030", "expected struct name")
	if p.at(lexer.LT) {
		p.parseGenericParamList()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' to open struct body")
	p.eatNewlines()
	for p.at(lexer.IDENT) {
		fm := p.Open()
		p.Advance()
		p.expect(lexer.COLON, "PAR031", "expected ':' after field name")
		p.parseTypeAnnotation()
		p.Close(fm, STRUCT_FIELD)
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close struct body", structTok, "struct opened here")
	}
	p.Close(m, STRUCT_DEF)
}

// parseSumTypeOrAlias disambiguates `type Name = OtherType` (alias) from
// `type Name do case Variant(...) ... end` (sum type).
func (p *Parser) parseSumTypeOrAlias() {
	if p.nth(2).Kind == lexer.ASSIGN {
		p.parseTypeAlias()
		return
	}
	m := p.Open()
	typeTok := p.current()
	p.Advance() // type
	p.expect(lexer.IDENT, "PAR032", "expected type name")
	if p.at(lexer.LT) {
		p.parseGenericParamList()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' to open sum type body")
	p.eatNewlines()
	for p.at(lexer.CASE) {
		p.parseVariantDef()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close sum type body", typeTok, "type opened here")
	}
	p.Close(m, SUM_TYPE_DEF)
}

func (p *Parser) parseVariantDef() {
	m := p.Open()
	p.Advance() // case
	p.expect(lexer.IDENT, "PAR033", "expected variant name")
	if p.eat(lexer.LPAREN) {
		for !p.at(lexer.RPAREN) && !p.atEOF() {
			p.progressing()
			fm := p.Open()
			p.parseTypeAnnotation()
			p.Close(fm, VARIANT_FIELD)
			if !p.eat(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RPAREN, "PAR033", "expected ')' to close variant fields")
	}
	p.Close(m, VARIANT_DEF)
}

// parseInterfaceDef covers both `trait Name do ... end` and
// `interface Name do ... end`, which snow-parser treats as the same
// construct with two spellings.
func (p *Parser) parseInterfaceDef() {
	m := p.Open()
	traitTok := p.current()
	p.Advance() // trait | interface
	p.expect(lexer.IDENT, "PAR034", "expected trait name")
	if p.at(lexer.LT) {
		p.parseGenericParamList()
	}
	p.expect(lexer.DO, "PAR010", "expected 'do' to open trait body")
	p.eatNewlines()
	for p.at(lexer.FN) {
		p.parseInterfaceMethod()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close trait body", traitTok, "trait opened here")
	}
	p.Close(m, INTERFACE_DEF)
}

func (p *Parser) parseInterfaceMethod() {
	m := p.Open()
	p.Advance() // fn
	p.expect(lexer.IDENT, "PAR035", "expected method name")
	p.expect(lexer.LPAREN, "PAR012", "expected '(' to open parameter list")
	p.parseParamList(lexer.RPAREN)
	if p.eat(lexer.ARROW) {
		p.parseTypeAnnotation()
	}
	p.Close(m, INTERFACE_METHOD)
}

// parseImplDef covers `impl Trait for Type do ... end`.
func (p *Parser) parseImplDef() {
	m := p.Open()
	implTok := p.current()
	p.Advance() // impl
	p.expect(lexer.IDENT, "PAR036", "expected trait name")
	if p.at(lexer.IDENT) && p.current().Literal == "for" {
		p.Advance()
	} else {
		p.errorHere("PAR036", "expected 'for'")
	}
	p.expect(lexer.IDENT, "PAR036", "expected target type name")
	p.expect(lexer.DO, "PAR010", "expected 'do' to open impl body")
	p.eatNewlines()
	for p.at(lexer.FN) {
		p.parseFnDef()
		p.eatNewlines()
	}
	if !p.eat(lexer.END) {
		p.errorWithRelated("PAR010", "expected 'end' to close impl body", implTok, "impl opened here")
	}
	p.Close(m, IMPL_DEF)
}
