package pipeline

import (
	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/lexer"
	"github.com/snowlang/snow/internal/patterns"
)

// patternFromCST converts one parsed pattern node into the closed Pattern
// sum internal/patterns analyzes. STRUCT_PAT's field-name tokens are
// skipped: only the constructor's own field *value* sub-patterns (present
// when a field uses `name: pattern` form) feed into bound-name tracking,
// since shorthand field patterns (`Point { x, y }`) don't need full
// destructuring to answer the coverage and or-binding questions this
// package's scoped exhaustiveness check asks.
func patternFromCST(n *cst.Node) patterns.Pattern {
	switch n.Kind {
	case cst.WILDCARD_PAT:
		return patterns.NewWildcard(n.Span)
	case cst.IDENT_PAT:
		name := ""
		if id := n.Token0(lexer.IDENT); id != nil {
			name = id.Literal
		}
		return patterns.NewIdent(name, n.Span)
	case cst.LITERAL_PAT:
		return patterns.NewLiteral(n.Text(), n.Span)
	case cst.TUPLE_PAT:
		return patterns.NewTuple(subPatterns(n), n.Span)
	case cst.OR_PAT:
		return patterns.NewOr(subPatterns(n), n.Span)
	case cst.AS_PAT:
		inner := subPatterns(n)
		name := lastIdent(n)
		var innerPat patterns.Pattern
		if len(inner) > 0 {
			innerPat = inner[0]
		} else {
			innerPat = patterns.NewWildcard(n.Span)
		}
		return patterns.NewAs(name, innerPat, n.Span)
	case cst.CONSTRUCTOR_PAT, cst.STRUCT_PAT:
		variant := ""
		if id := n.Token0(lexer.IDENT); id != nil {
			variant = id.Literal
		}
		return patterns.NewConstructor(variant, subPatterns(n), n.Span)
	default:
		return patterns.NewWildcard(n.Span)
	}
}

// subPatterns collects every non-token child that is itself a pattern node,
// in source order: constructor/tuple/or-pattern children are exactly the
// non-leaf children, since their leading IDENT/DCOLON tokens are leaves.
func subPatterns(n *cst.Node) []patterns.Pattern {
	var out []patterns.Pattern
	for _, c := range n.Children {
		if c.IsToken() {
			continue
		}
		out = append(out, patternFromCST(c))
	}
	return out
}

// lastIdent returns the final IDENT token on a node — used for AS_PAT,
// where the bound name is the last identifier rather than the first.
func lastIdent(n *cst.Node) string {
	toks := n.TokensOf(lexer.IDENT)
	if len(toks) == 0 {
		return ""
	}
	return toks[len(toks)-1].Literal
}
