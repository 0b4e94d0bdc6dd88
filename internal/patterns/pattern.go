// Package patterns analyzes match/case/receive arms for exhaustiveness and
// redundancy using explicit enumeration over Snow's pattern shapes, rather
// than a general Maranget decision-tree matrix: the pattern language is
// small and closed (wildcard, ident, literal, tuple, constructor, or, as),
// so a handful of small recursive functions cover it without the added
// machinery a matrix compiler would need.
package patterns

import "github.com/snowlang/snow/internal/ast"

// Pattern is the closed sum of pattern shapes a match arm can bind against.
type Pattern interface {
	isPattern()
	Span() ast.Span
}

type base struct{ span ast.Span }

func (b base) Span() ast.Span { return b.span }

// Wildcard matches anything and binds nothing: `_`.
type Wildcard struct{ base }

func (Wildcard) isPattern() {}

func NewWildcard(span ast.Span) Wildcard { return Wildcard{base{span}} }

// Ident matches anything and binds it to Name.
type Ident struct {
	base
	Name string
}

func (Ident) isPattern() {}

func NewIdent(name string, span ast.Span) Ident { return Ident{base{span}, name} }

// Literal matches a single literal value, compared by its textual form
// (e.g. "42", "\"hi\"", "true").
type Literal struct {
	base
	Text string
}

func (Literal) isPattern() {}

func NewLiteral(text string, span ast.Span) Literal { return Literal{base{span}, text} }

// Tuple matches a fixed-arity product pattern.
type Tuple struct {
	base
	Elems []Pattern
}

func (Tuple) isPattern() {}

func NewTuple(elems []Pattern, span ast.Span) Tuple { return Tuple{base{span}, elems} }

// Constructor matches a sum-type variant by name, destructuring its fields.
type Constructor struct {
	base
	Variant string
	Args    []Pattern
}

func (Constructor) isPattern() {}

func NewConstructor(variant string, args []Pattern, span ast.Span) Constructor {
	return Constructor{base{span}, variant, args}
}

// Or matches if any alternative matches. Every alternative must bind the
// same set of names (OrPatternBindingMismatch otherwise).
type Or struct {
	base
	Alts []Pattern
}

func (Or) isPattern() {}

func NewOr(alts []Pattern, span ast.Span) Or { return Or{base{span}, alts} }

// As binds the whole matched value to Name in addition to matching Inner.
type As struct {
	base
	Name  string
	Inner Pattern
}

func (As) isPattern() {}

func NewAs(name string, inner Pattern, span ast.Span) As { return As{base{span}, name, inner} }

// isIrrefutable reports whether p matches every value of its type.
func isIrrefutable(p Pattern) bool {
	switch pt := p.(type) {
	case Wildcard, Ident:
		return true
	case As:
		return isIrrefutable(pt.Inner)
	case Tuple:
		for _, e := range pt.Elems {
			if !isIrrefutable(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// boundNames returns every identifier p binds, in a deterministic order.
func boundNames(p Pattern) []string {
	var out []string
	collectBoundNames(p, &out)
	return out
}

func collectBoundNames(p Pattern, out *[]string) {
	switch pt := p.(type) {
	case Ident:
		*out = append(*out, pt.Name)
	case As:
		*out = append(*out, pt.Name)
		collectBoundNames(pt.Inner, out)
	case Tuple:
		for _, e := range pt.Elems {
			collectBoundNames(e, out)
		}
	case Constructor:
		for _, a := range pt.Args {
			collectBoundNames(a, out)
		}
	case Or:
		if len(pt.Alts) > 0 {
			collectBoundNames(pt.Alts[0], out)
		}
	}
}
