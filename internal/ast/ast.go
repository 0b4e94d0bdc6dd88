// Package ast provides the typed source-location primitives shared by
// every compiler phase: Pos and Span. It has no dependency on internal/cst
// so that cst (and internal/errors, which reports positions before a tree
// necessarily exists) can both build on it without an import cycle; the
// typed accessor view over the concrete syntax tree lives in internal/cst
// itself, alongside the Node type it wraps.
package ast

import "fmt"

// Pos is a single source location, both as line/column (for diagnostics)
// and as a byte offset (for span arithmetic).
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) in a single file. Every byte
// of valid source text belongs to the span of exactly one token, and every
// CST node's span is the union of its children's spans.
type Span struct {
	Start Pos
	End   Pos
}

// Contains reports whether offset falls within the span's byte range.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// Cover returns the smallest span covering both s and other.
func (s Span) Cover(other Span) Span {
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start.String(), s.End.Line, s.End.Column)
}
