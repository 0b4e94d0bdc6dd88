// Package format renders a parsed Snow file back to canonical source text.
// It's a pretty printer over internal/cst's lossless tree rather than the
// teacher's internal/ast/print.go, which dumps an AST to JSON for golden
// tests, not source text — the teacher has no document-layout printer to
// adapt, so the sole thing this package borrows from it is its
// dispatch-by-node-kind-with-a-graceful-fallback shape (see printer.go's
// printExpr default case). The document algebra itself (Nil/Text/Line/
// Concat/Nest/Group, with Group collapsing to one line when it fits) is the
// standard Wadler-Lindig construction, built directly on the standard
// library since no example repo in the corpus carries a pretty-printing
// dependency (no `github.com/` doc/layout library appears in any example
// go.mod) to reuse instead.
package format

import "strings"

// Doc is a pretty-printing document: a tree of text and layout choices
// that Render resolves into a single string for a given line width.
type Doc interface {
	flatten() (string, bool) // single-line rendering; ok=false if it contains a hard line break
	render(sb *strings.Builder, indent, col, width int) int
}

type nilDoc struct{}

func (nilDoc) flatten() (string, bool)                         { return "", true }
func (nilDoc) render(sb *strings.Builder, indent, col, w int) int { return col }

// Nil is the empty document.
var Nil Doc = nilDoc{}

type textDoc string

func (t textDoc) flatten() (string, bool) { return string(t), true }
func (t textDoc) render(sb *strings.Builder, indent, col, w int) int {
	sb.WriteString(string(t))
	return col + len(t)
}

// Text is a literal, unbreakable run of characters.
func Text(s string) Doc { return textDoc(s) }

type lineDoc struct{}

func (lineDoc) flatten() (string, bool) { return " ", true }
func (lineDoc) render(sb *strings.Builder, indent, col, w int) int {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", indent))
	return indent * 2
}

// Line is a soft line break: a single space when its enclosing Group fits
// on one line, a newline plus the current indent otherwise.
var Line Doc = lineDoc{}

type hardLineDoc struct{}

func (hardLineDoc) flatten() (string, bool) { return "\n", false }
func (hardLineDoc) render(sb *strings.Builder, indent, col, w int) int {
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat("  ", indent))
	return indent * 2
}

// HardLine always breaks, even inside a Group that would otherwise fit —
// used between top-level declarations and block statements, which are
// never collapsed onto one line regardless of width.
var HardLine Doc = hardLineDoc{}

type concatDoc []Doc

func (c concatDoc) flatten() (string, bool) {
	var sb strings.Builder
	for _, d := range c {
		s, ok := d.flatten()
		if !ok {
			return "", false
		}
		sb.WriteString(s)
	}
	return sb.String(), true
}

func (c concatDoc) render(sb *strings.Builder, indent, col, w int) int {
	for _, d := range c {
		col = d.render(sb, indent, col, w)
	}
	return col
}

// Concat joins documents in sequence with no separator.
func Concat(docs ...Doc) Doc { return concatDoc(docs) }

type nestDoc struct {
	by    int
	inner Doc
}

func (n nestDoc) flatten() (string, bool) { return n.inner.flatten() }
func (n nestDoc) render(sb *strings.Builder, indent, col, w int) int {
	return n.inner.render(sb, indent+n.by, col, w)
}

// Nest increases the indent level used by any Line inside inner by by
// levels (one level is two spaces).
func Nest(by int, inner Doc) Doc { return nestDoc{by: by, inner: inner} }

type groupDoc struct{ inner Doc }

func (g groupDoc) flatten() (string, bool) { return g.inner.flatten() }
func (g groupDoc) render(sb *strings.Builder, indent, col, w int) int {
	if s, ok := g.inner.flatten(); ok && col+len(s) <= w {
		sb.WriteString(s)
		return col + len(s)
	}
	return g.inner.render(sb, indent, col, w)
}

// Group renders inner on one line if it fits within the remaining width
// and contains no hard break, falling back to its broken (multi-line)
// form otherwise.
func Group(inner Doc) Doc { return groupDoc{inner: inner} }

// Join places sep between consecutive docs.
func Join(sep Doc, docs []Doc) Doc {
	if len(docs) == 0 {
		return Nil
	}
	out := make(concatDoc, 0, len(docs)*2-1)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// defaultWidth is the line width Format renders against.
const defaultWidth = 80

// Render lays out a Doc at the given width, starting at column 0.
func Render(d Doc, width int) string {
	var sb strings.Builder
	d.render(&sb, 0, 0, width)
	return sb.String()
}
