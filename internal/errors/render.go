package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/snowlang/snow/internal/ast"
)

// Renderer prints Reports to a terminal, matching the teacher CLI's use of
// fatih/color for diagnostic output (bold file:line:col, red code, dim hint).
type Renderer struct {
	Out    io.Writer
	Color  bool
	Source map[string][]byte // file path -> full source, for caret snippets
}

// NewRenderer builds a Renderer. color controls ANSI output; LSP and
// non-TTY consumers should pass false.
func NewRenderer(out io.Writer, useColor bool) *Renderer {
	return &Renderer{Out: out, Color: useColor}
}

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.Color {
		return s
	}
	return c.Sprint(s)
}

// Render writes one diagnostic, including an optional related span (for
// example the `do` opener that a missing `end` refers back to).
func (r *Renderer) Render(rep *Report, related *ast.Span, relatedMsg string) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.Faint)

	loc := "<unknown>"
	if rep.Span != nil {
		loc = fmt.Sprintf("%s:%d:%d", rep.Span.Start.File, rep.Span.Start.Line, rep.Span.Start.Column)
	}

	fmt.Fprintf(r.Out, "%s %s: %s\n",
		r.paint(bold, loc),
		r.paint(red, rep.Code),
		rep.Message)

	if rep.Span != nil {
		r.renderSnippet(rep.Span, cyan)
	}

	if related != nil {
		relLoc := fmt.Sprintf("%s:%d:%d", related.Start.File, related.Start.Line, related.Start.Column)
		fmt.Fprintf(r.Out, "  %s %s: %s\n", r.paint(dim, "related"), r.paint(bold, relLoc), relatedMsg)
	}

	if rep.Fix != nil && rep.Fix.Suggestion != "" {
		fmt.Fprintf(r.Out, "  %s %s\n", r.paint(dim, "fix:"), rep.Fix.Suggestion)
	}
}

func (r *Renderer) renderSnippet(span *ast.Span, caret *color.Color) {
	src, ok := r.Source[span.Start.File]
	if !ok {
		return
	}
	lines := strings.Split(string(src), "\n")
	lineIdx := span.Start.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return
	}
	line := lines[lineIdx]
	fmt.Fprintf(r.Out, "  %4d | %s\n", span.Start.Line, line)

	col := span.Start.Column - 1
	if col < 0 {
		col = 0
	}
	width := span.End.Column - span.Start.Column
	if span.End.Line != span.Start.Line || width < 1 {
		width = 1
	}
	marker := strings.Repeat(" ", col) + strings.Repeat("^", width)
	fmt.Fprintf(r.Out, "       | %s\n", r.paint(caret, marker))
}

// RenderAll renders a batch of reports in order, separated by a blank line.
func (r *Renderer) RenderAll(reports []*Report) {
	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(r.Out)
		}
		r.Render(rep, nil, "")
	}
}
