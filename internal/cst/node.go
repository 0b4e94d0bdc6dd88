package cst

import (
	"strings"

	"github.com/snowlang/snow/internal/ast"
	"github.com/snowlang/snow/internal/lexer"
)

// Node is either a leaf (a single token, including trivia) or a tree (a
// composite NodeKind with ordered children). Trivia tokens are attached as
// ordinary children of the nearest enclosing node rather than dropped, so
// internal/format can re-emit source byte-for-byte around reformatted
// regions.
type Node struct {
	Kind     NodeKind // zero value (TOMBSTONE) on leaves; use Token instead
	Token    *lexer.Token
	Children []*Node
	Span     ast.Span
}

func (n *Node) IsToken() bool { return n.Token != nil }

// Text reconstructs the exact source text spanned by this node, including
// any trivia its children carry.
func (n *Node) Text() string {
	if n.IsToken() {
		return n.Token.Literal
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// FirstChild returns the first non-trivia child of the given kind, or nil.
func (n *Node) FirstChild(kind NodeKind) *Node {
	for _, c := range n.Children {
		if !c.IsToken() && c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every direct non-trivia child of the given kind.
func (n *Node) ChildrenOf(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsToken() && c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Token0 returns the first leaf child carrying TokenKind k, if any.
func (n *Node) Token0(k lexer.TokenKind) *lexer.Token {
	for _, c := range n.Children {
		if c.IsToken() && c.Token.Kind == k {
			return c.Token
		}
	}
	return nil
}

// TokensOf returns every leaf child carrying TokenKind k, in source order.
func (n *Node) TokensOf(k lexer.TokenKind) []*lexer.Token {
	var out []*lexer.Token
	for _, c := range n.Children {
		if c.IsToken() && c.Token.Kind == k {
			out = append(out, c.Token)
		}
	}
	return out
}

func posOf(tok lexer.Token, offset int, line, col int) ast.Pos {
	return ast.Pos{Line: line, Column: col, File: tok.File, Offset: offset}
}

func spanOfToken(tok lexer.Token) ast.Span {
	return ast.Span{
		Start: ast.Pos{Line: tok.Line, Column: tok.Column, File: tok.File, Offset: tok.Start},
		End:   endPosOf(tok),
	}
}

// endPosOf approximates the end line/column for a token; multi-line tokens
// (block comments, triple-quoted quasiquotes) only need a correct byte
// offset for Span.Contains to work, so we just count newlines in Literal.
func endPosOf(tok lexer.Token) ast.Pos {
	line, col := tok.Line, tok.Column+len(tok.Literal)
	if n := strings.Count(tok.Literal, "\n"); n > 0 {
		line += n
		last := strings.LastIndexByte(tok.Literal, '\n')
		col = len(tok.Literal) - last
	}
	return ast.Pos{Line: line, Column: col, File: tok.File, Offset: tok.End}
}
