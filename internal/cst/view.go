package cst

import (
	"github.com/snowlang/snow/internal/ast"
	"github.com/snowlang/snow/internal/lexer"
)

// The types below are the thin typed view over the lossless tree: each
// wraps a *Node of a known Kind and reads out typed children by name
// instead of making every caller walk Children directly. Snow does not
// build a second, owning parse tree — these are read-only accessors, not
// an alternate representation, so reformatting and error spans always
// agree with what the tree actually contains.

// File is the typed view over a parsed module's SOURCE_FILE node.
type File struct{ Node *Node }

func NewFile(n *Node) File { return File{Node: n} }

func (f File) Span() ast.Span { return f.Node.Span }

// FnDecls returns every top-level function declaration in source order.
func (f File) FnDecls() []FuncDecl {
	var out []FuncDecl
	for _, c := range f.Node.ChildrenOf(FN_DEF) {
		out = append(out, FuncDecl{Node: c})
	}
	return out
}

func (f File) ActorDecls() []ActorDecl {
	var out []ActorDecl
	for _, c := range f.Node.ChildrenOf(ACTOR_DEF) {
		out = append(out, ActorDecl{Node: c})
	}
	return out
}

func (f File) StructDecls() []StructDecl {
	var out []StructDecl
	for _, c := range f.Node.ChildrenOf(STRUCT_DEF) {
		out = append(out, StructDecl{Node: c})
	}
	return out
}

func (f File) SumTypeDecls() []SumTypeDecl {
	var out []SumTypeDecl
	for _, c := range f.Node.ChildrenOf(SUM_TYPE_DEF) {
		out = append(out, SumTypeDecl{Node: c})
	}
	return out
}

// ModuleDecl returns the file's `module X.Y` declaration, or nil if the
// file has none.
func (f File) ModuleDecl() *ModuleDecl {
	n := f.Node.FirstChild(MODULE_DEF)
	if n == nil {
		return nil
	}
	return &ModuleDecl{Node: n}
}

// ImportDecls returns every plain `import X.Y` declaration.
func (f File) ImportDecls() []ImportDecl {
	var out []ImportDecl
	for _, c := range f.Node.ChildrenOf(IMPORT_DECL) {
		out = append(out, ImportDecl{Node: c})
	}
	return out
}

// FromImportDecls returns every `from X.Y import a, b` declaration.
func (f File) FromImportDecls() []FromImportDecl {
	var out []FromImportDecl
	for _, c := range f.Node.ChildrenOf(FROM_IMPORT_DECL) {
		out = append(out, FromImportDecl{Node: c})
	}
	return out
}

// ModuleDecl wraps a MODULE_DEF node.
type ModuleDecl struct{ Node *Node }

func (d ModuleDecl) Path() []string { return pathSegments(d.Node.FirstChild(PATH)) }
func (d ModuleDecl) Span() ast.Span { return d.Node.Span }

// ImportDecl wraps an IMPORT_DECL node.
type ImportDecl struct{ Node *Node }

func (d ImportDecl) Path() []string { return pathSegments(d.Node.FirstChild(PATH)) }
func (d ImportDecl) Span() ast.Span { return d.Node.Span }

// FromImportDecl wraps a FROM_IMPORT_DECL node.
type FromImportDecl struct{ Node *Node }

func (d FromImportDecl) Path() []string { return pathSegments(d.Node.FirstChild(PATH)) }

func (d FromImportDecl) Names() []string {
	list := d.Node.FirstChild(IMPORT_LIST)
	if list == nil {
		return nil
	}
	var out []string
	for _, tok := range list.TokensOf(lexer.IDENT) {
		out = append(out, tok.Literal)
	}
	return out
}

func (d FromImportDecl) Span() ast.Span { return d.Node.Span }

func pathSegments(n *Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, tok := range n.TokensOf(lexer.IDENT) {
		out = append(out, tok.Literal)
	}
	return out
}

// FuncDecl wraps an FN_DEF node.
type FuncDecl struct{ Node *Node }

func (d FuncDecl) Name() string {
	if id := d.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (d FuncDecl) Params() []Param {
	pl := d.Node.FirstChild(PARAM_LIST)
	if pl == nil {
		return nil
	}
	var out []Param
	for _, p := range pl.ChildrenOf(PARAM) {
		out = append(out, Param{Node: p})
	}
	return out
}

func (d FuncDecl) Body() *Node { return d.Node.FirstChild(BLOCK) }
func (d FuncDecl) Span() ast.Span { return d.Node.Span }

// Param wraps a PARAM node.
type Param struct{ Node *Node }

func (p Param) Name() string {
	if id := p.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (p Param) TypeAnnotation() *Node { return p.Node.FirstChild(TYPE_ANNOTATION) }

// LetBinding wraps a LET_BINDING node.
type LetBinding struct{ Node *Node }

func (l LetBinding) Span() ast.Span { return l.Node.Span }

// IfExpr wraps an IF_EXPR node.
type IfExpr struct{ Node *Node }

func (e IfExpr) Then() *Node     { return e.Node.FirstChild(BLOCK) }
func (e IfExpr) Else() *Node     { return e.Node.FirstChild(ELSE_BRANCH) }
func (e IfExpr) Span() ast.Span  { return e.Node.Span }

// MatchExpr wraps a CASE_EXPR node produced by `match`/`cond`.
type MatchExpr struct{ Node *Node }

func (m MatchExpr) Arms() []MatchArm {
	var out []MatchArm
	for _, a := range m.Node.ChildrenOf(MATCH_ARM) {
		out = append(out, MatchArm{Node: a})
	}
	return out
}

type MatchArm struct{ Node *Node }

func (a MatchArm) Pattern() *Node { return firstPatternChild(a.Node) }
func (a MatchArm) Guard() *Node   { return a.Node.FirstChild(GUARD_CLAUSE) }
func (a MatchArm) Body() *Node    { return a.Node.FirstChild(BLOCK) }

// ActorDecl wraps an ACTOR_DEF node.
type ActorDecl struct{ Node *Node }

func (d ActorDecl) Name() string {
	if id := d.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (d ActorDecl) Receives() []ReceiveExpr {
	var out []ReceiveExpr
	walkKind(d.Node, RECEIVE_EXPR, func(n *Node) {
		out = append(out, ReceiveExpr{Node: n})
	})
	return out
}

// ReceiveExpr wraps a RECEIVE_EXPR node.
type ReceiveExpr struct{ Node *Node }

func (r ReceiveExpr) Arms() []ReceiveArm {
	var out []ReceiveArm
	for _, a := range r.Node.ChildrenOf(RECEIVE_ARM) {
		out = append(out, ReceiveArm{Node: a})
	}
	return out
}

func (r ReceiveExpr) After() *Node { return r.Node.FirstChild(AFTER_CLAUSE) }

type ReceiveArm struct{ Node *Node }

func (a ReceiveArm) Pattern() *Node { return firstPatternChild(a.Node) }
func (a ReceiveArm) Guard() *Node   { return a.Node.FirstChild(GUARD_CLAUSE) }
func (a ReceiveArm) Body() *Node    { return a.Node.FirstChild(BLOCK) }

// patternKinds is the closed set of node kinds parsePattern produces,
// used to pick an arm's pattern out from its guard/body siblings without
// each arm kind needing its own dedicated wrapper grammar.
var patternKinds = map[NodeKind]bool{
	WILDCARD_PAT:    true,
	IDENT_PAT:       true,
	LITERAL_PAT:     true,
	TUPLE_PAT:       true,
	STRUCT_PAT:      true,
	CONSTRUCTOR_PAT: true,
	OR_PAT:          true,
	AS_PAT:          true,
	ERROR_NODE:      true,
}

func firstPatternChild(n *Node) *Node {
	for _, c := range n.Children {
		if !c.IsToken() && patternKinds[c.Kind] {
			return c
		}
	}
	return nil
}

// SpawnExpr wraps a SPAWN_EXPR node.
type SpawnExpr struct{ Node *Node }

func (s SpawnExpr) Span() ast.Span { return s.Node.Span }

// StructDecl wraps a STRUCT_DEF node.
type StructDecl struct{ Node *Node }

func (d StructDecl) Name() string {
	if id := d.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (d StructDecl) Fields() []StructField {
	var out []StructField
	for _, f := range d.Node.ChildrenOf(STRUCT_FIELD) {
		out = append(out, StructField{Node: f})
	}
	return out
}

type StructField struct{ Node *Node }

func (f StructField) Name() string {
	if id := f.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (f StructField) TypeAnnotation() *Node { return f.Node.FirstChild(TYPE_ANNOTATION) }

// SumTypeDecl wraps a SUM_TYPE_DEF node.
type SumTypeDecl struct{ Node *Node }

func (d SumTypeDecl) Name() string {
	if id := d.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (d SumTypeDecl) Variants() []VariantDecl {
	var out []VariantDecl
	for _, v := range d.Node.ChildrenOf(VARIANT_DEF) {
		out = append(out, VariantDecl{Node: v})
	}
	return out
}

type VariantDecl struct{ Node *Node }

func (v VariantDecl) Name() string {
	if id := v.Node.Token0(lexer.IDENT); id != nil {
		return id.Literal
	}
	return ""
}

func (v VariantDecl) Fields() []*Node { return v.Node.ChildrenOf(VARIANT_FIELD) }

// VariantFieldType reads the declared type out of a VARIANT_FIELD node
// (which wraps a single TYPE_ANNOTATION child directly, unlike STRUCT_FIELD
// which also carries the field's name).
func VariantFieldType(field *Node) *Node { return field.FirstChild(TYPE_ANNOTATION) }

// walkKind recursively visits every descendant of kind, used for collecting
// nested constructs like receive blocks inside an actor body without
// requiring every intermediate accessor to expose its own traversal.
func walkKind(n *Node, kind NodeKind, fn func(*Node)) {
	if n.IsToken() {
		return
	}
	if n.Kind == kind {
		fn(n)
	}
	for _, c := range n.Children {
		walkKind(c, kind, fn)
	}
}
