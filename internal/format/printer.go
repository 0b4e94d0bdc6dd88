package format

import (
	"strings"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/lexer"
)

// Format renders a parsed file to canonical source text: two-space
// indentation, a single space around binary operators, no original
// whitespace trivia preserved (it's recomputed), trailing newline.
func Format(f cst.File) string {
	var decls []Doc
	if m := f.ModuleDecl(); m != nil {
		decls = append(decls, Text("module "+strings.Join(m.Path(), ".")))
	}
	for _, im := range f.ImportDecls() {
		decls = append(decls, Text("import "+strings.Join(im.Path(), ".")))
	}
	for _, im := range f.FromImportDecls() {
		decls = append(decls, Text("from "+strings.Join(im.Path(), ".")+" import "+strings.Join(im.Names(), ", ")))
	}
	for _, d := range topLevelInOrder(f) {
		decls = append(decls, printTopLevel(d))
	}

	out := Render(Join(Concat(HardLine, HardLine), decls), defaultWidth)
	return strings.TrimRight(out, "\n") + "\n"
}

// topLevelInOrder walks the file's direct children rather than
// File's per-kind accessors, so declarations come out in source order
// instead of grouped by kind.
func topLevelInOrder(f cst.File) []*cst.Node {
	var out []*cst.Node
	for _, c := range f.Node.Children {
		if c.IsToken() {
			continue
		}
		switch c.Kind {
		case cst.FN_DEF, cst.STRUCT_DEF, cst.SUM_TYPE_DEF, cst.ACTOR_DEF:
			out = append(out, c)
		}
	}
	return out
}

func printTopLevel(n *cst.Node) Doc {
	switch n.Kind {
	case cst.FN_DEF:
		return printFn(cst.FuncDecl{Node: n})
	case cst.STRUCT_DEF:
		return printStruct(cst.StructDecl{Node: n})
	case cst.SUM_TYPE_DEF:
		return printSumType(cst.SumTypeDecl{Node: n})
	case cst.ACTOR_DEF:
		return printActor(cst.ActorDecl{Node: n})
	default:
		return Text(strings.TrimSpace(n.Text()))
	}
}

func printTypeAnnotation(n *cst.Node) Doc {
	if n == nil {
		return Nil
	}
	name := ""
	if id := n.Token0(lexer.IDENT); id != nil {
		name = id.Literal
	}
	args := n.ChildrenOf(cst.TYPE_ANNOTATION)
	if len(args) == 0 {
		return Text(name)
	}
	parts := make([]Doc, len(args))
	for i, a := range args {
		parts[i] = printTypeAnnotation(a)
	}
	return Concat(Text(name), Text("<"), Join(Text(", "), parts), Text(">"))
}

func printParams(params []cst.Param) Doc {
	parts := make([]Doc, len(params))
	for i, p := range params {
		d := Text(p.Name())
		if ty := p.TypeAnnotation(); ty != nil {
			d = Concat(d, Text(": "), printTypeAnnotation(ty))
		}
		parts[i] = d
	}
	return Join(Text(", "), parts)
}

func printFn(fn cst.FuncDecl) Doc {
	sig := Concat(Text("fn "), Text(fn.Name()), Text("("), printParams(fn.Params()), Text(")"))
	if ret := fn.Node.FirstChild(cst.TYPE_ANNOTATION); ret != nil {
		sig = Concat(sig, Text(" -> "), printTypeAnnotation(ret))
	}
	return Concat(sig, Text(" do"), Nest(1, Concat(HardLine, printBlock(fn.Body()))), HardLine, Text("end"))
}

func printStruct(d cst.StructDecl) Doc {
	fields := make([]Doc, 0, len(d.Fields()))
	for _, f := range d.Fields() {
		fields = append(fields, Concat(Text(f.Name()), Text(": "), printTypeAnnotation(f.TypeAnnotation())))
	}
	body := Join(HardLine, fields)
	return Concat(Text("struct "+d.Name()+" do"), Nest(1, Concat(HardLine, body)), HardLine, Text("end"))
}

func printSumType(d cst.SumTypeDecl) Doc {
	variants := make([]Doc, 0, len(d.Variants()))
	for _, v := range d.Variants() {
		fields := v.Fields()
		if len(fields) == 0 {
			variants = append(variants, Text("case "+v.Name()))
			continue
		}
		parts := make([]Doc, len(fields))
		for i, fld := range fields {
			parts[i] = printTypeAnnotation(cst.VariantFieldType(fld))
		}
		variants = append(variants, Concat(Text("case "+v.Name()+"("), Join(Text(", "), parts), Text(")")))
	}
	body := Join(HardLine, variants)
	return Concat(Text("type "+d.Name()+" do"), Nest(1, Concat(HardLine, body)), HardLine, Text("end"))
}

func printActor(d cst.ActorDecl) Doc {
	// Actor init args are parsed as an ARG_LIST of bare expressions
	// (usually NAME_REFs), not a PARAM_LIST — see cst/actor.go's
	// parseActorDef, which reuses parseArgList for the header.
	sig := Text("actor " + d.Name() + "(")
	if args := d.Node.FirstChild(cst.ARG_LIST); args != nil {
		sig = Concat(sig, Join(Text(", "), exprList(args)))
	}
	sig = Concat(sig, Text(")"))
	body := d.Node.FirstChild(cst.BLOCK)
	return Concat(sig, Text(" do"), Nest(1, Concat(HardLine, printBlock(body))), HardLine, Text("end"))
}

// printBlock prints every statement in a BLOCK node on its own line.
func printBlock(n *cst.Node) Doc {
	if n == nil {
		return Nil
	}
	var stmts []Doc
	for _, c := range n.Children {
		if c.IsToken() {
			continue
		}
		stmts = append(stmts, printStmt(c))
	}
	return Join(HardLine, stmts)
}

func printStmt(n *cst.Node) Doc {
	switch n.Kind {
	case cst.LET_BINDING:
		return printLetBinding(n)
	case cst.RETURN_EXPR:
		inner := firstNonToken(n)
		if inner == nil {
			return Text("return")
		}
		return Concat(Text("return "), printExpr(inner))
	default:
		return printExpr(n)
	}
}

func printLetBinding(n *cst.Node) Doc {
	pat := firstNonToken(n)
	value := lastNonToken(n)
	d := Concat(Text("let "), printExpr(pat))
	if ty := n.FirstChild(cst.TYPE_ANNOTATION); ty != nil {
		d = Concat(d, Text(": "), printTypeAnnotation(ty))
	}
	return Concat(d, Text(" = "), printExpr(value))
}

func firstNonToken(n *cst.Node) *cst.Node {
	for _, c := range n.Children {
		if !c.IsToken() {
			return c
		}
	}
	return nil
}

func lastNonToken(n *cst.Node) *cst.Node {
	var out *cst.Node
	for _, c := range n.Children {
		if !c.IsToken() {
			out = c
		}
	}
	return out
}

func nonTokenChildren(n *cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range n.Children {
		if !c.IsToken() {
			out = append(out, c)
		}
	}
	return out
}

// printExpr dispatches on node kind, the same shape the teacher's
// print.go switches on AST node type; node kinds it doesn't yet model
// fall back to their original text with internal whitespace collapsed,
// rather than panicking on unfamiliar syntax.
func printExpr(n *cst.Node) Doc {
	if n == nil {
		return Nil
	}
	if n.IsToken() {
		return Text(n.Token.Literal)
	}
	switch n.Kind {
	case cst.LITERAL:
		return printLiteral(n)
	case cst.NAME_REF, cst.PATH:
		return Text(strings.Join(pathOrName(n), "::"))
	case cst.SELF_EXPR:
		return Text("self")
	case cst.UNARY_EXPR:
		return printUnary(n)
	case cst.BINARY_EXPR:
		return printBinary(n)
	case cst.PIPE_EXPR:
		return printPipe(n)
	case cst.CALL_EXPR:
		return printCall(n)
	case cst.FIELD_ACCESS:
		return printFieldAccess(n)
	case cst.INDEX_EXPR:
		return printIndex(n)
	case cst.TUPLE_EXPR:
		return printTuple(n)
	case cst.IF_EXPR:
		return printIf(cst.IfExpr{Node: n})
	case cst.CASE_EXPR:
		return printCase(n)
	case cst.SPAWN_EXPR:
		return Concat(Text("spawn "), printExpr(firstNonToken(n)))
	case cst.SEND_EXPR:
		return printSend(n)
	case cst.RECEIVE_EXPR:
		return printReceive(cst.ReceiveExpr{Node: n})
	case cst.LINK_EXPR:
		return Concat(Text(linkKeyword(n)+" "), printExpr(firstNonToken(n)))
	case cst.LET_BINDING:
		return printLetBinding(n)
	case cst.STRING_EXPR:
		return printStringExpr(n)
	case cst.STRUCT_LITERAL:
		return printStructLiteral(n)
	default:
		return Text(collapseWhitespace(n.Text()))
	}
}

func pathOrName(n *cst.Node) []string {
	var out []string
	for _, tok := range n.TokensOf(lexer.IDENT) {
		out = append(out, tok.Literal)
	}
	if len(out) == 0 {
		return []string{strings.TrimSpace(n.Text())}
	}
	return out
}

func printLiteral(n *cst.Node) Doc {
	if tok := n.Token0(lexer.STRING_CONTENT); tok != nil {
		return Text("\"" + tok.Literal + "\"")
	}
	return Text(strings.TrimSpace(n.Text()))
}

func printStringExpr(n *cst.Node) Doc {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range n.Children {
		if c.IsToken() {
			if c.Token.Kind == lexer.STRING_CONTENT {
				sb.WriteString(c.Token.Literal)
			}
			continue
		}
		if c.Kind == cst.INTERPOLATION {
			sb.WriteString("${")
			sb.WriteString(Render(printExpr(firstNonToken(c)), defaultWidth))
			sb.WriteByte('}')
		}
	}
	sb.WriteByte('"')
	return Text(sb.String())
}

// printStructLiteral prints `Name { field: expr, ... }`. The name is the
// struct literal's leading NAME_REF, wrapped in via OpenBefore by
// parseStructLiteral; everything else is a STRUCT_LITERAL_FIELD.
func printStructLiteral(n *cst.Node) Doc {
	var name Doc
	var fields []Doc
	for _, c := range nonTokenChildren(n) {
		if c.Kind == cst.STRUCT_LITERAL_FIELD {
			fieldName := ""
			if id := c.Token0(lexer.IDENT); id != nil {
				fieldName = id.Literal
			}
			fields = append(fields, Concat(Text(fieldName+": "), printExpr(lastNonToken(c))))
			continue
		}
		name = printExpr(c)
	}
	if name == nil {
		name = Nil
	}
	return Concat(name, Text(" { "), Join(Text(", "), fields), Text(" }"))
}

func printUnary(n *cst.Node) Doc {
	op := "-"
	if n.Token0(lexer.NOT) != nil {
		op = "not "
	}
	return Concat(Text(op), printExpr(firstNonToken(n)))
}

func printBinary(n *cst.Node) Doc {
	children := nonTokenChildren(n)
	if len(children) != 2 {
		return Text(collapseWhitespace(n.Text()))
	}
	return Group(Concat(printExpr(children[0]), Text(" "+binaryOpText(n)+" "), printExpr(children[1])))
}

func printPipe(n *cst.Node) Doc {
	children := nonTokenChildren(n)
	if len(children) != 2 {
		return Text(collapseWhitespace(n.Text()))
	}
	return Group(Concat(printExpr(children[0]), Text(" |> "), printExpr(children[1])))
}

func binaryOpText(n *cst.Node) string {
	for _, c := range n.Children {
		if c.IsToken() {
			return c.Token.Literal
		}
	}
	return ""
}

func printCall(n *cst.Node) Doc {
	callee := firstNonToken(n)
	args := n.FirstChild(cst.ARG_LIST)
	argDocs := exprList(args)
	return Concat(printExpr(callee), Text("("), Join(Text(", "), argDocs), Text(")"))
}

func exprList(n *cst.Node) []Doc {
	if n == nil {
		return nil
	}
	var out []Doc
	for _, c := range nonTokenChildren(n) {
		out = append(out, printExpr(c))
	}
	return out
}

func printFieldAccess(n *cst.Node) Doc {
	receiver := firstNonToken(n)
	field := ""
	if id := n.Token0(lexer.IDENT); id != nil {
		field = id.Literal
	}
	return Concat(printExpr(receiver), Text("."+field))
}

func printIndex(n *cst.Node) Doc {
	children := nonTokenChildren(n)
	if len(children) != 2 {
		return Text(collapseWhitespace(n.Text()))
	}
	return Concat(printExpr(children[0]), Text("["), printExpr(children[1]), Text("]"))
}

func printTuple(n *cst.Node) Doc {
	children := nonTokenChildren(n)
	if len(children) == 1 {
		return Concat(Text("("), printExpr(children[0]), Text(")"))
	}
	parts := make([]Doc, len(children))
	for i, c := range children {
		parts[i] = printExpr(c)
	}
	return Concat(Text("("), Join(Text(", "), parts), Text(")"))
}

func printIf(e cst.IfExpr) Doc {
	cond := firstNonToken(e.Node)
	doc := Concat(Text("if "), printExpr(cond), Text(" then"), Nest(1, Concat(HardLine, printBlock(e.Then()))))
	if elseBranch := e.Else(); elseBranch != nil {
		doc = Concat(doc, HardLine, Text("else"), Nest(1, Concat(HardLine, printBlock(elseBranch.FirstChild(cst.BLOCK)))))
	}
	return Concat(doc, HardLine, Text("end"))
}

func printCase(n *cst.Node) Doc {
	var head Doc
	if n.Token0(lexer.COND) != nil {
		head = Text("cond")
	} else {
		head = Concat(Text("match "), printExpr(firstNonToken(n)))
	}
	arms := cst.MatchExpr{Node: n}.Arms()
	var armDocs []Doc
	for _, a := range arms {
		armDocs = append(armDocs, printArm(a.Pattern(), a.Guard(), a.Body()))
	}
	return Concat(head, Text(" do"), Nest(1, Concat(HardLine, Join(HardLine, armDocs))), HardLine, Text("end"))
}

func printArm(pattern, guard, body *cst.Node) Doc {
	d := Concat(Text("case "), printPattern(pattern))
	if guard != nil {
		d = Concat(d, Text(" when "), printExpr(firstNonToken(guard)))
	}
	d = Concat(d, Text(" =>"))
	return Concat(d, Nest(1, Concat(HardLine, printBlock(body))))
}

func printPattern(n *cst.Node) Doc {
	if n == nil {
		return Text("_")
	}
	switch n.Kind {
	case cst.WILDCARD_PAT:
		return Text("_")
	case cst.IDENT_PAT:
		if id := n.Token0(lexer.IDENT); id != nil {
			return Text(id.Literal)
		}
	case cst.LITERAL_PAT:
		return Text(strings.TrimSpace(n.Text()))
	case cst.TUPLE_PAT:
		parts := make([]Doc, 0)
		for _, c := range nonTokenChildren(n) {
			parts = append(parts, printPattern(c))
		}
		return Concat(Text("("), Join(Text(", "), parts), Text(")"))
	case cst.CONSTRUCTOR_PAT:
		name := ""
		if id := n.Token0(lexer.IDENT); id != nil {
			name = id.Literal
		}
		args := nonTokenChildren(n)
		if len(args) == 0 {
			return Text(name)
		}
		parts := make([]Doc, len(args))
		for i, a := range args {
			parts[i] = printPattern(a)
		}
		return Concat(Text(name+"("), Join(Text(", "), parts), Text(")"))
	case cst.OR_PAT:
		parts := make([]Doc, 0)
		for _, c := range nonTokenChildren(n) {
			parts = append(parts, printPattern(c))
		}
		return Join(Text(" | "), parts)
	case cst.AS_PAT:
		inner := firstNonToken(n)
		name := ""
		toks := n.TokensOf(lexer.IDENT)
		if len(toks) > 0 {
			name = toks[len(toks)-1].Literal
		}
		return Concat(printPattern(inner), Text(" as "+name))
	}
	return Text(strings.TrimSpace(n.Text()))
}

func printSend(n *cst.Node) Doc {
	children := nonTokenChildren(n)
	if len(children) != 2 {
		return Text(collapseWhitespace(n.Text()))
	}
	return Concat(Text("send "), printExpr(children[0]), Text(", "), printExpr(children[1]))
}

func printReceive(r cst.ReceiveExpr) Doc {
	var armDocs []Doc
	for _, a := range r.Arms() {
		armDocs = append(armDocs, printArm(a.Pattern(), a.Guard(), a.Body()))
	}
	body := Concat(Text("receive do"), Nest(1, Concat(HardLine, Join(HardLine, armDocs))))
	if after := r.After(); after != nil {
		timeout := firstNonToken(after)
		afterBody := after.FirstChild(cst.BLOCK)
		body = Concat(body, HardLine, Text("after "), printExpr(timeout), Text(" do"),
			Nest(1, Concat(HardLine, printBlock(afterBody))))
	}
	return Concat(body, HardLine, Text("end"))
}

func linkKeyword(n *cst.Node) string {
	if n.Token0(lexer.MONITOR) != nil {
		return "monitor"
	}
	return "link"
}

// collapseWhitespace is the fallback renderer for node kinds printExpr
// doesn't model explicitly: it keeps the original text but normalizes
// runs of whitespace to single spaces, so an unmodeled construct still
// comes out on one line instead of carrying its source indentation.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
