// Package pipeline orchestrates the compilation phases — parse, registry
// construction, MIR lowering, pattern-exhaustiveness checking, and layout
// computation — into the single Run entry point the REPL and the CLI both
// call, grounded on the teacher's pipeline.Run phase-timed orchestration
// shape but restructured around Snow's report-accumulating error model
// instead of abort-on-first-error.
package pipeline

import (
	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/lexer"
	"github.com/snowlang/snow/internal/types"
)

// tyFromAnnotation converts a TYPE_ANNOTATION CST node into a types.Ty: a
// leading IDENT base name, optionally followed by <...>-nested
// TYPE_ANNOTATION children naming generic arguments. A nil node (a missing
// annotation, e.g. an unannotated parameter) degrades to Unit the same way
// mir.ResolveType degrades an unbound type variable, rather than panicking.
func tyFromAnnotation(n *cst.Node) types.Ty {
	if n == nil {
		return types.Unit()
	}
	name := ""
	if id := n.Token0(lexer.IDENT); id != nil {
		name = id.Literal
	}
	args := n.ChildrenOf(cst.TYPE_ANNOTATION)
	if len(args) == 0 {
		return types.NewTyCon(name)
	}
	argTys := make([]types.Ty, len(args))
	for i, a := range args {
		argTys[i] = tyFromAnnotation(a)
	}
	return types.TyApp{Con: types.NewTyCon(name), Args: argTys}
}
