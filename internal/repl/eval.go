package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/pipeline"
)

// declStart is the set of keywords that open a top-level declaration,
// used to decide whether a REPL line accumulates into the running
// program or is a one-shot expression.
var declStart = map[string]bool{
	"fn": true, "struct": true, "type": true, "actor": true,
	"service": true, "supervisor": true, "trait": true, "impl": true,
	"module": true, "import": true, "from": true, "pub": true,
}

func isDeclaration(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}
	return declStart[fields[0]]
}

// ProcessInput runs one REPL turn. Declarations persist into r.decls and
// are re-checked against everything accumulated so far; anything else is
// wrapped in a synthetic zero-argument function and run through the same
// pipeline one-shot, since the grammar's top level accepts declarations
// and `let` bindings but not bare expressions.
func (r *REPL) ProcessInput(input string, out io.Writer) {
	if isDeclaration(input) {
		r.runDeclaration(input, out)
		return
	}
	r.runExpression(input, out)
}

func (r *REPL) source() string {
	return strings.Join(r.decls, "\n\n")
}

func (r *REPL) runDeclaration(input string, out io.Writer) {
	candidate := append(append([]string{}, r.decls...), input)
	src := strings.Join(candidate, "\n\n")

	result := pipeline.Run(pipeline.DefaultConfig(), pipeline.Source{Code: src, Filename: "<repl>"})
	if result.HasErrors() {
		printReports(result.Reports, out)
		return
	}

	r.decls = candidate
	fmt.Fprintln(out, green("ok"))
}

func printReports(reports []*errors.Report, out io.Writer) {
	for _, rep := range reports {
		fmt.Fprintf(out, "%s %s: %s\n", red("error"), rep.Code, rep.Message)
	}
}

func (r *REPL) runExpression(input string, out io.Writer) {
	wrapped := r.source() + "\n\nfn __repl_eval() -> Unit do\n  " + input + "\nend\n"
	result := pipeline.Run(pipeline.DefaultConfig(), pipeline.Source{Code: wrapped, Filename: "<repl>"})
	if result.HasErrors() {
		printReports(result.Reports, out)
		return
	}

	expr := replEvalExpr(result.Artifacts.File)
	if expr == nil {
		fmt.Fprintln(out, yellow("no expression to evaluate"))
		return
	}

	val, ty, err := evalLiteral(expr)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	fmt.Fprintf(out, "%s %s %s\n", formatValue(val), dim("::"), cyan(ty.String()))
}

// showType evaluates input the same way :type's teacher counterpart did
// but skips printing the value, showing only the inferred type.
func (r *REPL) showType(input string, out io.Writer) {
	wrapped := r.source() + "\n\nfn __repl_eval() -> Unit do\n  " + input + "\nend\n"
	result := pipeline.Run(pipeline.DefaultConfig(), pipeline.Source{Code: wrapped, Filename: "<repl>"})
	if result.HasErrors() {
		printReports(result.Reports, out)
		return
	}

	expr := replEvalExpr(result.Artifacts.File)
	if expr == nil {
		fmt.Fprintln(out, yellow("no expression to type"))
		return
	}

	_, ty, err := evalLiteral(expr)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	fmt.Fprintf(out, "%s :: %s\n", input, cyan(ty.String()))
}

// replEvalExpr finds the synthetic __repl_eval function's body expression:
// its block's last non-token child, mirroring how a do/end block's value
// is the value of its final statement.
func replEvalExpr(f cst.File) *cst.Node {
	for _, fn := range f.FnDecls() {
		if fn.Name() != "__repl_eval" {
			continue
		}
		body := fn.Body()
		if body == nil {
			return nil
		}
		var last *cst.Node
		for _, c := range body.Children {
			if !c.IsToken() {
				last = c
			}
		}
		return last
	}
	return nil
}
