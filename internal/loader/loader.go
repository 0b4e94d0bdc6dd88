// Package loader discovers the .snow source files under a project root,
// maps each to its module name, builds the import graph between them, and
// produces a deterministic topological compilation order. Grounded on the
// teacher's internal/module.Loader for the file-discovery/parse/cache shape
// and on internal/runtime.ModuleRuntime.LoadAndEvaluate's visiting/
// pathStack DFS for cycle detection — both adapted from a path-string
// module system to Snow's PascalCase dotted module names.
package loader

import (
	"os"
	"sort"
	"strings"

	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/lexer"
)

// Module is one discovered and parsed .snow file.
type Module struct {
	Name    string // PascalCase dotted module name, e.g. "Math.LinearAlgebra"
	Path    string // project-relative file path
	File    cst.File
	Imports []string // module names this module imports, in declaration order
}

// Graph is the result of loading a project: every discovered module plus a
// deterministic compilation order with dependencies before dependents.
type Graph struct {
	Modules map[string]*Module
	Order   []string
}

// Load discovers every .snow file under root, parses it, resolves its
// imports against the set of discovered module names, and topologically
// sorts the result. Parse errors accumulate per-file and loading continues;
// graph-level errors (self-import, cycles) are returned alongside whatever
// graph could still be built.
func Load(root string) (*Graph, []*errors.Report) {
	paths, err := Discover(root)
	if err != nil {
		return nil, []*errors.Report{errors.New(errors.LDR001, "failed to walk project root: "+err.Error(), nil)}
	}

	var reports []*errors.Report
	modules := make(map[string]*Module, len(paths))

	for _, rel := range paths {
		name := ModuleNameForPath(rel)
		content, readErr := os.ReadFile(joinRoot(root, rel))
		if readErr != nil {
			reports = append(reports, errors.New(errors.LDR001, "failed to read module "+rel+": "+readErr.Error(), nil))
			continue
		}

		toks := lexer.New(string(content), rel).Tokenize()
		node, parseErrs := cst.Parse(toks)
		reports = append(reports, parseErrs...)

		file := cst.NewFile(node)
		imports := extractImports(file)

		modules[name] = &Module{Name: name, Path: rel, File: file, Imports: imports}
	}

	for _, mod := range modules {
		for _, imp := range mod.Imports {
			if imp == mod.Name {
				span := mod.File.Span()
				reports = append(reports, errors.New(errors.LDR005, "module '"+mod.Name+"' imports itself", &span))
			}
		}
	}

	order, cycleReport := topoSort(modules)
	if cycleReport != nil {
		reports = append(reports, cycleReport)
	}

	return &Graph{Modules: modules, Order: order}, reports
}

// extractImports reads both `import X.Y` and `from X.Y import a, b` forms
// off a file's top level into the dotted module names they name. An entry
// that doesn't resolve to any discovered module stays in the list — it's
// assumed to be a standard-library import or a typo, either way diagnosed
// lazily when a reference to it is actually used — but topoSort's graph
// walk treats it as a dead end rather than an error.
func extractImports(f cst.File) []string {
	var names []string
	for _, imp := range f.ImportDecls() {
		names = append(names, strings.Join(imp.Path(), "."))
	}
	for _, imp := range f.FromImportDecls() {
		names = append(names, strings.Join(imp.Path(), "."))
	}
	return names
}

func joinRoot(root, rel string) string {
	if root == "" || root == "." {
		return rel
	}
	return root + "/" + rel
}

// topoSort orders modules with dependencies before dependents using the
// visiting/pathStack DFS the teacher's ModuleRuntime.LoadAndEvaluate uses
// for cycle detection, adapted to return a full order for every module
// instead of evaluating each as it's discovered. Visits modules in sorted
// name order so the result is deterministic across runs.
func topoSort(modules map[string]*Module) ([]string, *errors.Report) {
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	visiting := make(map[string]bool)
	done := make(map[string]bool)
	var pathStack []string
	var order []string
	var cycleErr *errors.Report

	var visit func(name string)
	visit = func(name string) {
		if cycleErr != nil || done[name] {
			return
		}
		if visiting[name] {
			cycleErr = circularImportError(pathStack, name)
			return
		}
		mod, ok := modules[name]
		if !ok {
			return // unresolved import: kept in Imports, a dead end here
		}

		visiting[name] = true
		pathStack = append(pathStack, name)

		for _, dep := range mod.Imports {
			if dep == name {
				continue // self-import already reported separately
			}
			visit(dep)
			if cycleErr != nil {
				break
			}
		}

		pathStack = pathStack[:len(pathStack)-1]
		visiting[name] = false

		if cycleErr == nil {
			done[name] = true
			order = append(order, name)
		}
	}

	for _, name := range names {
		visit(name)
		if cycleErr != nil {
			break
		}
	}

	return order, cycleErr
}

// circularImportError formats the cycle as "A → B → C → A", matching
// LoadAndEvaluate's cycle-path formatting.
func circularImportError(pathStack []string, repeated string) *errors.Report {
	start := 0
	for i, p := range pathStack {
		if p == repeated {
			start = i
			break
		}
	}
	cycle := append(append([]string{}, pathStack[start:]...), repeated)
	return errors.New(errors.LDR002, "circular module dependency: "+strings.Join(cycle, " → "), nil).
		WithData("cycle", cycle)
}
