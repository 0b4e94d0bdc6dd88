package pipeline

import (
	"time"

	"github.com/snowlang/snow/internal/backend"
	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/lexer"
	"github.com/snowlang/snow/internal/mir"
)

// Config controls which phases Run performs beyond the always-on
// parse/lower step, mirroring the teacher's boolean-flag Config shape.
type Config struct {
	CheckPatterns bool // run the scoped pattern-exhaustiveness pass
	ComputeLayout bool // run every sum type through the backend layout decision
	Target        backend.TargetInfo
}

// DefaultConfig runs every optional phase against the default 64-bit
// target, the shape a one-shot `snowc compile` invocation wants.
func DefaultConfig() Config {
	return Config{CheckPatterns: true, ComputeLayout: true, Target: backend.DefaultTarget}
}

// Source is one file's text plus the name diagnostics should report it
// under.
type Source struct {
	Code     string
	Filename string
}

// Artifacts holds the intermediate representations a successful run
// produces, kept around for callers that want to inspect or dump them
// (the REPL's expression evaluator, `snowc compile --dump-*`).
type Artifacts struct {
	File   cst.File
	Module *mir.MirModule
}

// Result is everything a pipeline run produces: the artifacts built so
// far, every diagnostic accumulated across phases (parsing continues
// past the first error, and later phases still run against whatever
// tree resulted, the same multi-error discipline internal/cst's parser
// already uses internally), and per-phase timings.
type Result struct {
	Artifacts    Artifacts
	Reports      []*errors.Report
	Layouts      []LayoutReport
	PhaseTimings map[string]int64
}

// HasErrors reports whether any accumulated report represents a failure
// rather than an informational diagnostic. Every report code pipeline
// currently emits is an error-level diagnostic, so this is equivalent to
// a non-empty Reports for now, but callers should use this rather than
// len(Reports) > 0 in case a future phase adds a warning-level code.
func (r Result) HasErrors() bool { return len(r.Reports) > 0 }

// Run parses src, builds its type registry, lowers its struct and sum-type
// declarations to MIR, and optionally runs pattern-exhaustiveness checking
// and backend layout computation. It never aborts early: every phase that
// can run against a partially-broken tree does, so a single syntax error
// doesn't hide every other diagnostic in the file.
func Run(cfg Config, src Source) Result {
	result := Result{PhaseTimings: make(map[string]int64)}

	start := time.Now()
	toks := lexer.New(src.Code, src.Filename).Tokenize()
	node, parseErrs := cst.Parse(toks)
	result.Reports = append(result.Reports, parseErrs...)
	file := cst.NewFile(node)
	result.Artifacts.File = file
	result.PhaseTimings["parse"] = time.Since(start).Milliseconds()

	start = time.Now()
	reg := BuildRegistry(file)
	mod := LowerModule(file, reg)
	result.Artifacts.Module = mod
	result.PhaseTimings["lower"] = time.Since(start).Milliseconds()

	if cfg.CheckPatterns {
		start = time.Now()
		result.Reports = append(result.Reports, CheckPatterns(file)...)
		result.PhaseTimings["pattern_check"] = time.Since(start).Milliseconds()
	}

	if cfg.ComputeLayout {
		start = time.Now()
		target := cfg.Target
		if target.PointerSize == 0 {
			target = backend.DefaultTarget
		}
		result.Layouts = ComputeLayouts(mod, target)
		result.PhaseTimings["layout"] = time.Since(start).Milliseconds()
	}

	return result
}
