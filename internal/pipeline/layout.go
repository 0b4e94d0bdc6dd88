package pipeline

import (
	"github.com/snowlang/snow/internal/backend"
	"github.com/snowlang/snow/internal/mir"
)

// LayoutReport pairs a lowered sum type with the in-memory layout the
// backend contract decided for it, so callers (`snowc compile
// --dump-layout`) can inspect representation choices without
// recomputing them.
type LayoutReport struct {
	TypeName string
	Layout   backend.Layout
}

// ComputeLayouts runs every sum type a module defines through
// backend.SumTypeLayout, in name order for determinism.
func ComputeLayouts(mod *mir.MirModule, target backend.TargetInfo) []LayoutReport {
	names := sortedKeys(mod.SumTypes)
	out := make([]LayoutReport, 0, len(names))
	for _, name := range names {
		out = append(out, LayoutReport{
			TypeName: name,
			Layout:   backend.SumTypeLayout(mod.SumTypes[name], target),
		})
	}
	return out
}
