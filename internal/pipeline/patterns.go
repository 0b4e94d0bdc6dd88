package pipeline

import (
	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/errors"
	"github.com/snowlang/snow/internal/patterns"
)

// sumTypeInfo is the subset of a locally-declared sum type's shape the
// exhaustiveness check needs: its variant names and arities.
type sumTypeInfo struct {
	name     string
	variants []patterns.VariantInfo
	byName   map[string]bool
}

func collectSumTypes(f cst.File) []sumTypeInfo {
	var out []sumTypeInfo
	for _, s := range f.SumTypeDecls() {
		info := sumTypeInfo{name: s.Name(), byName: map[string]bool{}}
		for _, v := range s.Variants() {
			info.variants = append(info.variants, patterns.VariantInfo{
				Name:  v.Name(),
				Arity: len(v.Fields()),
			})
			info.byName[v.Name()] = true
		}
		out = append(out, info)
	}
	return out
}

// constructorNamesOf returns every top-level constructor/variant name a
// pattern (or one of its or-pattern/as-pattern alternatives) could match,
// so the owning sum type can be identified without full type inference.
func constructorNamesOf(p patterns.Pattern, out map[string]bool) {
	switch pt := p.(type) {
	case patterns.Constructor:
		out[pt.Variant] = true
	case patterns.Or:
		for _, alt := range pt.Alts {
			constructorNamesOf(alt, out)
		}
	case patterns.As:
		constructorNamesOf(pt.Inner, out)
	}
}

// matchOwner finds the single locally-declared sum type whose variant set
// is a superset of every constructor name an arm set references. A match
// with no constructor patterns at all (e.g. matching bare idents/literals)
// or one whose constructor names span more than one declared sum type
// can't be scoped this way and is skipped rather than guessed at — the
// same graceful-degradation mir.ResolveType uses for what it can't resolve.
func matchOwner(sumTypes []sumTypeInfo, names map[string]bool) *sumTypeInfo {
	if len(names) == 0 {
		return nil
	}
	for i := range sumTypes {
		st := &sumTypes[i]
		allOwned := true
		for n := range names {
			if !st.byName[n] {
				allOwned = false
				break
			}
		}
		if allOwned {
			return st
		}
	}
	return nil
}

// armsFromMatch converts one match expression's arms into patterns.Arm
// values for AnalyzeArms.
func armsFromMatch(m cst.MatchExpr) []patterns.Arm {
	var out []patterns.Arm
	for _, a := range m.Arms() {
		pn := a.Pattern()
		if pn == nil {
			continue
		}
		arm := patterns.Arm{Pattern: patternFromCST(pn)}
		if g := a.Guard(); g != nil {
			arm.HasGuard = true
			arm.GuardSpan = g.Span
		}
		out = append(out, arm)
	}
	return out
}

func armsFromReceive(r cst.ReceiveExpr) []patterns.Arm {
	var out []patterns.Arm
	for _, a := range r.Arms() {
		pn := a.Pattern()
		if pn == nil {
			continue
		}
		arm := patterns.Arm{Pattern: patternFromCST(pn)}
		if g := a.Guard(); g != nil {
			arm.HasGuard = true
			arm.GuardSpan = g.Span
		}
		out = append(out, arm)
	}
	return out
}

// CheckPatterns runs the exhaustiveness/redundancy/or-binding analysis
// against every match and receive expression in f whose scrutinee can be
// scoped to a single locally-declared sum type (see matchOwner). Matches
// over opaque or imported types are not checked: that needs full type
// inference this pipeline does not yet drive.
func CheckPatterns(f cst.File) []*errors.Report {
	sumTypes := collectSumTypes(f)
	var reports []*errors.Report

	for _, fn := range f.FnDecls() {
		body := fn.Body()
		if body == nil {
			continue
		}
		reports = append(reports, checkMatchesIn(body, sumTypes)...)
	}
	for _, a := range f.ActorDecls() {
		for _, r := range a.Receives() {
			arms := armsFromReceive(r)
			reports = append(reports, checkArmSet(arms, sumTypes)...)
		}
	}

	return reports
}

// checkMatchesIn walks a function body for CASE_EXPR nodes (match/cond),
// the same recursive-descent approach view.go's ActorDecl.Receives uses
// for nested RECEIVE_EXPR, since arbitrarily-nested matches can't be
// reached with a single FirstChild/ChildrenOf call.
func checkMatchesIn(n *cst.Node, sumTypes []sumTypeInfo) []*errors.Report {
	if n.IsToken() {
		return nil
	}
	var reports []*errors.Report
	if n.Kind == cst.CASE_EXPR {
		arms := armsFromMatch(cst.MatchExpr{Node: n})
		reports = append(reports, checkArmSet(arms, sumTypes)...)
	}
	for _, c := range n.Children {
		reports = append(reports, checkMatchesIn(c, sumTypes)...)
	}
	return reports
}

func checkArmSet(arms []patterns.Arm, sumTypes []sumTypeInfo) []*errors.Report {
	if len(arms) == 0 {
		return nil
	}
	names := map[string]bool{}
	for _, a := range arms {
		constructorNamesOf(a.Pattern, names)
	}
	owner := matchOwner(sumTypes, names)
	if owner == nil {
		return nil
	}

	scrutinee := patterns.Scrutinee{
		Shape:    patterns.ShapeSum,
		TypeName: owner.name,
		Variants: owner.variants,
	}
	findings := patterns.AnalyzeArms(scrutinee, arms)

	var reports []*errors.Report
	for _, f := range findings {
		reports = append(reports, reportFromFinding(f))
	}
	return reports
}

func reportFromFinding(f patterns.Finding) *errors.Report {
	switch f.Kind {
	case patterns.NonExhaustiveMatch:
		span := f.Span
		return errors.New(errors.PAT001, "non-exhaustive match on "+f.ScrutineeType, &span).
			WithData("missing", f.MissingPatterns)
	case patterns.RedundantArm:
		span := f.Span
		return errors.New(errors.PAT002, "unreachable match arm", &span).
			WithData("arm_index", f.ArmIndex)
	case patterns.OrPatternBindingMismatch:
		span := f.Span
		return errors.New(errors.PAT003, "or-pattern alternatives bind different names", &span).
			WithData("expected", f.ExpectedBindings).
			WithData("found", f.FoundBindings)
	default:
		span := f.Span
		return errors.New(errors.PAT004, "invalid guard expression", &span)
	}
}
