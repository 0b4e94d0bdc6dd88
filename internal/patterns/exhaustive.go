package patterns

import "github.com/snowlang/snow/internal/ast"

// ScrutineeShape classifies what the analyzer needs to know about a match
// expression's subject type in order to judge exhaustiveness.
type ScrutineeShape int

const (
	// ShapeOpaque covers infinite-domain scrutinees (Int, Float, String):
	// no finite set of literal patterns can be exhaustive, so only a
	// wildcard or ident arm closes the match.
	ShapeOpaque ScrutineeShape = iota
	ShapeBool
	ShapeSum
)

// VariantInfo names one constructor of a sum type and how many fields it
// carries.
type VariantInfo struct {
	Name  string
	Arity int
}

// Scrutinee describes the type being matched on, to the extent the
// exhaustiveness check needs.
type Scrutinee struct {
	Shape    ScrutineeShape
	TypeName string
	Variants []VariantInfo // populated when Shape == ShapeSum
}

// Arm is one match/case/receive arm under analysis.
type Arm struct {
	Pattern   Pattern
	HasGuard  bool
	GuardSpan ast.Span
}

type FindingKind int

const (
	NonExhaustiveMatch FindingKind = iota
	RedundantArm
	OrPatternBindingMismatch
	InvalidGuardExpression
)

// Finding is one diagnostic produced by analyzing a match's arms.
type Finding struct {
	Kind FindingKind
	Span ast.Span

	// NonExhaustiveMatch
	ScrutineeType   string
	MissingPatterns []string

	// RedundantArm
	ArmIndex int

	// OrPatternBindingMismatch
	ExpectedBindings []string
	FoundBindings    []string

	// InvalidGuardExpression
	Reason string
}

// AnalyzeArms walks arms in source order against scrutinee, explicitly
// enumerating coverage rather than building a decision-tree matrix: it
// tracks which sum-type variants (or which of {true, false}) have been
// covered by an unguarded arm, flags arms reached after an irrefutable
// arm as redundant, and flags or-patterns whose alternatives disagree on
// which names they bind.
func AnalyzeArms(scrutinee Scrutinee, arms []Arm) []Finding {
	var findings []Finding

	coveredVariants := make(map[string]bool)
	coveredBool := map[string]bool{"true": false, "false": false}
	irrefutableSeen := false

	for i, arm := range arms {
		if orPat, ok := arm.Pattern.(Or); ok {
			if mismatch, expected, found := checkOrBindings(orPat); mismatch {
				findings = append(findings, Finding{
					Kind:             OrPatternBindingMismatch,
					Span:             orPat.Span(),
					ExpectedBindings: expected,
					FoundBindings:    found,
				})
			}
		}

		if irrefutableSeen {
			findings = append(findings, Finding{
				Kind:     RedundantArm,
				Span:     arm.Pattern.Span(),
				ArmIndex: i,
			})
			continue
		}

		if arm.HasGuard {
			// A guarded arm can never close exhaustiveness or shadow a
			// later arm: the guard might reject at runtime.
			continue
		}

		markCovered(scrutinee, arm.Pattern, coveredVariants, coveredBool)
		if isIrrefutable(arm.Pattern) {
			irrefutableSeen = true
		}
	}

	if irrefutableSeen {
		return findings
	}

	switch scrutinee.Shape {
	case ShapeSum:
		var missing []string
		for _, v := range scrutinee.Variants {
			if !coveredVariants[v.Name] {
				missing = append(missing, v.Name)
			}
		}
		if len(missing) > 0 {
			findings = append(findings, Finding{
				Kind:            NonExhaustiveMatch,
				ScrutineeType:   scrutinee.TypeName,
				MissingPatterns: missing,
			})
		}
	case ShapeBool:
		var missing []string
		if !coveredBool["true"] {
			missing = append(missing, "true")
		}
		if !coveredBool["false"] {
			missing = append(missing, "false")
		}
		if len(missing) > 0 {
			findings = append(findings, Finding{
				Kind:            NonExhaustiveMatch,
				ScrutineeType:   "Bool",
				MissingPatterns: missing,
			})
		}
	case ShapeOpaque:
		findings = append(findings, Finding{
			Kind:            NonExhaustiveMatch,
			ScrutineeType:   scrutinee.TypeName,
			MissingPatterns: []string{"_"},
		})
	}

	return findings
}

func markCovered(scrutinee Scrutinee, p Pattern, coveredVariants, coveredBool map[string]bool) {
	switch pt := p.(type) {
	case Constructor:
		coveredVariants[pt.Variant] = true
	case Literal:
		if scrutinee.Shape == ShapeBool {
			if _, ok := coveredBool[pt.Text]; ok {
				coveredBool[pt.Text] = true
			}
		}
	case As:
		markCovered(scrutinee, pt.Inner, coveredVariants, coveredBool)
	case Or:
		for _, alt := range pt.Alts {
			markCovered(scrutinee, alt, coveredVariants, coveredBool)
		}
	}
}

// checkOrBindings reports whether the alternatives of an or-pattern bind
// different sets of names — e.g. `Some(x) | None` binds `x` on one side
// and nothing on the other, which leaves `x` undefined in the arm body for
// half of the possible matches.
func checkOrBindings(or Or) (mismatch bool, expected, found []string) {
	if len(or.Alts) == 0 {
		return false, nil, nil
	}
	expected = boundNames(or.Alts[0])
	for _, alt := range or.Alts[1:] {
		found = boundNames(alt)
		if !sameNameSet(expected, found) {
			return true, expected, found
		}
	}
	return false, nil, nil
}

func sameNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, n := range a {
		seen[n] = true
	}
	for _, n := range b {
		if !seen[n] {
			return false
		}
	}
	return true
}
