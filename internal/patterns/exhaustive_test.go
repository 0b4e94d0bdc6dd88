package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowlang/snow/internal/ast"
	"github.com/snowlang/snow/internal/types"
)

var noSpan ast.Span

func optionScrutinee() Scrutinee {
	return Scrutinee{
		Shape:    ShapeSum,
		TypeName: "Option",
		Variants: []VariantInfo{{Name: "Some", Arity: 1}, {Name: "None", Arity: 0}},
	}
}

func TestExhaustiveSumMatch(t *testing.T) {
	arms := []Arm{
		{Pattern: NewConstructor("Some", []Pattern{NewIdent("x", noSpan)}, noSpan)},
		{Pattern: NewConstructor("None", nil, noSpan)},
	}
	findings := AnalyzeArms(optionScrutinee(), arms)
	assert.Empty(t, findings)
}

func TestNonExhaustiveSumMatch(t *testing.T) {
	arms := []Arm{
		{Pattern: NewConstructor("Some", []Pattern{NewIdent("x", noSpan)}, noSpan)},
	}
	findings := AnalyzeArms(optionScrutinee(), arms)
	require.Len(t, findings, 1)
	assert.Equal(t, NonExhaustiveMatch, findings[0].Kind)
	assert.Equal(t, []string{"None"}, findings[0].MissingPatterns)
}

func TestWildcardClosesExhaustiveness(t *testing.T) {
	arms := []Arm{
		{Pattern: NewConstructor("Some", []Pattern{NewIdent("x", noSpan)}, noSpan)},
		{Pattern: NewWildcard(noSpan)},
	}
	findings := AnalyzeArms(optionScrutinee(), arms)
	assert.Empty(t, findings)
}

func TestRedundantArmAfterWildcard(t *testing.T) {
	arms := []Arm{
		{Pattern: NewWildcard(noSpan)},
		{Pattern: NewConstructor("None", nil, noSpan)},
	}
	findings := AnalyzeArms(optionScrutinee(), arms)
	require.Len(t, findings, 1)
	assert.Equal(t, RedundantArm, findings[0].Kind)
	assert.Equal(t, 1, findings[0].ArmIndex)
}

func TestBoolExhaustiveness(t *testing.T) {
	scrutinee := Scrutinee{Shape: ShapeBool, TypeName: "Bool"}
	arms := []Arm{
		{Pattern: NewLiteral("true", noSpan)},
	}
	findings := AnalyzeArms(scrutinee, arms)
	require.Len(t, findings, 1)
	assert.Equal(t, []string{"false"}, findings[0].MissingPatterns)
}

func TestOpaqueScrutineeNeedsWildcard(t *testing.T) {
	scrutinee := Scrutinee{Shape: ShapeOpaque, TypeName: "Int"}
	arms := []Arm{
		{Pattern: NewLiteral("1", noSpan)},
		{Pattern: NewLiteral("2", noSpan)},
	}
	findings := AnalyzeArms(scrutinee, arms)
	require.Len(t, findings, 1)
	assert.Equal(t, NonExhaustiveMatch, findings[0].Kind)

	arms = append(arms, Arm{Pattern: NewIdent("other", noSpan)})
	findings = AnalyzeArms(scrutinee, arms)
	assert.Empty(t, findings)
}

func TestGuardedArmDoesNotCloseExhaustiveness(t *testing.T) {
	arms := []Arm{
		{Pattern: NewIdent("x", noSpan), HasGuard: true},
		{Pattern: NewConstructor("Some", []Pattern{NewIdent("y", noSpan)}, noSpan)},
		{Pattern: NewConstructor("None", nil, noSpan)},
	}
	findings := AnalyzeArms(optionScrutinee(), arms)
	assert.Empty(t, findings)
}

func TestOrPatternBindingMismatch(t *testing.T) {
	or := NewOr([]Pattern{
		NewConstructor("Some", []Pattern{NewIdent("x", noSpan)}, noSpan),
		NewConstructor("None", nil, noSpan),
	}, noSpan)
	findings := AnalyzeArms(optionScrutinee(), []Arm{{Pattern: or}})
	require.NotEmpty(t, findings)
	assert.Equal(t, OrPatternBindingMismatch, findings[0].Kind)
	assert.Equal(t, []string{"x"}, findings[0].ExpectedBindings)
}

func TestOrPatternConsistentBindingsOk(t *testing.T) {
	or := NewOr([]Pattern{
		NewConstructor("Some", []Pattern{NewIdent("x", noSpan)}, noSpan),
		NewAs("x", NewWildcard(noSpan), noSpan),
	}, noSpan)
	findings := AnalyzeArms(optionScrutinee(), []Arm{
		{Pattern: or},
		{Pattern: NewWildcard(noSpan)},
	})
	for _, f := range findings {
		assert.NotEqual(t, OrPatternBindingMismatch, f.Kind)
	}
}

func TestCheckGuardConstructsRejectsSpawn(t *testing.T) {
	f := CheckGuardConstructs([]string{"spawn"}, noSpan)
	require.NotNil(t, f)
	assert.Equal(t, InvalidGuardExpression, f.Kind)
}

func TestCheckGuardConstructsAllowsPureOps(t *testing.T) {
	f := CheckGuardConstructs([]string{"binop", "literal"}, noSpan)
	assert.Nil(t, f)
}

func TestCheckGuardTypeMismatch(t *testing.T) {
	err := CheckGuardType(types.Int(), noSpan)
	require.NotNil(t, err)
	assert.Equal(t, types.ErrGuardTypeMismatch, err.Kind)

	assert.Nil(t, CheckGuardType(types.Bool(), noSpan))
}
