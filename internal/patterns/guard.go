package patterns

import (
	"fmt"

	"github.com/snowlang/snow/internal/ast"
	"github.com/snowlang/snow/internal/types"
)

// disallowedGuardConstructs are the constructs a guard clause can't use:
// guards run during pattern matching, before the arm's body commits to
// anything, so they must be pure and side-effect free.
var disallowedGuardConstructs = map[string]bool{
	"spawn":   true,
	"send":    true,
	"receive": true,
	"call":    true, // arbitrary function calls with unknown effects
	"link":    true,
	"monitor": true,
}

// CheckGuardConstructs flags a guard expression that uses spawn/send/
// receive or an arbitrary call, given the set of construct names found
// while walking its CST subtree.
func CheckGuardConstructs(constructs []string, span ast.Span) *Finding {
	for _, c := range constructs {
		if disallowedGuardConstructs[c] {
			return &Finding{
				Kind:   InvalidGuardExpression,
				Span:   span,
				Reason: fmt.Sprintf("guard expressions cannot use `%s`", c),
			}
		}
	}
	return nil
}

// CheckGuardType verifies a guard's inferred type is Bool, raising a
// GuardTypeMismatch through the shared type-error sum rather than a
// patterns-local Finding, since it's a type-level fact and the type
// checker is where callers already collect types.TypeError values.
func CheckGuardType(guardTy types.Ty, span ast.Span) *types.TypeError {
	if _, ok := guardTy.(types.TyCon); ok && guardTy.String() == "Bool" {
		return nil
	}
	return &types.TypeError{
		Kind:     types.ErrGuardTypeMismatch,
		Expected: types.Bool(),
		Found:    guardTy,
		Span:     span,
	}
}
