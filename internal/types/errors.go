package types

import (
	"fmt"

	"github.com/snowlang/snow/internal/ast"
)

// ConstraintOrigin records why two types were asked to unify, so an error
// can point at the construct that generated the constraint rather than just
// the two mismatched types.
type ConstraintOrigin struct {
	Kind ConstraintOriginKind

	// Populated depending on Kind.
	CallSite ast.Span
	ParamIdx int

	OpSpan ast.Span

	IfSpan, ThenSpan, ElseSpan ast.Span

	AnnotationSpan ast.Span

	ReturnSpan, FnSpan ast.Span

	BindingSpan ast.Span

	LHSSpan, RHSSpan ast.Span
}

type ConstraintOriginKind uint8

const (
	OriginBuiltin ConstraintOriginKind = iota
	OriginFnArg
	OriginBinOp
	OriginIfBranches
	OriginAnnotation
	OriginReturn
	OriginLetBinding
	OriginAssignment
)

func FnArgOrigin(callSite ast.Span, paramIdx int) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginFnArg, CallSite: callSite, ParamIdx: paramIdx}
}

func BinOpOrigin(opSpan ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginBinOp, OpSpan: opSpan}
}

func IfBranchesOrigin(ifSpan, thenSpan, elseSpan ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginIfBranches, IfSpan: ifSpan, ThenSpan: thenSpan, ElseSpan: elseSpan}
}

func AnnotationOrigin(span ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginAnnotation, AnnotationSpan: span}
}

func ReturnOrigin(returnSpan, fnSpan ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginReturn, ReturnSpan: returnSpan, FnSpan: fnSpan}
}

func LetBindingOrigin(span ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginLetBinding, BindingSpan: span}
}

func AssignmentOrigin(lhs, rhs ast.Span) ConstraintOrigin {
	return ConstraintOrigin{Kind: OriginAssignment, LHSSpan: lhs, RHSSpan: rhs}
}

var BuiltinOrigin = ConstraintOrigin{Kind: OriginBuiltin}

// TypeError is the closed sum of errors InferCtx can raise. Each variant
// carries the ConstraintOrigin that produced it, except for the ones that
// are detected outside of unification proper (unbound names, non-function
// calls).
type TypeError struct {
	Kind TypeErrorKind

	Expected, Found Ty
	Origin          ConstraintOrigin

	Var TyVar
	Ty  Ty

	ExpectedArity, FoundArity int

	Name string
	Span ast.Span

	TraitName, MethodName, ImplTy string
}

type TypeErrorKind uint8

const (
	ErrMismatch TypeErrorKind = iota
	ErrInfiniteType
	ErrArityMismatch
	ErrUnboundVariable
	ErrNotAFunction
	ErrTraitNotSatisfied
	ErrMissingTraitMethod
	ErrTraitMethodSignatureMismatch
	ErrSendTypeMismatch
	ErrSelfOutsideActor
	ErrSpawnNonFunction
	ErrReceiveOutsideActor
	ErrGuardTypeMismatch
)

func (e *TypeError) Error() string {
	switch e.Kind {
	case ErrMismatch:
		return fmt.Sprintf("type mismatch: expected `%s`, found `%s`", e.Expected, e.Found)
	case ErrInfiniteType:
		return fmt.Sprintf("infinite type: `%s` occurs in `%s`", e.Var, e.Ty)
	case ErrArityMismatch:
		return fmt.Sprintf("arity mismatch: expected %d arguments, found %d", e.ExpectedArity, e.FoundArity)
	case ErrUnboundVariable:
		return fmt.Sprintf("unbound variable `%s`", e.Name)
	case ErrNotAFunction:
		return fmt.Sprintf("`%s` is not a function", e.Ty)
	case ErrTraitNotSatisfied:
		return fmt.Sprintf("type `%s` does not satisfy trait `%s`", e.Ty, e.TraitName)
	case ErrMissingTraitMethod:
		return fmt.Sprintf("impl `%s` for `%s` is missing method `%s`", e.TraitName, e.ImplTy, e.MethodName)
	case ErrTraitMethodSignatureMismatch:
		return fmt.Sprintf("method `%s` in impl `%s` has wrong signature: expected `%s`, found `%s`", e.MethodName, e.TraitName, e.Expected, e.Found)
	case ErrSendTypeMismatch:
		return fmt.Sprintf("message type mismatch: expected `%s`, found `%s`", e.Expected, e.Found)
	case ErrSelfOutsideActor:
		return "self() used outside actor block"
	case ErrSpawnNonFunction:
		return fmt.Sprintf("cannot spawn non-function: found `%s`", e.Found)
	case ErrReceiveOutsideActor:
		return "receive used outside actor block"
	case ErrGuardTypeMismatch:
		return fmt.Sprintf("guard expression must return `%s`, found `%s`", e.Expected, e.Found)
	default:
		return "type error"
	}
}

func mismatchErr(expected, found Ty, origin ConstraintOrigin) *TypeError {
	return &TypeError{Kind: ErrMismatch, Expected: expected, Found: found, Origin: origin}
}

func infiniteTypeErr(v TyVar, ty Ty, origin ConstraintOrigin) *TypeError {
	return &TypeError{Kind: ErrInfiniteType, Var: v, Ty: ty, Origin: origin}
}

func arityMismatchErr(expected, found int, origin ConstraintOrigin) *TypeError {
	return &TypeError{Kind: ErrArityMismatch, ExpectedArity: expected, FoundArity: found, Origin: origin}
}
