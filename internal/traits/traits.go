// Package traits implements Snow's trait (interface) registry: trait
// definitions, impl registrations, and where-clause constraint checking,
// including the compiler-known operator traits (Add, Sub, Mul, Div, Mod,
// Eq, Ord, Not) that binary-operator checking in internal/types dispatches
// through exactly like any user-defined trait call.
package traits

import (
	"github.com/snowlang/snow/internal/types"
)

// MethodSig is a method signature, shared by trait definitions (where the
// return type is the trait's contract) and impl blocks (where it's what the
// impl actually provides).
type MethodSig struct {
	Name        string
	HasSelf     bool
	ParamCount  int
	ReturnType  types.Ty // nil if unannotated
}

// TraitDef is a trait (interface) definition: a named set of required
// method signatures.
type TraitDef struct {
	Name    string
	Methods []MethodSig
}

// ImplDef registers that ImplType implements TraitName, providing Methods.
type ImplDef struct {
	TraitName    string
	ImplType     types.Ty
	ImplTypeName string
	Methods      map[string]MethodSig
}

// TraitRegistry is the central structure for trait resolution: registering
// trait defs and impls, and looking up whether a type satisfies a trait or
// provides a method.
type TraitRegistry struct {
	traits map[string]TraitDef
	impls  map[string][]ImplDef
}

// NewTraitRegistry returns an empty registry.
func NewTraitRegistry() *TraitRegistry {
	return &TraitRegistry{
		traits: make(map[string]TraitDef),
		impls:  make(map[string][]ImplDef),
	}
}

// RegisterTrait records a trait definition.
func (r *TraitRegistry) RegisterTrait(def TraitDef) {
	r.traits[def.Name] = def
}

// RegisterImpl records an impl block, validating it against the trait's
// required methods. The impl is stored for lookup even when it has errors,
// matching the teacher's "best effort" error-collection style.
func (r *TraitRegistry) RegisterImpl(impl ImplDef) []*types.TypeError {
	var errs []*types.TypeError

	if traitDef, ok := r.traits[impl.TraitName]; ok {
		for _, method := range traitDef.Methods {
			implMethod, ok := impl.Methods[method.Name]
			if !ok {
				errs = append(errs, missingTraitMethodErr(impl.TraitName, method.Name, impl.ImplTypeName))
				continue
			}
			if method.ReturnType != nil && implMethod.ReturnType != nil {
				if method.ReturnType.String() != implMethod.ReturnType.String() {
					errs = append(errs, traitMethodSignatureMismatchErr(impl.TraitName, method.Name, method.ReturnType, implMethod.ReturnType))
				}
			}
		}
	}

	r.impls[impl.TraitName] = append(r.impls[impl.TraitName], impl)
	return errs
}

// HasImpl reports whether ty satisfies trait_name, matched structurally via
// a throwaway InferCtx rather than a string-keyed lookup, so `impl Display
// for List<T>` matches a query of List<Int> or List<String> alike.
func (r *TraitRegistry) HasImpl(traitName string, ty types.Ty) bool {
	impls, ok := r.impls[traitName]
	if !ok {
		return false
	}
	for _, impl := range impls {
		ctx := types.NewInferCtx()
		freshened := freshenTypeParams(impl.ImplType, ctx)
		if ctx.Unify(freshened, ty, types.BuiltinOrigin) {
			return true
		}
	}
	return false
}

// FindImpl returns the first registered impl of traitName whose type
// structurally unifies with ty, or nil.
func (r *TraitRegistry) FindImpl(traitName string, ty types.Ty) *ImplDef {
	impls, ok := r.impls[traitName]
	if !ok {
		return nil
	}
	for i := range impls {
		ctx := types.NewInferCtx()
		freshened := freshenTypeParams(impls[i].ImplType, ctx)
		if ctx.Unify(freshened, ty, types.BuiltinOrigin) {
			return &impls[i]
		}
	}
	return nil
}

// GetTrait looks up a trait definition by name.
func (r *TraitRegistry) GetTrait(name string) (TraitDef, bool) {
	d, ok := r.traits[name]
	return d, ok
}

// ResolveTraitMethod searches every registered impl, across every trait,
// for one providing methodName whose impl type structurally matches argTy,
// and returns its return type (resolved through the temporary unification
// context, since the return type may itself mention a freshened param).
func (r *TraitRegistry) ResolveTraitMethod(methodName string, argTy types.Ty) types.Ty {
	for _, impls := range r.impls {
		for _, impl := range impls {
			methodSig, ok := impl.Methods[methodName]
			if !ok {
				continue
			}
			ctx := types.NewInferCtx()
			freshened := freshenTypeParams(impl.ImplType, ctx)
			if ctx.Unify(freshened, argTy, types.BuiltinOrigin) {
				if methodSig.ReturnType == nil {
					return nil
				}
				return ctx.Resolve(methodSig.ReturnType)
			}
		}
	}
	return nil
}

// CheckWhereConstraints verifies that every (typeParam, traitName) bound in
// constraints is satisfied by the concrete type bound to typeParam in
// typeArgs.
func (r *TraitRegistry) CheckWhereConstraints(constraints [][2]string, typeArgs map[string]types.Ty, origin types.ConstraintOrigin) []*types.TypeError {
	var errs []*types.TypeError
	for _, c := range constraints {
		paramName, traitName := c[0], c[1]
		concreteTy, ok := typeArgs[paramName]
		if !ok {
			continue
		}
		if !r.HasImpl(traitName, concreteTy) {
			errs = append(errs, traitNotSatisfiedErr(concreteTy, traitName, origin))
		}
	}
	return errs
}

func missingTraitMethodErr(traitName, methodName, implTy string) *types.TypeError {
	return &types.TypeError{
		Kind:       types.ErrMissingTraitMethod,
		TraitName:  traitName,
		MethodName: methodName,
		ImplTy:     implTy,
	}
}

func traitMethodSignatureMismatchErr(traitName, methodName string, expected, found types.Ty) *types.TypeError {
	return &types.TypeError{
		Kind:       types.ErrTraitMethodSignatureMismatch,
		TraitName:  traitName,
		MethodName: methodName,
		Expected:   expected,
		Found:      found,
	}
}

func traitNotSatisfiedErr(ty types.Ty, traitName string, origin types.ConstraintOrigin) *types.TypeError {
	return &types.TypeError{
		Kind:      types.ErrTraitNotSatisfied,
		Ty:        ty,
		TraitName: traitName,
		Origin:    origin,
	}
}
