package traits

import "github.com/snowlang/snow/internal/types"

// operatorTraits are the compiler-known traits that binary- and unary-
// operator checking in internal/types dispatches through via HasImpl,
// exactly like a user-written `a.add(b)` trait call. Int and Float get
// built-in impls for all of them except Not, which only Bool implements.
var operatorTraits = []struct {
	name       string
	methodName string
	paramCount int
}{
	{"Add", "add", 1},
	{"Sub", "sub", 1},
	{"Mul", "mul", 1},
	{"Div", "div", 1},
	{"Mod", "mod", 1},
	{"Eq", "eq", 1},
	{"Ord", "cmp", 1},
	{"Not", "not", 0},
}

// SeedBuiltins registers the compiler-known operator traits and their
// built-in impls for Int, Float, and Bool into reg.
func SeedBuiltins(reg *TraitRegistry) {
	for _, op := range operatorTraits {
		reg.RegisterTrait(TraitDef{
			Name: op.name,
			Methods: []MethodSig{{
				Name:       op.methodName,
				HasSelf:    true,
				ParamCount: op.paramCount,
			}},
		})
	}

	seedArith(reg, types.Int())
	seedArith(reg, types.Float())
	seedOrd(reg, types.Int())
	seedOrd(reg, types.Float())
	seedOrd(reg, types.String())
	seedEq(reg, types.Int())
	seedEq(reg, types.Float())
	seedEq(reg, types.Bool())
	seedEq(reg, types.String())

	reg.RegisterImpl(ImplDef{
		TraitName:    "Not",
		ImplType:     types.Bool(),
		ImplTypeName: "Bool",
		Methods: map[string]MethodSig{
			"not": {HasSelf: true, ReturnType: types.Bool()},
		},
	})
}

func seedArith(reg *TraitRegistry, ty types.Ty) {
	for _, name := range []string{"Add", "Sub", "Mul", "Div", "Mod"} {
		method := operatorMethodName(name)
		reg.RegisterImpl(ImplDef{
			TraitName:    name,
			ImplType:     ty,
			ImplTypeName: ty.String(),
			Methods: map[string]MethodSig{
				method: {HasSelf: true, ParamCount: 1, ReturnType: ty},
			},
		})
	}
}

func seedOrd(reg *TraitRegistry, ty types.Ty) {
	reg.RegisterImpl(ImplDef{
		TraitName:    "Ord",
		ImplType:     ty,
		ImplTypeName: ty.String(),
		Methods: map[string]MethodSig{
			"cmp": {HasSelf: true, ParamCount: 1, ReturnType: types.Int()},
		},
	})
}

func seedEq(reg *TraitRegistry, ty types.Ty) {
	reg.RegisterImpl(ImplDef{
		TraitName:    "Eq",
		ImplType:     ty,
		ImplTypeName: ty.String(),
		Methods: map[string]MethodSig{
			"eq": {HasSelf: true, ParamCount: 1, ReturnType: types.Bool()},
		},
	})
}

func operatorMethodName(traitName string) string {
	for _, op := range operatorTraits {
		if op.name == traitName {
			return op.methodName
		}
	}
	return ""
}
