package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowlang/snow/internal/types"
)

func makeDisplayTrait() TraitDef {
	return TraitDef{
		Name: "Display",
		Methods: []MethodSig{
			{Name: "to_string", HasSelf: true, ReturnType: types.String()},
		},
	}
}

func displayMethodSig() map[string]MethodSig {
	return map[string]MethodSig{
		"to_string": {HasSelf: true, ReturnType: types.String()},
	}
}

func TestRegisterAndFindTrait(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())

	_, ok := reg.GetTrait("Display")
	assert.True(t, ok)
	_, ok = reg.GetTrait("NonExistent")
	assert.False(t, ok)
}

func TestRegisterImplAndLookup(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())

	errs := reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     types.Int(),
		ImplTypeName: "Int",
		Methods:      displayMethodSig(),
	})

	assert.Empty(t, errs)
	assert.True(t, reg.HasImpl("Display", types.Int()))
	assert.False(t, reg.HasImpl("Display", types.Float()))
}

func TestMissingMethodError(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())

	errs := reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     types.Int(),
		ImplTypeName: "Int",
		Methods:      map[string]MethodSig{},
	})

	require.Len(t, errs, 1)
	assert.Equal(t, types.ErrMissingTraitMethod, errs[0].Kind)
}

func listOfT() types.Ty {
	return types.TyApp{Con: types.NewTyCon("List"), Args: []types.Ty{types.NewTyCon("T")}}
}

func TestStructuralMatchGenericImpl(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())

	errs := reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     listOfT(),
		ImplTypeName: "List<T>",
		Methods:      displayMethodSig(),
	})
	require.Empty(t, errs)

	assert.True(t, reg.HasImpl("Display", types.List(types.Int())))
	assert.True(t, reg.HasImpl("Display", types.List(types.String())))
	assert.True(t, reg.HasImpl("Display", types.List(types.List(types.Int()))))
}

func TestStructuralMatchNoFalsePositive(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())
	reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     listOfT(),
		ImplTypeName: "List<T>",
		Methods:      displayMethodSig(),
	})

	assert.False(t, reg.HasImpl("Display", types.Int()))
	assert.False(t, reg.HasImpl("Display", types.String()))
	assert.False(t, reg.HasImpl("Display", types.Option(types.Int())))
}

func TestSimpleTypeStillWorks(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(TraitDef{
		Name:    "Add",
		Methods: []MethodSig{{Name: "add", HasSelf: true, ParamCount: 1}},
	})

	reg.RegisterImpl(ImplDef{
		TraitName:    "Add",
		ImplType:     types.Int(),
		ImplTypeName: "Int",
		Methods: map[string]MethodSig{
			"add": {HasSelf: true, ParamCount: 1, ReturnType: types.Int()},
		},
	})
	reg.RegisterImpl(ImplDef{
		TraitName:    "Add",
		ImplType:     types.Float(),
		ImplTypeName: "Float",
		Methods: map[string]MethodSig{
			"add": {HasSelf: true, ParamCount: 1, ReturnType: types.Float()},
		},
	})

	assert.True(t, reg.HasImpl("Add", types.Int()))
	assert.True(t, reg.HasImpl("Add", types.Float()))
	assert.False(t, reg.HasImpl("Add", types.String()))

	intImpl := reg.FindImpl("Add", types.Int())
	require.NotNil(t, intImpl)
	assert.Equal(t, "Int", intImpl.ImplTypeName)

	floatImpl := reg.FindImpl("Add", types.Float())
	require.NotNil(t, floatImpl)
	assert.Equal(t, "Float", floatImpl.ImplTypeName)

	assert.Nil(t, reg.FindImpl("Add", types.String()))
}

func TestResolveTraitMethodStructural(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())
	reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     listOfT(),
		ImplTypeName: "List<T>",
		Methods:      displayMethodSig(),
	})

	ret := reg.ResolveTraitMethod("to_string", types.List(types.Int()))
	require.NotNil(t, ret)
	assert.Equal(t, "String", ret.String())

	assert.Nil(t, reg.ResolveTraitMethod("to_string", types.Int()))
}

func TestFindImplStructuralGeneric(t *testing.T) {
	reg := NewTraitRegistry()
	reg.RegisterTrait(makeDisplayTrait())
	reg.RegisterImpl(ImplDef{
		TraitName:    "Display",
		ImplType:     listOfT(),
		ImplTypeName: "List<T>",
		Methods:      displayMethodSig(),
	})

	found := reg.FindImpl("Display", types.List(types.Int()))
	require.NotNil(t, found)
	assert.Equal(t, "List<T>", found.ImplTypeName)

	assert.Nil(t, reg.FindImpl("Display", types.Int()))
}

func TestSeedBuiltinsOperatorTraits(t *testing.T) {
	reg := NewTraitRegistry()
	SeedBuiltins(reg)

	assert.True(t, reg.HasImpl("Add", types.Int()))
	assert.True(t, reg.HasImpl("Add", types.Float()))
	assert.False(t, reg.HasImpl("Add", types.String()))

	assert.True(t, reg.HasImpl("Eq", types.Bool()))
	assert.True(t, reg.HasImpl("Ord", types.String()))
	assert.True(t, reg.HasImpl("Not", types.Bool()))
	assert.False(t, reg.HasImpl("Not", types.Int()))
}
