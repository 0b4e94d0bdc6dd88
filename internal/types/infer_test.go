package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyTwoFreshVars(t *testing.T) {
	c := NewInferCtx()
	a, b := c.FreshVar(), c.FreshVar()
	require.True(t, c.Unify(a, b, BuiltinOrigin))
	assert.Empty(t, c.Errors)
	assert.Equal(t, c.Resolve(a), c.Resolve(b))
}

func TestUnifyVarWithConcrete(t *testing.T) {
	c := NewInferCtx()
	v := c.FreshVar()
	require.True(t, c.Unify(v, Int(), BuiltinOrigin))
	assert.Equal(t, Int(), c.Resolve(v))
}

func TestUnifyMismatch(t *testing.T) {
	c := NewInferCtx()
	ok := c.Unify(Int(), Bool(), BuiltinOrigin)
	assert.False(t, ok)
	require.Len(t, c.Errors, 1)
	assert.Equal(t, ErrMismatch, c.Errors[0].Kind)
}

func TestUnifyFunctionReturnMismatch(t *testing.T) {
	c := NewInferCtx()
	f1 := Fun([]Ty{Int()}, Int())
	f2 := Fun([]Ty{Int()}, Bool())
	ok := c.Unify(f1, f2, BuiltinOrigin)
	assert.False(t, ok)
	require.NotEmpty(t, c.Errors)
	assert.Equal(t, ErrMismatch, c.Errors[len(c.Errors)-1].Kind)
}

func TestOccursCheckInfiniteType(t *testing.T) {
	c := NewInferCtx()
	v := c.FreshVar()
	loop := Fun([]Ty{v}, Int())
	ok := c.Unify(v, loop, BuiltinOrigin)
	assert.False(t, ok)
	require.Len(t, c.Errors, 1)
	assert.Equal(t, ErrInfiniteType, c.Errors[0].Kind)
}

func TestGeneralizeAndInstantiate(t *testing.T) {
	c := NewInferCtx()
	c.EnterLevel()
	v := c.FreshVar()
	idTy := Fun([]Ty{v}, v)
	c.LeaveLevel()

	scheme := c.Generalize(idTy)
	require.Len(t, scheme.Vars, 1)

	inst1 := c.Instantiate(scheme)
	inst2 := c.Instantiate(scheme)

	f1, ok1 := inst1.(TyFun)
	f2, ok2 := inst2.(TyFun)
	require.True(t, ok1)
	require.True(t, ok2)
	// Each instantiation gets its own fresh variable.
	assert.NotEqual(t, f1.Params[0], f2.Params[0])

	require.True(t, c.Unify(f1.Params[0], Int(), BuiltinOrigin))
	require.True(t, c.Unify(f2.Params[0], Bool(), BuiltinOrigin))
	assert.Equal(t, Int(), c.Resolve(f1.Ret))
	assert.Equal(t, Bool(), c.Resolve(f2.Ret))
}

func TestUnifyFunctionArityMismatch(t *testing.T) {
	c := NewInferCtx()
	f1 := Fun([]Ty{Int()}, Int())
	f2 := Fun([]Ty{Int(), Int()}, Int())
	ok := c.Unify(f1, f2, BuiltinOrigin)
	assert.False(t, ok)
	require.NotEmpty(t, c.Errors)
	assert.Equal(t, ErrArityMismatch, c.Errors[0].Kind)
}

func TestUnifyNeverWithAnything(t *testing.T) {
	c := NewInferCtx()
	assert.True(t, c.Unify(Never(), Int(), BuiltinOrigin))
	assert.True(t, c.Unify(Bool(), Never(), BuiltinOrigin))
	assert.Empty(t, c.Errors)
}

func TestUnifyTupleTypes(t *testing.T) {
	c := NewInferCtx()
	v := c.FreshVar()
	t1 := TyTuple{Elems: []Ty{Int(), v}}
	t2 := TyTuple{Elems: []Ty{Int(), Bool()}}
	require.True(t, c.Unify(t1, t2, BuiltinOrigin))
	assert.Equal(t, Bool(), c.Resolve(v))
}

func TestUnifyAppTypes(t *testing.T) {
	c := NewInferCtx()
	v := c.FreshVar()
	a1 := List(v)
	a2 := List(Int())
	require.True(t, c.Unify(a1, a2, BuiltinOrigin))
	assert.Equal(t, Int(), c.Resolve(v))
}

func TestUnifyAppMismatch(t *testing.T) {
	c := NewInferCtx()
	ok := c.Unify(List(Int()), Option(Int()), BuiltinOrigin)
	assert.False(t, ok)
	require.NotEmpty(t, c.Errors)
}

func TestTyDisplay(t *testing.T) {
	assert.Equal(t, "Int", Int().String())
	assert.Equal(t, "List<Int>", List(Int()).String())
	assert.Equal(t, "(Int) -> Bool", Fun([]Ty{Int()}, Bool()).String())
	assert.Equal(t, "()", Unit().String())
}

func TestOccursInThroughBoundChain(t *testing.T) {
	c := NewInferCtx()
	a := c.FreshVar()
	b := c.FreshVar()
	require.True(t, c.Unify(a, b, BuiltinOrigin))
	require.True(t, c.Unify(b, Int(), BuiltinOrigin))
	assert.False(t, c.OccursIn(a, Int()))
}
