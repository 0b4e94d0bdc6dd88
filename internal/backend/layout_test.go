package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snowlang/snow/internal/mir"
)

func TestScalarReprSizes(t *testing.T) {
	assert.Equal(t, 8, ReprOf(mir.MirInt{}).Size(DefaultTarget))
	assert.Equal(t, 8, ReprOf(mir.MirFloat{}).Size(DefaultTarget))
	assert.Equal(t, 1, ReprOf(mir.MirBool{}).Size(DefaultTarget))
	assert.Equal(t, 8, ReprOf(mir.MirString{}).Size(DefaultTarget))
	assert.Equal(t, 0, ReprOf(mir.MirUnit{}).Size(DefaultTarget))
}

func TestTupleReprFieldCount(t *testing.T) {
	ty := mir.MirTuple{Elems: []mir.MirType{mir.MirInt{}, mir.MirBool{}, mir.MirString{}}}
	repr := ReprOf(ty).(ReprTuple)
	assert.Len(t, repr.Elems, 3)
	// int(8) + bool(1, padded to 8 for the trailing string's alignment) + ptr(8)
	assert.Equal(t, 24, repr.Size(DefaultTarget))
}

func TestClosureReprIsTwoPointers(t *testing.T) {
	repr := ReprOf(mir.MirClosure{Params: []mir.MirType{mir.MirInt{}}, Ret: mir.MirInt{}})
	assert.Equal(t, 16, repr.Size(DefaultTarget))
	assert.Equal(t, 8, repr.Align(DefaultTarget))
}

func TestSumTypeLayoutNullary(t *testing.T) {
	def := &mir.SumTypeDef{
		Name: "Direction",
		Variants: []mir.SumTypeVariant{
			{Name: "North"}, {Name: "South"}, {Name: "East"}, {Name: "West"},
		},
	}
	layout := SumTypeLayout(def, DefaultTarget)
	assert.Equal(t, LayoutTagOnly, layout.Kind)
}

func TestSumTypeLayoutSinglePointerPayload(t *testing.T) {
	def := &mir.SumTypeDef{
		Name: "Option_Int",
		Variants: []mir.SumTypeVariant{
			{Name: "None"},
			{Name: "Some", Fields: []mir.MirType{mir.MirString{}}},
		},
	}
	layout := SumTypeLayout(def, DefaultTarget)
	assert.Equal(t, LayoutPtr, layout.Kind)
}

func TestSumTypeLayoutMixedShapePayload(t *testing.T) {
	def := &mir.SumTypeDef{
		Name: "Shape",
		Variants: []mir.SumTypeVariant{
			{Name: "Circle", Fields: []mir.MirType{mir.MirFloat{}}},
			{Name: "Rect", Fields: []mir.MirType{mir.MirFloat{}, mir.MirFloat{}}},
		},
	}
	layout := SumTypeLayout(def, DefaultTarget)
	assert.Equal(t, LayoutBytes, layout.Kind)
	// Rect's overlay is {tag(pad to 8), f64, f64} = 24 bytes; minus the
	// leading tag byte, the inline payload needs 23 bytes.
	assert.Equal(t, 23, layout.NBytes)
}

func TestSumTypeLayoutAllEmpty(t *testing.T) {
	def := &mir.SumTypeDef{Name: "Unit1", Variants: []mir.SumTypeVariant{{Name: "Only"}}}
	layout := SumTypeLayout(def, DefaultTarget)
	assert.Equal(t, LayoutTagOnly, layout.Kind)
}

func TestPidReprAlwaysInt64(t *testing.T) {
	assert.Equal(t, 8, ReprOf(mir.MirPid{}).Size(DefaultTarget))
	assert.Equal(t, 8, ReprOf(mir.MirPid{Msg: mir.MirString{}}).Size(DefaultTarget))
}

func TestABITableHasActorPrimitives(t *testing.T) {
	tbl := NewABITable(DefaultTarget)
	for _, name := range []string{
		"snow_actor_spawn", "snow_actor_send", "snow_actor_receive",
		"snow_job_async", "snow_job_await", "snow_supervisor_start",
	} {
		_, ok := tbl.Lookup(name)
		assert.True(t, ok, "missing symbol %s", name)
	}
}

func TestABITableSpawnReturnsPid(t *testing.T) {
	tbl := NewABITable(DefaultTarget)
	sym, ok := tbl.Lookup("snow_actor_spawn")
	assert.True(t, ok)
	assert.IsType(t, ReprPid{}, sym.Ret)
}
