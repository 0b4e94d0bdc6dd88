// Package backend is the MIR-to-machine-representation decision layer: it
// answers "what does this value look like in memory" (ValueRepr, sum-type
// tag/payload layout) and "what symbol does this runtime operation bind
// to" (ABITable), without emitting any code itself. Native code generation
// — SSA construction, register allocation, instruction selection — stays
// out of scope; a real backend consumes these decisions the way the
// reference implementation's Inkwell/LLVM layer consumes its own type
// table.
package backend

import "github.com/snowlang/snow/internal/mir"

// TargetInfo carries the handful of machine facts layout decisions depend
// on. PointerSize is 8 on every platform Snow currently targets (amd64,
// arm64); it's a field rather than a constant so a 32-bit target could be
// added without touching the layout algorithm.
type TargetInfo struct {
	PointerSize int
}

// DefaultTarget is the baseline 64-bit target used when the CLI doesn't
// override it.
var DefaultTarget = TargetInfo{PointerSize: 8}

// ValueRepr is the closed sum of runtime value shapes a MirType lowers to.
// This mirrors the reference llvm_type mapping table, but as data a Go
// backend can inspect instead of an LLVM BasicTypeEnum a specific codegen
// library would return.
type ValueRepr interface {
	isValueRepr()
	Size(t TargetInfo) int
	Align(t TargetInfo) int
}

type ReprInt struct{}

func (ReprInt) isValueRepr()          {}
func (ReprInt) Size(TargetInfo) int   { return 8 }
func (ReprInt) Align(TargetInfo) int  { return 8 }

type ReprFloat struct{}

func (ReprFloat) isValueRepr()         {}
func (ReprFloat) Size(TargetInfo) int  { return 8 }
func (ReprFloat) Align(TargetInfo) int { return 8 }

type ReprBool struct{}

func (ReprBool) isValueRepr()         {}
func (ReprBool) Size(TargetInfo) int  { return 1 }
func (ReprBool) Align(TargetInfo) int { return 1 }

// ReprString is an opaque pointer to a runtime string object.
type ReprString struct{}

func (ReprString) isValueRepr()             {}
func (ReprString) Size(t TargetInfo) int    { return t.PointerSize }
func (ReprString) Align(t TargetInfo) int   { return t.PointerSize }

type ReprUnit struct{}

func (ReprUnit) isValueRepr()         {}
func (ReprUnit) Size(TargetInfo) int  { return 0 }
func (ReprUnit) Align(TargetInfo) int { return 1 }

type ReprTuple struct{ Elems []ValueRepr }

func (ReprTuple) isValueRepr() {}
func (r ReprTuple) Size(t TargetInfo) int {
	size, _ := structLayout(append([]ValueRepr{}, r.Elems...), t)
	return size
}
func (r ReprTuple) Align(t TargetInfo) int {
	_, align := structLayout(append([]ValueRepr{}, r.Elems...), t)
	return align
}

// ReprStruct and ReprSumType are boxed references at this layer: the
// decision table doesn't resolve a named type's own field layout
// recursively (that belongs to a later, type-registry-aware pass), so it
// treats every named aggregate as a GC-traced pointer, the same as Ptr.
type ReprStruct struct{ Name string }

func (ReprStruct) isValueRepr()           {}
func (ReprStruct) Size(t TargetInfo) int  { return t.PointerSize }
func (ReprStruct) Align(t TargetInfo) int { return t.PointerSize }

type ReprSumType struct{ Name string }

func (ReprSumType) isValueRepr()           {}
func (ReprSumType) Size(t TargetInfo) int  { return t.PointerSize }
func (ReprSumType) Align(t TargetInfo) int { return t.PointerSize }

type ReprFnPtr struct{}

func (ReprFnPtr) isValueRepr()           {}
func (ReprFnPtr) Size(t TargetInfo) int  { return t.PointerSize }
func (ReprFnPtr) Align(t TargetInfo) int { return t.PointerSize }

// ReprClosure is a {fn_ptr, env_ptr} pair.
type ReprClosure struct{}

func (ReprClosure) isValueRepr()           {}
func (ReprClosure) Size(t TargetInfo) int  { return 2 * t.PointerSize }
func (ReprClosure) Align(t TargetInfo) int { return t.PointerSize }

type ReprPtr struct{}

func (ReprPtr) isValueRepr()           {}
func (ReprPtr) Size(t TargetInfo) int  { return t.PointerSize }
func (ReprPtr) Align(t TargetInfo) int { return t.PointerSize }

// ReprNever is an unreachable placeholder, one byte wide like the
// reference i8 stand-in.
type ReprNever struct{}

func (ReprNever) isValueRepr()         {}
func (ReprNever) Size(TargetInfo) int  { return 1 }
func (ReprNever) Align(TargetInfo) int { return 1 }

// ReprPid is always a 64-bit process handle regardless of the message
// type it's parameterized over — Pid<T> type-checks the message but
// carries no extra runtime payload.
type ReprPid struct{}

func (ReprPid) isValueRepr()         {}
func (ReprPid) Size(TargetInfo) int  { return 8 }
func (ReprPid) Align(TargetInfo) int { return 8 }

// ReprOf converts a MirType to its ValueRepr.
func ReprOf(ty mir.MirType) ValueRepr {
	switch ty.(type) {
	case mir.MirInt:
		return ReprInt{}
	case mir.MirFloat:
		return ReprFloat{}
	case mir.MirBool:
		return ReprBool{}
	case mir.MirString:
		return ReprString{}
	case mir.MirUnit:
		return ReprUnit{}
	case mir.MirFnPtr:
		return ReprFnPtr{}
	case mir.MirClosure:
		return ReprClosure{}
	case mir.MirPtr:
		return ReprPtr{}
	case mir.MirNever:
		return ReprNever{}
	case mir.MirPid:
		return ReprPid{}
	}
	switch t := ty.(type) {
	case mir.MirTuple:
		elems := make([]ValueRepr, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = ReprOf(e)
		}
		return ReprTuple{Elems: elems}
	case mir.MirStruct:
		return ReprStruct{Name: t.Name}
	case mir.MirSumType:
		return ReprSumType{Name: t.Name}
	default:
		return ReprPtr{}
	}
}

// structLayout computes the C-style packed-with-alignment size and overall
// alignment of a sequence of fields laid out in order: each field's offset
// is rounded up to its own alignment, and the final size is rounded up to
// the struct's alignment (the widest field alignment), matching how LLVM
// (and C) size a struct.
func structLayout(fields []ValueRepr, t TargetInfo) (size, align int) {
	align = 1
	offset := 0
	for _, f := range fields {
		fa := f.Align(t)
		if fa > align {
			align = fa
		}
		offset = alignUp(offset, fa)
		offset += f.Size(t)
	}
	size = alignUp(offset, align)
	return size, align
}

func alignUp(offset, align int) int {
	if align <= 1 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + (align - rem)
}
