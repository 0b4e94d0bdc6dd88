// Package mir implements Snow's mid-level intermediate representation: a
// monomorphized, fully-typed tree lowered from the type-checked AST, ready
// for the backend contract in internal/backend to turn into runtime value
// layouts. Collections (List, Map, Set, Range, Queue) stay opaque pointers
// at this level; only the shapes the backend must lay out by hand (sum
// types, structs, closures, tuples) get concrete MirType representations.
package mir

import (
	"fmt"
	"strings"
)

// MirType is the closed sum of concrete runtime type shapes a value can
// have after monomorphization. Unlike types.Ty there are no variables left:
// every MirType here is fully resolved.
type MirType interface {
	isMirType()
	String() string
}

type MirInt struct{}

func (MirInt) isMirType()      {}
func (MirInt) String() string  { return "Int" }

type MirFloat struct{}

func (MirFloat) isMirType()     {}
func (MirFloat) String() string { return "Float" }

type MirBool struct{}

func (MirBool) isMirType()     {}
func (MirBool) String() string { return "Bool" }

type MirString struct{}

func (MirString) isMirType()     {}
func (MirString) String() string { return "String" }

type MirUnit struct{}

func (MirUnit) isMirType()     {}
func (MirUnit) String() string { return "Unit" }

// MirTuple is a fixed-arity product, laid out inline.
type MirTuple struct{ Elems []MirType }

func (MirTuple) isMirType() {}
func (t MirTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// MirStruct names a monomorphized struct type; Name is already mangled for
// generic instantiations (e.g. "Pair_Int_String").
type MirStruct struct{ Name string }

func (MirStruct) isMirType()     {}
func (s MirStruct) String() string { return s.Name }

// MirSumType names a monomorphized sum type.
type MirSumType struct{ Name string }

func (MirSumType) isMirType()     {}
func (s MirSumType) String() string { return s.Name }

// MirFnPtr is a known, non-closing function pointer: a reference to a named
// top-level function, with no captured environment.
type MirFnPtr struct {
	Params []MirType
	Ret    MirType
}

func (MirFnPtr) isMirType() {}
func (f MirFnPtr) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), f.Ret.String())
}

// MirClosure is a function value that may carry a captured environment,
// represented at runtime as a function-pointer-plus-environment pair.
type MirClosure struct {
	Params []MirType
	Ret    MirType
}

func (MirClosure) isMirType() {}
func (c MirClosure) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("closure(%s) -> %s", strings.Join(parts, ", "), c.Ret.String())
}

// MirPtr is an opaque pointer: collections, JSON values, iterator handles —
// anything the backend treats as a GC-traced reference without needing to
// know its internal layout.
type MirPtr struct{}

func (MirPtr) isMirType()     {}
func (MirPtr) String() string { return "Ptr" }

// MirNever is the type of an expression that doesn't return (panic, a
// terminated actor body).
type MirNever struct{}

func (MirNever) isMirType()     {}
func (MirNever) String() string { return "Never" }

// MirPid is a process identifier, optionally typed by the message it
// accepts.
type MirPid struct{ Msg MirType } // Msg == nil means untyped

func (MirPid) isMirType() {}
func (p MirPid) String() string {
	if p.Msg == nil {
		return "Pid"
	}
	return fmt.Sprintf("Pid<%s>", p.Msg.String())
}

// Registry is the subset of module-level type definitions resolve_type
// needs: which names are structs and which are sum types, so a bare
// constructor name lowers to the right MirType variant.
type Registry struct {
	StructDefs  map[string]bool
	SumTypeDefs map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{StructDefs: make(map[string]bool), SumTypeDefs: make(map[string]bool)}
}
