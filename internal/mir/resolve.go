package mir

import (
	"fmt"
	"strings"

	"github.com/snowlang/snow/internal/types"
)

// opaquePointerCons are type constructors that are always opaque pointers
// at this level regardless of type arguments: the backend never needs to
// lay these out by hand.
var opaquePointerCons = map[string]bool{
	"List": true, "Map": true, "Set": true, "Range": true, "Queue": true,
	"Tuple": true, "Json": true, "Router": true, "Request": true, "Response": true,
	"ListIterator": true, "MapIterator": true, "SetIterator": true, "RangeIterator": true,
}

// opaqueHandleCons are opaque u64 handles the GC never traces, lowered to
// Int so the garbage collector doesn't mistake a handle for a pointer.
var opaqueHandleCons = map[string]bool{
	"SqliteConn": true, "PgConn": true, "PoolHandle": true,
}

// ResolveType converts a fully-resolved types.Ty to its MirType. It must
// never see an unbound types.TyVar: by the time MIR lowering runs, type
// checking has either bound every variable or already reported the error,
// so an unresolved var here falls back to Unit rather than panicking, the
// same graceful-degradation the rest of the pipeline uses everywhere else.
// isClosureContext selects whether a function type lowers to a known
// FnPtr (top-level function reference) or a Closure (value that may carry
// captured environment).
func ResolveType(ty types.Ty, reg *Registry, isClosureContext bool) MirType {
	switch t := ty.(type) {
	case types.TyVar:
		return MirUnit{}
	case types.TyCon:
		return resolveCon(t, reg)
	case types.TyFun:
		params := make([]MirType, len(t.Params))
		for i, p := range t.Params {
			params[i] = ResolveType(p, reg, false)
		}
		ret := ResolveType(t.Ret, reg, false)
		if isClosureContext {
			return MirClosure{Params: params, Ret: ret}
		}
		return MirFnPtr{Params: params, Ret: ret}
	case types.TyApp:
		return resolveApp(t, reg)
	case types.TyTuple:
		if len(t.Elems) == 0 {
			return MirUnit{}
		}
		elems := make([]MirType, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = ResolveType(e, reg, false)
		}
		return MirTuple{Elems: elems}
	case types.TyNever:
		return MirNever{}
	default:
		return MirUnit{}
	}
}

func resolveCon(con types.TyCon, reg *Registry) MirType {
	switch con.Name {
	case "Int":
		return MirInt{}
	case "Float":
		return MirFloat{}
	case "Bool":
		return MirBool{}
	case "String":
		return MirString{}
	case "Unit", "()":
		return MirUnit{}
	case "Pid":
		return MirPid{}
	}
	if opaqueHandleCons[con.Name] {
		return MirInt{}
	}
	if opaquePointerCons[con.Name] {
		return MirPtr{}
	}
	if reg.StructDefs[con.Name] {
		return MirStruct{Name: con.Name}
	}
	if reg.SumTypeDefs[con.Name] {
		return MirSumType{Name: con.Name}
	}
	// Could be an already-resolved alias or an unknown name; default to a
	// struct-like reference the way the backend falls back.
	return MirStruct{Name: con.Name}
}

func resolveApp(app types.TyApp, reg *Registry) MirType {
	conTy, ok := app.Con.(types.TyCon)
	if !ok {
		return MirPtr{}
	}
	baseName := conTy.Name

	if opaquePointerCons[baseName] {
		return MirPtr{}
	}

	if baseName == "Pid" {
		if len(app.Args) == 1 {
			msg := ResolveType(app.Args[0], reg, false)
			return MirPid{Msg: msg}
		}
		return MirPid{}
	}

	if len(app.Args) == 0 {
		return resolveCon(types.NewTyCon(baseName), reg)
	}

	mangled := MangleTypeName(baseName, app.Args, reg)

	if reg.SumTypeDefs[baseName] {
		return MirSumType{Name: mangled}
	}
	if reg.StructDefs[baseName] {
		return MirStruct{Name: mangled}
	}
	// Fallback: built-ins like Option/Result are sum types even when the
	// registry hasn't been told about them explicitly.
	return MirSumType{Name: mangled}
}

// MangleTypeName produces the deterministic monomorphization name for a
// generic type instantiation: Option<Int> -> "Option_Int",
// Result<Int, String> -> "Result_Int_String".
func MangleTypeName(base string, args []types.Ty, reg *Registry) string {
	var b strings.Builder
	b.WriteString(base)
	for _, arg := range args {
		b.WriteByte('_')
		b.WriteString(mirTypeSuffix(ResolveType(arg, reg, false)))
	}
	return b.String()
}

func mirTypeSuffix(ty MirType) string {
	switch t := ty.(type) {
	case MirInt:
		return "Int"
	case MirFloat:
		return "Float"
	case MirBool:
		return "Bool"
	case MirString:
		return "String"
	case MirUnit:
		return "Unit"
	case MirTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = mirTypeSuffix(e)
		}
		return "Tuple_" + strings.Join(parts, "_")
	case MirStruct:
		return t.Name
	case MirSumType:
		return t.Name
	case MirFnPtr:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = mirTypeSuffix(p)
		}
		return fmt.Sprintf("Fn_%s_to_%s", strings.Join(parts, "_"), mirTypeSuffix(t.Ret))
	case MirClosure:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = mirTypeSuffix(p)
		}
		return fmt.Sprintf("Closure_%s_to_%s", strings.Join(parts, "_"), mirTypeSuffix(t.Ret))
	case MirPtr:
		return "Ptr"
	case MirNever:
		return "Never"
	case MirPid:
		if t.Msg == nil {
			return "Pid"
		}
		return "Pid_" + mirTypeSuffix(t.Msg)
	default:
		return "Unknown"
	}
}

// MirTypeToTy converts a MirType back to a types.Ty for TraitRegistry
// lookups (the reverse of ResolveType). Complex shapes the trait system
// doesn't expect impls for (tuples, closures, fn pointers) map to an
// "Unknown" constructor.
func MirTypeToTy(ty MirType) types.Ty {
	switch t := ty.(type) {
	case MirInt:
		return types.Int()
	case MirFloat:
		return types.Float()
	case MirString:
		return types.String()
	case MirBool:
		return types.Bool()
	case MirStruct:
		return types.NewTyCon(t.Name)
	case MirSumType:
		return types.NewTyCon(t.Name)
	default:
		return types.NewTyCon("Unknown")
	}
}

// MirTypeToImplName extracts the human-readable type name used to build a
// `Trait__Method__Type` mangled dispatch name.
func MirTypeToImplName(ty MirType) string {
	switch t := ty.(type) {
	case MirInt:
		return "Int"
	case MirFloat:
		return "Float"
	case MirString:
		return "String"
	case MirBool:
		return "Bool"
	case MirStruct:
		return t.Name
	case MirSumType:
		return t.Name
	default:
		return "Unknown"
	}
}
