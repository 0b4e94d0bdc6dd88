// Package types implements Snow's Hindley-Milner type inference engine: a
// union-find-backed InferCtx over a closed sum of Ty variants, grounded on
// the teacher's one-type-per-section style but on a different algorithm
// family than the teacher's substitution-map Unifier.
package types

import (
	"fmt"
	"strings"
)

// Ty is a closed sum of type shapes. Implemented as an interface with an
// unexported marker method so no package outside types can add variants.
type Ty interface {
	isTy()
	String() string
}

// TyVar is a union-find key into InferCtx's unification table.
type TyVar uint32

func (TyVar) isTy() {}

func (v TyVar) String() string { return fmt.Sprintf("t%d", uint32(v)) }

// TyCon is a nullary type constructor: Int, Float, Bool, String, Unit, or a
// user-defined struct/sum-type/trait-parameter name.
type TyCon struct{ Name string }

func (TyCon) isTy() {}

func (c TyCon) String() string { return c.Name }

// NewTyCon builds a constructor type by name.
func NewTyCon(name string) TyCon { return TyCon{Name: name} }

// TyApp is a type constructor applied to arguments: List<Int>, Option<T>,
// Pid<Msg>.
type TyApp struct {
	Con  Ty
	Args []Ty
}

func (TyApp) isTy() {}

func (a TyApp) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s<%s>", a.Con.String(), strings.Join(parts, ", "))
}

// TyFun is a function type: (params...) -> ret.
type TyFun struct {
	Params []Ty
	Ret    Ty
}

func (TyFun) isTy() {}

func (f TyFun) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Ret.String())
}

// TyTuple is a fixed-arity product type.
type TyTuple struct{ Elems []Ty }

func (TyTuple) isTy() {}

func (t TyTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// TyNever is the bottom type: unifies with anything (a diverging expression
// such as a terminate/panic branch never constrains its sibling's type).
type TyNever struct{}

func (TyNever) isTy() {}

func (TyNever) String() string { return "Never" }

// Convenience constructors for the primitive constructors, mirroring the
// teacher's style of small named builders over bare struct literals.
func Int() Ty    { return TyCon{Name: "Int"} }
func Float() Ty  { return TyCon{Name: "Float"} }
func Bool() Ty   { return TyCon{Name: "Bool"} }
func String() Ty { return TyCon{Name: "String"} }
func Unit() Ty   { return TyTuple{} }
func Never() Ty  { return TyNever{} }

func Fun(params []Ty, ret Ty) Ty { return TyFun{Params: params, Ret: ret} }

func Option(elem Ty) Ty {
	return TyApp{Con: TyCon{Name: "Option"}, Args: []Ty{elem}}
}

func Result(ok, err Ty) Ty {
	return TyApp{Con: TyCon{Name: "Result"}, Args: []Ty{ok, err}}
}

func List(elem Ty) Ty {
	return TyApp{Con: TyCon{Name: "List"}, Args: []Ty{elem}}
}

func UntypedPid() Ty { return TyCon{Name: "Pid"} }

func Pid(msg Ty) Ty {
	return TyApp{Con: TyCon{Name: "Pid"}, Args: []Ty{msg}}
}

// Scheme is a polymorphic type: a list of universally quantified variables
// plus the body type they range over.
type Scheme struct {
	Vars []TyVar
	Ty   Ty
}
