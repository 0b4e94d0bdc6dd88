package pipeline

import (
	"github.com/snowlang/snow/internal/cst"
	"github.com/snowlang/snow/internal/mir"
)

// BuildRegistry pre-declares every struct and sum type a file defines so
// mir.ResolveType can tell a bare constructor name apart from an opaque
// built-in or an unknown name, without needing a second pass over the file.
func BuildRegistry(f cst.File) *mir.Registry {
	reg := mir.NewRegistry()
	for _, s := range f.StructDecls() {
		reg.StructDefs[s.Name()] = true
	}
	for _, s := range f.SumTypeDecls() {
		reg.SumTypeDefs[s.Name()] = true
	}
	return reg
}

// LowerModule builds the struct and sum-type definitions of a MIR module
// from a file's declarations. Function bodies are not lowered here: that
// requires full expression-level type inference (internal/types' InferCtx
// driven over every expression), which this pipeline does not yet drive
// from the CST — see the design notes accompanying this package. Struct and
// sum-type declarations only need their own field annotations, so they can
// be lowered directly.
func LowerModule(f cst.File, reg *mir.Registry) *mir.MirModule {
	mod := mir.NewModule()

	for _, s := range f.StructDecls() {
		def := &mir.StructDef{Name: s.Name()}
		for _, field := range s.Fields() {
			def.FieldNames = append(def.FieldNames, field.Name())
			ty := tyFromAnnotation(field.TypeAnnotation())
			def.FieldTypes = append(def.FieldTypes, mir.ResolveType(ty, reg, false))
		}
		mod.Structs[def.Name] = def
	}

	for _, s := range f.SumTypeDecls() {
		def := &mir.SumTypeDef{Name: s.Name()}
		for _, v := range s.Variants() {
			variant := mir.SumTypeVariant{Name: v.Name()}
			for _, fieldNode := range v.Fields() {
				ty := tyFromAnnotation(cst.VariantFieldType(fieldNode))
				variant.Fields = append(variant.Fields, mir.ResolveType(ty, reg, false))
			}
			def.Variants = append(def.Variants, variant)
		}
		mod.SumTypes[def.Name] = def
	}

	return mod
}
