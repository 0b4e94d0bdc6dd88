package backend

import "github.com/snowlang/snow/internal/mir"

// LayoutKind classifies how a sum type's payload is stored after the tag
// byte, mirroring the three shapes create_sum_type_layout distinguishes.
type LayoutKind int

const (
	// LayoutTagOnly covers enums with no variant carrying data: {u8 tag}.
	LayoutTagOnly LayoutKind = iota
	// LayoutPtr covers the common case where every variant with data
	// carries exactly one pointer-sized field (a Box<T> or string):
	// {u8 tag, ptr}.
	LayoutPtr
	// LayoutBytes covers mixed-shape variants, where the widest variant's
	// overlay is stored inline as raw bytes: {u8 tag, [N]byte}.
	LayoutBytes
)

// Layout is the decided in-memory shape of a sum type.
type Layout struct {
	Kind    LayoutKind
	NBytes  int // only meaningful when Kind == LayoutBytes
}

// SumTypeLayout decides how def is represented in memory. It is a direct
// port of create_sum_type_layout's decision tree: first it checks whether
// every variant is either empty or carries exactly one pointer-shaped
// field, in which case the sum type reuses the tagged-pointer shape every
// Box/Option/Result instance already needs. Otherwise it computes, for
// each variant, the byte size of a {tag, field...} overlay struct and
// takes the widest one as the inline payload size.
func SumTypeLayout(def *mir.SumTypeDef, target TargetInfo) Layout {
	hasPayload := false
	allSinglePtr := true
	for _, v := range def.Variants {
		if len(v.Fields) == 0 {
			continue
		}
		hasPayload = true
		if len(v.Fields) != 1 || !isPtrShaped(v.Fields[0]) {
			allSinglePtr = false
		}
	}

	if allSinglePtr {
		if hasPayload {
			return Layout{Kind: LayoutPtr}
		}
		return Layout{Kind: LayoutTagOnly}
	}

	maxOverlay := 0
	for _, v := range def.Variants {
		n := variantOverlaySize(v, target)
		if n > maxOverlay {
			maxOverlay = n
		}
	}

	if maxOverlay <= 1 {
		return Layout{Kind: LayoutTagOnly}
	}
	return Layout{Kind: LayoutBytes, NBytes: maxOverlay - 1}
}

func isPtrShaped(ty mir.MirType) bool {
	switch ty.(type) {
	case mir.MirString, mir.MirPtr, mir.MirStruct, mir.MirSumType, mir.MirFnPtr:
		return true
	default:
		return false
	}
}

// variantOverlaySize builds the per-variant {tag, field0, field1, ...}
// overlay struct used for GEP-style reinterpretation (variant_struct_type
// in the reference implementation) and returns its total byte size
// including the leading tag byte.
func variantOverlaySize(v mir.SumTypeVariant, target TargetInfo) int {
	fields := variantStructType(v)
	size, _ := structLayout(fields, target)
	return size
}

// variantStructType returns the field list of the overlay struct a
// variant's payload is reinterpreted as: a leading tag byte followed by
// one ValueRepr per declared field, in declaration order.
func variantStructType(v mir.SumTypeVariant) []ValueRepr {
	fields := make([]ValueRepr, 0, len(v.Fields)+1)
	fields = append(fields, ReprBool{}) // tag byte; ReprBool sizes to 1
	for _, f := range v.Fields {
		fields = append(fields, ReprOf(f))
	}
	return fields
}
