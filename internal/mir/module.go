package mir

// MirFunction is a single monomorphized top-level function: its name
// already mangled if it's a generic instantiation.
type MirFunction struct {
	Name       string
	ParamNames []string
	ParamTypes []MirType
	RetType    MirType
	Body       MirExpr
}

type SumTypeVariant struct {
	Name   string
	Fields []MirType
}

type SumTypeDef struct {
	Name     string
	Variants []SumTypeVariant
}

type StructDef struct {
	Name       string
	FieldNames []string
	FieldTypes []MirType
}

// DispatchEntry maps a service-handler message name to the function that
// implements it.
type DispatchEntry struct {
	MessageName string
	HandlerFn   string
}

// ServiceHandlers splits a service's dispatch table by call-vs-cast
// semantics: call handlers reply to the caller, cast handlers don't.
type ServiceHandlers struct {
	CallHandlers []DispatchEntry
	CastHandlers []DispatchEntry
}

// MirModule is the fully lowered, monomorphized program ready for the
// backend contract.
type MirModule struct {
	Functions       map[string]*MirFunction
	Structs         map[string]*StructDef
	SumTypes        map[string]*SumTypeDef
	EntryFunction   string
	ServiceDispatch map[string]ServiceHandlers
}

func NewModule() *MirModule {
	return &MirModule{
		Functions:       make(map[string]*MirFunction),
		Structs:         make(map[string]*StructDef),
		SumTypes:        make(map[string]*SumTypeDef),
		ServiceDispatch: make(map[string]ServiceHandlers),
	}
}
