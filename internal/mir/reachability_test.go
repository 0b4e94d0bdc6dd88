package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonomorphizeKeepsReachableFunctions(t *testing.T) {
	module := NewModule()
	module.Functions["main"] = &MirFunction{
		Name:    "main",
		RetType: MirInt{},
		Body: Call{
			exprBase: exprBase{Ty: MirInt{}},
			Fn:       "helper",
		},
	}
	module.Functions["helper"] = &MirFunction{
		Name:    "helper",
		RetType: MirInt{},
		Body:    IntLit{exprBase: exprBase{Ty: MirInt{}}, Value: 42},
	}
	module.Functions["unused"] = &MirFunction{
		Name:    "unused",
		RetType: MirInt{},
		Body:    IntLit{exprBase: exprBase{Ty: MirInt{}}, Value: 0},
	}
	module.EntryFunction = "main"

	Monomorphize(module)

	assert.Contains(t, module.Functions, "main")
	assert.Contains(t, module.Functions, "helper")
	assert.NotContains(t, module.Functions, "unused")
}

func TestMonomorphizeKeepsAllWithoutEntry(t *testing.T) {
	module := NewModule()
	module.Functions["foo"] = &MirFunction{Name: "foo", RetType: MirUnit{}, Body: Unit{}}
	module.Functions["bar"] = &MirFunction{Name: "bar", RetType: MirUnit{}, Body: Unit{}}

	Monomorphize(module)

	assert.Len(t, module.Functions, 2)
}

func TestMonomorphizeKeepsServiceDispatchHandlers(t *testing.T) {
	module := NewModule()
	module.Functions["Counter_loop"] = &MirFunction{Name: "Counter_loop", RetType: MirUnit{}, Body: Unit{}}
	module.Functions["Counter_get"] = &MirFunction{Name: "Counter_get", RetType: MirInt{}, Body: IntLit{Value: 0}}
	module.Functions["unused"] = &MirFunction{Name: "unused", RetType: MirUnit{}, Body: Unit{}}
	module.EntryFunction = "Counter_loop"
	module.ServiceDispatch["Counter_loop"] = ServiceHandlers{
		CallHandlers: []DispatchEntry{{MessageName: "get", HandlerFn: "Counter_get"}},
	}

	Monomorphize(module)

	assert.Contains(t, module.Functions, "Counter_get")
	assert.NotContains(t, module.Functions, "unused")
}

func TestMonomorphizeKeepsActorBodyWrapper(t *testing.T) {
	module := NewModule()
	module.Functions["Counter"] = &MirFunction{
		Name:       "Counter",
		ParamNames: []string{"__args_ptr"},
		RetType:    MirUnit{},
		Body:       Unit{},
	}
	module.Functions["__actor_Counter_body"] = &MirFunction{Name: "__actor_Counter_body", RetType: MirUnit{}, Body: Unit{}}
	module.EntryFunction = "Counter"

	Monomorphize(module)

	assert.Contains(t, module.Functions, "__actor_Counter_body")
}
