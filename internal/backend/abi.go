package backend

// Symbol names the extern-C entry point a runtime operation binds to. The
// backend contract never calls these directly — it only hands a consumer
// the stable name and signature so a real code generator and the actor
// runtime agree on linkage without either side hardcoding the other's
// internals.
type Symbol struct {
	Name   string
	Params []ValueRepr
	Ret    ValueRepr
}

// ABITable is the full set of runtime operations a compiled program may
// call into: allocation, string/collection intrinsics, and the actor
// primitives (spawn/send/receive/link/supervise). Grouped the way the
// reference ABI table is, by subsystem, so a missing entry is easy to spot
// next to its siblings.
type ABITable struct {
	Target  TargetInfo
	Symbols map[string]Symbol
}

// NewABITable builds the table for target, seeded with every operation the
// backend contract currently names.
func NewABITable(target TargetInfo) *ABITable {
	t := &ABITable{Target: target, Symbols: make(map[string]Symbol)}
	t.seedAlloc()
	t.seedString()
	t.seedActor()
	t.seedSupervisor()
	return t
}

func (t *ABITable) add(name string, params []ValueRepr, ret ValueRepr) {
	t.Symbols[name] = Symbol{Name: name, Params: params, Ret: ret}
}

func (t *ABITable) seedAlloc() {
	t.add("snow_alloc", []ValueRepr{ReprInt{}}, ReprPtr{})
	t.add("snow_alloc_struct", []ValueRepr{ReprInt{}, ReprInt{}}, ReprPtr{})
	t.add("snow_retain", []ValueRepr{ReprPtr{}}, ReprUnit{})
	t.add("snow_release", []ValueRepr{ReprPtr{}}, ReprUnit{})
}

func (t *ABITable) seedString() {
	t.add("snow_string_concat", []ValueRepr{ReprString{}, ReprString{}}, ReprString{})
	t.add("snow_string_eq", []ValueRepr{ReprString{}, ReprString{}}, ReprBool{})
	t.add("snow_string_len", []ValueRepr{ReprString{}}, ReprInt{})
	t.add("snow_int_to_string", []ValueRepr{ReprInt{}}, ReprString{})
	t.add("snow_float_to_string", []ValueRepr{ReprFloat{}}, ReprString{})
}

// seedActor binds the spawn/send/receive/self primitives every MIR
// ActorSpawn/ActorSend/ActorReceive/ActorSelf node lowers to.
func (t *ABITable) seedActor() {
	t.add("snow_actor_spawn", []ValueRepr{ReprPtr{}, ReprPtr{}, ReprInt{}}, ReprPid{})
	t.add("snow_actor_send", []ValueRepr{ReprPid{}, ReprPtr{}}, ReprUnit{})
	t.add("snow_actor_receive", []ValueRepr{ReprInt{}}, ReprPtr{})
	t.add("snow_actor_receive_timeout", []ValueRepr{ReprInt{}, ReprInt{}}, ReprPtr{})
	t.add("snow_actor_self", nil, ReprPid{})
	t.add("snow_actor_link", []ValueRepr{ReprPid{}}, ReprUnit{})
	t.add("snow_actor_unlink", []ValueRepr{ReprPid{}}, ReprUnit{})
	t.add("snow_actor_monitor", []ValueRepr{ReprPid{}}, ReprInt{})
	t.add("snow_actor_exit", []ValueRepr{ReprPid{}, ReprPtr{}}, ReprUnit{})
	t.add("snow_job_async", []ValueRepr{ReprClosure{}}, ReprPtr{})
	t.add("snow_job_await", []ValueRepr{ReprPtr{}}, ReprPtr{})
	t.add("snow_job_await_timeout", []ValueRepr{ReprPtr{}, ReprInt{}}, ReprPtr{})
}

func (t *ABITable) seedSupervisor() {
	t.add("snow_supervisor_start", []ValueRepr{ReprPtr{}, ReprInt{}, ReprInt{}}, ReprPid{})
	t.add("snow_supervisor_start_child", []ValueRepr{ReprPid{}, ReprPtr{}}, ReprPid{})
	t.add("snow_registry_register", []ValueRepr{ReprString{}, ReprPid{}}, ReprBool{})
	t.add("snow_registry_whereis", []ValueRepr{ReprString{}}, ReprPid{})
}

// Lookup returns the symbol bound to name, if any.
func (t *ABITable) Lookup(name string) (Symbol, bool) {
	s, ok := t.Symbols[name]
	return s, ok
}
