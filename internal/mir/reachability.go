package mir

// Monomorphize prunes module.Functions down to the set reachable from the
// entry function (or keeps everything if there is no entry, e.g. a library
// module compiled standalone). By the time MIR lowering runs, the type
// checker has already resolved every generic to a concrete instantiation,
// so this pass is purely a reachability sweep rather than a specialization
// pass.
func Monomorphize(module *MirModule) {
	reachable := collectReachableFunctions(module)
	for name := range module.Functions {
		if !reachable[name] {
			delete(module.Functions, name)
		}
	}
}

func collectReachableFunctions(module *MirModule) map[string]bool {
	reachable := make(map[string]bool)
	var worklist []string

	if module.EntryFunction != "" {
		worklist = append(worklist, module.EntryFunction)
	} else {
		for name := range module.Functions {
			worklist = append(worklist, name)
		}
	}

	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if reachable[name] {
			continue
		}
		reachable[name] = true

		// A service's dispatch loop references its handlers only through
		// the dispatch table, never from its own (placeholder) body.
		if handlers, ok := module.ServiceDispatch[name]; ok {
			for _, d := range handlers.CallHandlers {
				if !reachable[d.HandlerFn] {
					worklist = append(worklist, d.HandlerFn)
				}
			}
			for _, d := range handlers.CastHandlers {
				if !reachable[d.HandlerFn] {
					worklist = append(worklist, d.HandlerFn)
				}
			}
		}

		// An actor wrapper function (single __args_ptr param) calls its
		// body function by the naming convention __actor_{name}_body,
		// never by a MIR-level reference.
		if fn, ok := module.Functions[name]; ok {
			if len(fn.ParamNames) == 1 && fn.ParamNames[0] == "__args_ptr" {
				bodyName := "__actor_" + name + "_body"
				if _, exists := module.Functions[bodyName]; exists && !reachable[bodyName] {
					worklist = append(worklist, bodyName)
				}
			}
		}

		if fn, ok := module.Functions[name]; ok && fn.Body != nil {
			var refs []string
			collectFunctionRefs(fn.Body, &refs)
			for _, r := range refs {
				if !reachable[r] {
					worklist = append(worklist, r)
				}
			}
		}
	}

	return reachable
}

// collectFunctionRefs walks expr recording every function name it might
// invoke: direct calls, closure creation sites, variant construction
// helpers referenced by name, iterator protocol functions, and child-spec
// start functions. A Var node counts as a possible function reference too
// — the same identifier resolves to either a local binding or a top-level
// function depending on scope, and reachability errs toward over-keeping.
func collectFunctionRefs(expr MirExpr, refs *[]string) {
	switch e := expr.(type) {
	case Call:
		*refs = append(*refs, e.Fn)
		for _, a := range e.Args {
			collectFunctionRefs(a, refs)
		}
	case ClosureCall:
		collectFunctionRefs(e.Callee, refs)
		for _, a := range e.Args {
			collectFunctionRefs(a, refs)
		}
	case MakeClosure:
		*refs = append(*refs, e.Fn)
		for _, c := range e.Env {
			collectFunctionRefs(c, refs)
		}
	case BinOp:
		collectFunctionRefs(e.Left, refs)
		collectFunctionRefs(e.Right, refs)
	case UnaryOp:
		collectFunctionRefs(e.Operand, refs)
	case If:
		collectFunctionRefs(e.Cond, refs)
		collectFunctionRefs(e.Then, refs)
		collectFunctionRefs(e.Else, refs)
	case Let:
		collectFunctionRefs(e.Value, refs)
		collectFunctionRefs(e.Body, refs)
	case Block:
		for _, x := range e.Exprs {
			collectFunctionRefs(x, refs)
		}
	case Match:
		collectFunctionRefs(e.Scrutinee, refs)
		for _, arm := range e.Arms {
			if arm.Guard != nil {
				collectFunctionRefs(arm.Guard, refs)
			}
			collectFunctionRefs(arm.Body, refs)
		}
	case StructLit:
		for _, v := range e.Fields {
			collectFunctionRefs(v, refs)
		}
	case StructUpdate:
		collectFunctionRefs(e.Base, refs)
		for _, v := range e.Fields {
			collectFunctionRefs(v, refs)
		}
	case FieldAccess:
		collectFunctionRefs(e.Base, refs)
	case ConstructVariant:
		for _, a := range e.Args {
			collectFunctionRefs(a, refs)
		}
	case Return:
		collectFunctionRefs(e.Value, refs)
	case Var:
		*refs = append(*refs, e.Name)
	case IntLit, FloatLit, BoolLit, StringLit, Unit:
		// no references
	case Panic:
		collectFunctionRefs(e.Message, refs)
	case ActorSpawn:
		*refs = append(*refs, e.ActorName)
		for _, a := range e.Args {
			collectFunctionRefs(a, refs)
		}
	case ActorSend:
		collectFunctionRefs(e.Target, refs)
		collectFunctionRefs(e.Message, refs)
	case ActorReceive:
		for _, arm := range e.Arms {
			if arm.Guard != nil {
				collectFunctionRefs(arm.Guard, refs)
			}
			collectFunctionRefs(arm.Body, refs)
		}
		if e.Timeout != nil {
			collectFunctionRefs(e.Timeout, refs)
		}
		if e.After != nil {
			collectFunctionRefs(e.After, refs)
		}
	case ActorSelf:
		// no references
	case ActorLink:
		collectFunctionRefs(e.Target, refs)
	case ListLit:
		for _, el := range e.Elems {
			collectFunctionRefs(el, refs)
		}
	case SupervisorStart:
		for _, child := range e.Children {
			if child.StartFn != "" {
				*refs = append(*refs, child.StartFn)
			}
			for _, a := range child.Args {
				collectFunctionRefs(a, refs)
			}
		}
	case While:
		collectFunctionRefs(e.Cond, refs)
		collectFunctionRefs(e.Body, refs)
	case Break, Continue:
		// no references
	case ForInRange:
		collectFunctionRefs(e.Start, refs)
		collectFunctionRefs(e.End, refs)
		collectFunctionRefs(e.Body, refs)
	case ForInList:
		collectFunctionRefs(e.List, refs)
		collectFunctionRefs(e.Body, refs)
	case ForInMap:
		collectFunctionRefs(e.Map, refs)
		collectFunctionRefs(e.Body, refs)
	case ForInSet:
		collectFunctionRefs(e.Set, refs)
		collectFunctionRefs(e.Body, refs)
	case ForInIterator:
		collectFunctionRefs(e.Source, refs)
		collectFunctionRefs(e.Body, refs)
		*refs = append(*refs, e.NextFn)
		if e.IterFn != "" {
			*refs = append(*refs, e.IterFn)
		}
	case TailCall:
		for _, a := range e.Args {
			collectFunctionRefs(a, refs)
		}
	}
}
