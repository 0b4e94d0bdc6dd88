package types

// InferCtx is Snow's Hindley-Milner inference context. Unlike the classic
// substitution-map unifier, it holds a union-find table keyed by TyVar so
// resolve/unify run in near-constant amortized time and never need to walk
// or rebuild a substitution after every unification step.
type InferCtx struct {
	// parent[v] == v means v is its own representative (unbound, or bound
	// to a concrete type stored in bound[v]).
	parent []TyVar
	rank   []uint8
	bound  []Ty // bound[find(v)] is the type v resolves to, or nil if unbound

	// varLevels[v] records the let-binding nesting depth at which v was
	// created; generalize only quantifies over variables created at a
	// level deeper than the one currently being generalized.
	varLevels []uint32

	currentLevel uint32

	Errors []*TypeError
}

// NewInferCtx returns an empty inference context at level 0.
func NewInferCtx() *InferCtx {
	return &InferCtx{}
}

// FreshVar allocates a new unbound type variable at the current level.
func (c *InferCtx) FreshVar() TyVar {
	v := TyVar(len(c.parent))
	c.parent = append(c.parent, v)
	c.rank = append(c.rank, 0)
	c.bound = append(c.bound, nil)
	c.varLevels = append(c.varLevels, c.currentLevel)
	return v
}

// find returns the union-find representative of v, compressing the path as
// it walks.
func (c *InferCtx) find(v TyVar) TyVar {
	if c.parent[v] == v {
		return v
	}
	root := c.find(c.parent[v])
	c.parent[v] = root
	return root
}

// union merges the equivalence classes of a and b, preferring the lower-
// level (older) variable's level so generalize still sees the tightest
// scope. Returns the surviving representative.
func (c *InferCtx) union(a, b TyVar) TyVar {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return ra
	}
	if c.varLevels[ra] > c.varLevels[rb] {
		c.varLevels[ra] = c.varLevels[rb]
	} else {
		c.varLevels[rb] = c.varLevels[ra]
	}
	switch {
	case c.rank[ra] < c.rank[rb]:
		c.parent[ra] = rb
		return rb
	case c.rank[ra] > c.rank[rb]:
		c.parent[rb] = ra
		return ra
	default:
		c.parent[rb] = ra
		c.rank[ra]++
		return ra
	}
}

// bindVar records that v resolves to ty. v must currently be unbound.
func (c *InferCtx) bindVar(v TyVar, ty Ty) {
	root := c.find(v)
	c.bound[root] = ty
}

// Resolve follows ty to a normal form: every bound TyVar is replaced by
// what it's bound to, recursively, and every unbound TyVar is replaced by
// its union-find representative (so two vars in the same class print and
// compare identically).
func (c *InferCtx) Resolve(ty Ty) Ty {
	switch t := ty.(type) {
	case TyVar:
		root := c.find(t)
		if b := c.bound[root]; b != nil {
			resolved := c.Resolve(b)
			// Path-compress through chains of bound variables.
			c.bound[root] = resolved
			return resolved
		}
		return root
	case TyApp:
		args := make([]Ty, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.Resolve(a)
		}
		return TyApp{Con: c.Resolve(t.Con), Args: args}
	case TyFun:
		params := make([]Ty, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.Resolve(p)
		}
		return TyFun{Params: params, Ret: c.Resolve(t.Ret)}
	case TyTuple:
		elems := make([]Ty, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.Resolve(e)
		}
		return TyTuple{Elems: elems}
	default:
		return ty
	}
}

// OccursIn reports whether v occurs free in ty, following bound variables.
// Used before binding a variable to a compound type, to reject infinite
// types like `a = (a) -> Int`.
func (c *InferCtx) OccursIn(v TyVar, ty Ty) bool {
	switch t := ty.(type) {
	case TyVar:
		root := c.find(t)
		if root == c.find(v) {
			return true
		}
		if b := c.bound[root]; b != nil {
			return c.OccursIn(v, b)
		}
		return false
	case TyApp:
		if c.OccursIn(v, t.Con) {
			return true
		}
		for _, a := range t.Args {
			if c.OccursIn(v, a) {
				return true
			}
		}
		return false
	case TyFun:
		for _, p := range t.Params {
			if c.OccursIn(v, p) {
				return true
			}
		}
		return c.OccursIn(v, t.Ret)
	case TyTuple:
		for _, e := range t.Elems {
			if c.OccursIn(v, e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify makes a and b equal, recording a TypeError and returning false if
// they can't be. Never is a bottom type and unifies with anything.
func (c *InferCtx) Unify(a, b Ty, origin ConstraintOrigin) bool {
	a = c.shallowResolve(a)
	b = c.shallowResolve(b)

	switch av := a.(type) {
	case TyVar:
		if bv, ok := b.(TyVar); ok {
			if c.find(av) == c.find(bv) {
				return true
			}
			c.union(av, bv)
			return true
		}
		return c.unifyVarValue(av, b, origin)
	case TyNever:
		return true
	}
	if _, ok := b.(TyVar); ok {
		return c.unifyVarValue(b.(TyVar), a, origin)
	}
	if _, ok := b.(TyNever); ok {
		return true
	}

	switch av := a.(type) {
	case TyCon:
		bv, ok := b.(TyCon)
		if !ok || av.Name != bv.Name {
			c.errorf(mismatchErr(a, b, origin))
			return false
		}
		return true
	case TyFun:
		bv, ok := b.(TyFun)
		if !ok {
			c.errorf(mismatchErr(a, b, origin))
			return false
		}
		if len(av.Params) != len(bv.Params) {
			c.errorf(arityMismatchErr(len(av.Params), len(bv.Params), origin))
			return false
		}
		ok2 := true
		for i := range av.Params {
			if !c.Unify(av.Params[i], bv.Params[i], origin) {
				ok2 = false
			}
		}
		if !c.Unify(av.Ret, bv.Ret, origin) {
			ok2 = false
		}
		return ok2
	case TyApp:
		bv, ok := b.(TyApp)
		if !ok {
			c.errorf(mismatchErr(a, b, origin))
			return false
		}
		if !c.Unify(av.Con, bv.Con, origin) {
			return false
		}
		if len(av.Args) != len(bv.Args) {
			c.errorf(arityMismatchErr(len(av.Args), len(bv.Args), origin))
			return false
		}
		ok2 := true
		for i := range av.Args {
			if !c.Unify(av.Args[i], bv.Args[i], origin) {
				ok2 = false
			}
		}
		return ok2
	case TyTuple:
		bv, ok := b.(TyTuple)
		if !ok {
			c.errorf(mismatchErr(a, b, origin))
			return false
		}
		if len(av.Elems) != len(bv.Elems) {
			c.errorf(arityMismatchErr(len(av.Elems), len(bv.Elems), origin))
			return false
		}
		ok2 := true
		for i := range av.Elems {
			if !c.Unify(av.Elems[i], bv.Elems[i], origin) {
				ok2 = false
			}
		}
		return ok2
	default:
		c.errorf(mismatchErr(a, b, origin))
		return false
	}
}

// shallowResolve follows only enough bound TyVars to reach either an
// unbound var or a concrete shape, without recursing into children the way
// Resolve does. Unify needs this at every step so it keeps comparing
// representatives, not stale copies.
func (c *InferCtx) shallowResolve(ty Ty) Ty {
	v, ok := ty.(TyVar)
	if !ok {
		return ty
	}
	root := c.find(v)
	if b := c.bound[root]; b != nil {
		return c.shallowResolve(b)
	}
	return root
}

func (c *InferCtx) unifyVarValue(v TyVar, ty Ty, origin ConstraintOrigin) bool {
	if c.OccursIn(v, ty) {
		c.errorf(infiniteTypeErr(v, ty, origin))
		return false
	}
	c.bindVar(v, ty)
	return true
}

func (c *InferCtx) errorf(err *TypeError) {
	c.Errors = append(c.Errors, err)
}

// EnterLevel descends into a new let-binding scope. Type variables created
// after this call are only generalizable by a LeaveLevel+Generalize pair
// that brackets them.
func (c *InferCtx) EnterLevel() {
	c.currentLevel++
}

// LeaveLevel returns to the enclosing scope.
func (c *InferCtx) LeaveLevel() {
	c.currentLevel--
}

// CurrentLevel reports the active nesting depth.
func (c *InferCtx) CurrentLevel() uint32 {
	return c.currentLevel
}

// Generalize turns a monomorphic type into a Scheme by quantifying over
// every free variable created deeper than the current level — the ones
// local to the let-bound expression, not shared with its enclosing scope.
func (c *InferCtx) Generalize(ty Ty) Scheme {
	resolved := c.Resolve(ty)
	var vars []TyVar
	seen := make(map[TyVar]bool)
	c.collectGeneralizableVars(resolved, seen, &vars)
	return Scheme{Vars: vars, Ty: resolved}
}

func (c *InferCtx) collectGeneralizableVars(ty Ty, seen map[TyVar]bool, out *[]TyVar) {
	switch t := ty.(type) {
	case TyVar:
		root := c.find(t)
		if c.bound[root] != nil {
			c.collectGeneralizableVars(c.bound[root], seen, out)
			return
		}
		if c.varLevels[root] > c.currentLevel && !seen[root] {
			seen[root] = true
			*out = append(*out, root)
		}
	case TyApp:
		c.collectGeneralizableVars(t.Con, seen, out)
		for _, a := range t.Args {
			c.collectGeneralizableVars(a, seen, out)
		}
	case TyFun:
		for _, p := range t.Params {
			c.collectGeneralizableVars(p, seen, out)
		}
		c.collectGeneralizableVars(t.Ret, seen, out)
	case TyTuple:
		for _, e := range t.Elems {
			c.collectGeneralizableVars(e, seen, out)
		}
	}
}

// Instantiate replaces every quantified variable in a Scheme with a fresh
// one, so each call site of a polymorphic binding gets its own unification
// variables instead of sharing the defining site's.
func (c *InferCtx) Instantiate(s Scheme) Ty {
	if len(s.Vars) == 0 {
		return s.Ty
	}
	sub := make(map[TyVar]Ty, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = c.FreshVar()
	}
	return c.applySubstitution(s.Ty, sub)
}

func (c *InferCtx) applySubstitution(ty Ty, sub map[TyVar]Ty) Ty {
	switch t := ty.(type) {
	case TyVar:
		if repl, ok := sub[c.find(t)]; ok {
			return repl
		}
		return t
	case TyApp:
		args := make([]Ty, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.applySubstitution(a, sub)
		}
		return TyApp{Con: c.applySubstitution(t.Con, sub), Args: args}
	case TyFun:
		params := make([]Ty, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.applySubstitution(p, sub)
		}
		return TyFun{Params: params, Ret: c.applySubstitution(t.Ret, sub)}
	case TyTuple:
		elems := make([]Ty, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.applySubstitution(e, sub)
		}
		return TyTuple{Elems: elems}
	default:
		return ty
	}
}
