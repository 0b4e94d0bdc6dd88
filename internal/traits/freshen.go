package traits

import "github.com/snowlang/snow/internal/types"

// freshenTypeParams replaces every type parameter in ty with a fresh
// inference variable. A TyCon whose name is a single uppercase ASCII letter
// (A-Z) is treated as a type parameter; everything else (Int, List, a
// struct name) is concrete and left alone. A per-call param map ensures the
// same parameter name maps to the same fresh variable within one pass, so
// `impl Pair for (A, A)` still requires both slots to unify together.
func freshenTypeParams(ty types.Ty, ctx *types.InferCtx) types.Ty {
	paramMap := make(map[string]types.Ty)
	return freshenRecursive(ty, ctx, paramMap)
}

func freshenRecursive(ty types.Ty, ctx *types.InferCtx, paramMap map[string]types.Ty) types.Ty {
	switch t := ty.(type) {
	case types.TyCon:
		if isTypeParamName(t.Name) {
			if existing, ok := paramMap[t.Name]; ok {
				return existing
			}
			fresh := ctx.FreshVar()
			paramMap[t.Name] = fresh
			return fresh
		}
		return t
	case types.TyApp:
		con := freshenRecursive(t.Con, ctx, paramMap)
		args := make([]types.Ty, len(t.Args))
		for i, a := range t.Args {
			args[i] = freshenRecursive(a, ctx, paramMap)
		}
		return types.TyApp{Con: con, Args: args}
	case types.TyFun:
		params := make([]types.Ty, len(t.Params))
		for i, p := range t.Params {
			params[i] = freshenRecursive(p, ctx, paramMap)
		}
		ret := freshenRecursive(t.Ret, ctx, paramMap)
		return types.TyFun{Params: params, Ret: ret}
	case types.TyTuple:
		elems := make([]types.Ty, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = freshenRecursive(e, ctx, paramMap)
		}
		return types.TyTuple{Elems: elems}
	default:
		// TyVar and TyNever pass through unchanged.
		return ty
	}
}

func isTypeParamName(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}
