package semantic

import "github.com/eggscript/egg/internal/types"

// populateBuiltins seeds the root scope with the signatures of spec.md
// 4.5.6's pre-populated built-ins, so that calls to them type-check the
// same way a call to a user-defined function would.
func populateBuiltins(root *SymbolTable) {
	any := types.New(types.Any)
	str := types.New(types.String)
	boolT := types.New(types.Bool)
	void := types.New(types.Void)

	root.Declare(&Symbol{
		Kind: Builtin, Name: "print",
		Type: types.NewFunction(void, []types.Param{
			{Name: "values", Type: any, Flags: types.Variadic},
		}),
	})
	root.Declare(&Symbol{
		Kind: Builtin, Name: "assert",
		Type: types.NewFunction(void, []types.Param{
			// Predicate marks this parameter as the surface that triggers
			// promotion of a bare comparison argument into a Predicate node
			// (spec.md 4.5.6); it is never settable from source syntax.
			{Name: "condition", Type: boolT, Flags: types.Required | types.Predicate},
		}),
	})
	root.Declare(&Symbol{
		Kind: Builtin, Name: "string",
		Type: types.NewFunction(str, []types.Param{
			{Name: "values", Type: any, Flags: types.Variadic},
		}),
	})
	root.Declare(&Symbol{
		Kind: Builtin, Name: "type",
		Type: types.NewFunction(str, []types.Param{
			{Name: "value", Type: any, Flags: types.Required},
		}),
	})
}

// StringMethods describes the signature of each virtual method spec.md
// 4.5.6 exposes on String instances, looked up by the preparer when
// checking a dot-call on a string-typed receiver. `length` is a
// computed property rather than a call and is handled separately.
var StringMethods = func() map[string]*types.Type {
	str := types.New(types.String)
	boolT := types.New(types.Bool)
	intT := types.New(types.Int)
	any := types.New(types.Any)
	strOrNull := types.New(types.String | types.Null)

	fn := func(ret *types.Type, params ...types.Param) *types.Type {
		return types.NewFunction(ret, params)
	}
	req := func(name string, t *types.Type) types.Param {
		return types.Param{Name: name, Type: t, Flags: types.Required}
	}
	opt := func(name string, t *types.Type) types.Param {
		return types.Param{Name: name, Type: t}
	}

	return map[string]*types.Type{
		"hashCode":      fn(intT),
		"toString":      fn(str),
		"contains":      fn(boolT, req("s", str)),
		"compare":       fn(intT, req("s", str)),
		"startsWith":    fn(boolT, req("s", str)),
		"endsWith":      fn(boolT, req("s", str)),
		"indexOf":       fn(intT, req("s", str)),
		"lastIndexOf":   fn(intT, req("s", str)),
		"join":          fn(str, types.Param{Name: "parts", Type: any, Flags: types.Variadic}),
		"split":         fn(types.New(types.Object), req("sep", str)),
		"slice":         fn(str, req("begin", intT), opt("end", types.New(types.Int|types.Null))),
		"repeat":        fn(str, req("n", intT)),
		"replace":       fn(str, req("needle", str), req("repl", str), opt("count", types.New(types.Int|types.Null))),
		"padLeft":       fn(str, req("len", intT), opt("pad", strOrNull)),
		"padRight":      fn(str, req("len", intT), opt("pad", strOrNull)),
	}
}()
