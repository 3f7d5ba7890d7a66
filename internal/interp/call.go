package interp

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
)

// evalCall evaluates a call expression: the `keyword(args)` cast form
// (evalCast: `string(...)` joins its arguments' string forms, `int` and
// `float` convert, `bool` accepts only a Bool, and any other keyword
// passes a single argument through), a builtin/native call, a user
// function call, a generator instantiation, or a generator resume.
func (ev *Evaluator) evalCall(scope *Scope, c *ast.Call) Value {
	if ref, ok := c.Callee.(*ast.TypeRef); ok {
		return ev.evalCast(scope, ref, c.Args)
	}
	if id, ok := c.Callee.(*ast.Identifier); ok && id.Name == "assert" && len(c.Args) == 1 {
		if pred, ok := c.Args[0].Value.(*ast.Predicate); ok {
			return ev.evalAssertPredicate(scope, pred)
		}
	}
	callee := ev.evalExpr(scope, c.Callee)
	args := ev.evalArgs(scope, c.Args)
	return ev.invoke(callee, args)
}

// evalAssertPredicate implements the enriched form of assert(a CMP b):
// the comparison's operands are evaluated once, the comparison result
// decides the outcome, and a failure's exception carries left,
// operator, and right fields (spec.md 4.5.6).
func (ev *Evaluator) evalAssertPredicate(scope *Scope, pred *ast.Predicate) Value {
	bin := pred.Comparison
	left := ev.evalExpr(scope, bin.Left)
	right := ev.evalExpr(scope, bin.Right)
	result := ev.compareValues(bin.Op, left, right)
	if truthy(result) {
		return VoidValue
	}
	exc := NewException(ev.basket, "Assertion is untrue", ev.loc, map[string]Value{
		"left":     left,
		"operator": String(bin.Op.String()),
		"right":    right,
	})
	panic(exceptionSignal{value: exc})
}

func (ev *Evaluator) compareValues(op lexer.TokenType, left, right Value) Value {
	switch op {
	case lexer.EQ:
		return Bool(valuesEqual(left, right))
	case lexer.NE:
		return Bool(!valuesEqual(left, right))
	default:
		return ev.compareOrdered(op, left, right)
	}
}

func (ev *Evaluator) invoke(callee Value, args []Value) Value {
	switch fn := callee.(type) {
	case *NativeFunction:
		return fn.Fn(ev, args)
	case *UserFunction:
		return ev.callUserFunction(fn, args)
	case *GeneratorFunc:
		return newGenerator(ev, fn, args)
	case *Generator:
		return fn.resume()
	default:
		ev.throwf("%s is not callable", callee.Type())
		return NullValue
	}
}

// evalArgs evaluates a call's argument list left to right (spec.md
// §5: "argument evaluation is strictly left-to-right"), flattening a
// `...e` spread argument into its iterated elements.
func (ev *Evaluator) evalArgs(scope *Scope, args []ast.Argument) []Value {
	var out []Value
	for _, a := range args {
		if u, ok := a.Value.(*ast.Unary); ok && u.Op == lexer.SPREAD {
			out = append(out, ev.iterate(ev.evalExpr(scope, u.Operand))...)
			continue
		}
		out = append(out, ev.evalExpr(scope, a.Value))
	}
	return out
}

// bindParams declares each parameter in scope, packing a trailing
// variadic parameter into an Array of the remaining arguments (spec.md
// 4.3.2's `...` marker).
func (ev *Evaluator) bindParams(scope *Scope, params []ast.Param, args []Value) {
	for i, p := range params {
		if p.Variadic {
			var rest []Value
			if i < len(args) {
				rest = append(rest, args[i:]...)
			}
			scope.Declare(p.Name, NewArray(ev.basket, rest))
			return
		}
		if i < len(args) {
			scope.Declare(p.Name, args[i])
		} else {
			scope.Declare(p.Name, NullValue)
		}
	}
}

func (ev *Evaluator) callUserFunction(fn *UserFunction, args []Value) Value {
	scope := fn.Closure.Nested()
	ev.bindParams(scope, fn.Params, args)
	fc := ev.execBlock(scope, fn.Body)
	if fc.Kind == FlowReturn {
		return fc.Value
	}
	return VoidValue
}

func (ev *Evaluator) evalCast(scope *Scope, ref *ast.TypeRef, args []ast.Argument) Value {
	vals := ev.evalArgs(scope, args)
	switch ref.Name {
	case "string":
		return String(ev.joinStrings(vals))
	case "int":
		return castToInt(ev, vals[0])
	case "float":
		return castToFloat(ev, vals[0])
	case "bool":
		b, ok := vals[0].(Bool)
		if !ok {
			ev.throwf("cannot convert %s to bool", vals[0].Type())
		}
		return b
	default:
		if len(vals) == 1 {
			return vals[0]
		}
		return VoidValue
	}
}

func (ev *Evaluator) joinStrings(vals []Value) string {
	s := ""
	for _, v := range vals {
		s += ev.stringify(v)
	}
	return s
}

func castToInt(ev *Evaluator, v Value) Value {
	switch n := v.(type) {
	case Int:
		return n
	case Float:
		return Int(n)
	default:
		ev.throwf("cannot convert %s to int", v.Type())
		return Int(0)
	}
}

func castToFloat(ev *Evaluator, v Value) Value {
	switch n := v.(type) {
	case Float:
		return n
	case Int:
		return Float(n)
	default:
		ev.throwf("cannot convert %s to float", v.Type())
		return Float(0)
	}
}

// evalIndex implements `a[i]` reads (spec.md 3.5, 4.5.7).
func (ev *Evaluator) evalIndex(scope *Scope, ix *ast.Index) Value {
	target := ev.evalExpr(scope, ix.Target)
	key := ev.evalExpr(scope, ix.Key)
	switch t := target.(type) {
	case *Array:
		return t.Get(int64(mustInt(ev, key)))
	case String:
		runes := []rune(string(t))
		i := int64(mustInt(ev, key))
		if i < 0 || i >= int64(len(runes)) {
			ev.throwf("string index out of range")
		}
		return String(runes[i])
	}
	if dict, ok := asDict(target); ok {
		v, _ := dict.Get(ev.stringify(key))
		return v
	}
	ev.throwf("%s is not indexable", target.Type())
	return NullValue
}

// evalDot implements `a.b` reads: string virtual methods, `.length`,
// static accessors (`string.from`, `type.of`), and dictionary/array
// property access (spec.md 4.5.6, 4.5.7).
func (ev *Evaluator) evalDot(scope *Scope, d *ast.Dot) Value {
	if ref, ok := d.Target.(*ast.TypeRef); ok {
		return ev.evalStaticAccessor(ref, d.Property)
	}
	target := ev.evalExpr(scope, d.Target)
	if d.NullSafe && isNullish(target) {
		return NullValue
	}
	switch t := target.(type) {
	case String:
		if d.Property == "length" {
			return Int(len([]rune(string(t))))
		}
		return ev.bindStringMethod(t, d.Property)
	case *Array:
		if d.Property == "length" {
			return Int(len(t.Elements))
		}
		ev.throwf("array has no property %q", d.Property)
	}
	if dict, ok := asDict(target); ok {
		v, _ := dict.Get(d.Property)
		return v
	}
	ev.throwf("%s has no property %q", target.Type(), d.Property)
	return NullValue
}

func (ev *Evaluator) evalStaticAccessor(ref *ast.TypeRef, property string) Value {
	switch {
	case ref.Name == "string" && property == "from":
		return &NativeFunction{Name: "string.from", Fn: func(ev *Evaluator, args []Value) Value {
			return String(ev.stringify(args[0]))
		}}
	case ref.Name == "type" && property == "of":
		return &NativeFunction{Name: "type.of", Fn: builtinType}
	default:
		ev.throwf("%q has no static property %q", ref.Name, property)
		return NullValue
	}
}

// bindStringMethod returns a zero-argument-bound-receiver native
// callable for `s.method`, since E's calls are uniform `callee(args)`
// and the receiver has already been evaluated by the time Dot runs.
func (ev *Evaluator) bindStringMethod(recv String, name string) Value {
	return &NativeFunction{Name: "string." + name, Fn: func(ev *Evaluator, args []Value) Value {
		v, err := ev.stringMethod(recv, name, args)
		if err != nil {
			ev.throwf("%s", err)
		}
		return v
	}}
}

// iterate implements foreach's collection dispatch (spec.md 4.5.4):
// strings yield codepoints, arrays yield elements, dictionaries yield
// KeyValue pairs, and any other object is driven through repeated
// calls to its `iterate()` method until it returns Void.
func (ev *Evaluator) iterate(v Value) []Value {
	switch t := v.(type) {
	case String:
		runes := []rune(string(t))
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = String(r)
		}
		return out
	case *Array:
		return append([]Value(nil), t.Elements...)
	case *KeyValue:
		return []Value{t}
	case *Generator:
		var out []Value
		for {
			next := t.resume()
			if t.done {
				break
			}
			out = append(out, next)
		}
		return out
	}
	if dict, ok := asDict(v); ok {
		out := make([]Value, 0, len(dict.Keys()))
		for _, k := range dict.Keys() {
			val, _ := dict.Get(k)
			out = append(out, NewKeyValue(ev.basket, k, val))
		}
		return out
	}
	ev.throwf("%s is not iterable", v.Type())
	return nil
}
