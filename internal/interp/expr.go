package interp

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
)

// evalExpr dispatches a single expression (spec.md 4.5.1, 4.5.6).
func (ev *Evaluator) evalExpr(scope *Scope, expr ast.Expr) Value {
	ev.at(expr)
	switch e := expr.(type) {
	case *ast.NullLiteral:
		return NullValue
	case *ast.BoolLiteral:
		return Bool(e.Value)
	case *ast.IntLiteral:
		return Int(e.Value)
	case *ast.FloatLiteral:
		return Float(e.Value)
	case *ast.StringLiteral:
		return String(e.Value)
	case *ast.Identifier:
		v, ok := scope.Get(e.Name)
		if !ok {
			ev.throwf("undeclared identifier %q", e.Name)
		}
		return v
	case *ast.ArrayLiteral:
		elems := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = ev.evalExpr(scope, el)
		}
		return NewArray(ev.basket, elems)
	case *ast.ObjectLiteral:
		d := NewDict(ev.basket)
		for _, entry := range e.Entries {
			d.Set(entry.Key, ev.evalExpr(scope, entry.Value))
		}
		return d
	case *ast.Call:
		return ev.evalCall(scope, e)
	case *ast.Index:
		return ev.evalIndex(scope, e)
	case *ast.Dot:
		return ev.evalDot(scope, e)
	case *ast.Unary:
		return ev.evalUnary(scope, e)
	case *ast.Binary:
		return ev.evalBinary(scope, e)
	case *ast.Ternary:
		if truthy(ev.evalExpr(scope, e.Cond)) {
			return ev.evalExpr(scope, e.Then)
		}
		return ev.evalExpr(scope, e.Else)
	case *ast.Predicate:
		return ev.evalPredicate(scope, e)
	case *ast.TypeRef:
		return String(e.Name)
	default:
		ev.throwf("internal: unhandled expression %T", expr)
		return NullValue
	}
}

// addressOf resolves expr to an assignable Pointer, used by Assign,
// Mutate, foreach rebinding of an existing identifier, and the `&`
// unary operator (spec.md 4.5.2).
func (ev *Evaluator) addressOf(scope *Scope, expr ast.Expr) Pointer {
	switch e := expr.(type) {
	case *ast.Identifier:
		name := e.Name
		return Pointer{
			Get: func() Value {
				v, ok := scope.Get(name)
				if !ok {
					ev.throwf("undeclared identifier %q", name)
				}
				return v
			},
			Set: func(v Value) {
				if !scope.Set(name, v) {
					ev.throwf("undeclared identifier %q", name)
				}
			},
		}
	case *ast.Index:
		target := ev.evalExpr(scope, e.Target)
		key := ev.evalExpr(scope, e.Key)
		return ev.indexPointer(target, key)
	case *ast.Dot:
		target := ev.evalExpr(scope, e.Target)
		return ev.dotPointer(target, e.Property)
	case *ast.Unary:
		if e.Op != lexer.STAR {
			ev.throwf("internal: invalid assignment target")
		}
		ptrVal := ev.evalExpr(scope, e.Operand)
		p, ok := ptrVal.(Pointer)
		if !ok {
			ev.throwf("dereference target is not a pointer")
		}
		return p
	default:
		ev.throwf("internal: invalid assignment target %T", expr)
		return Pointer{}
	}
}

func (ev *Evaluator) indexPointer(target, key Value) Pointer {
	switch t := target.(type) {
	case *Array:
		i := int64(mustInt(ev, key))
		return Pointer{
			Get: func() Value { return t.Get(i) },
			Set: func(v Value) { t.Set(i, v) },
		}
	}
	if dict, ok := asDict(target); ok {
		k := ev.stringify(key)
		return Pointer{
			Get: func() Value {
				v, _ := dict.Get(k)
				return v
			},
			Set: func(v Value) { dict.Set(k, v) },
		}
	}
	ev.throwf("%s is not indexable", target.Type())
	return Pointer{}
}

func (ev *Evaluator) dotPointer(target Value, property string) Pointer {
	switch t := target.(type) {
	case *Array:
		if property == "length" {
			return Pointer{
				Get: func() Value { return Int(len(t.Elements)) },
				Set: func(v Value) { t.SetLength(int64(mustInt(ev, v))) },
			}
		}
	}
	if dict, ok := asDict(target); ok {
		return Pointer{
			Get: func() Value {
				v, _ := dict.Get(property)
				return v
			},
			Set: func(v Value) { dict.Set(property, v) },
		}
	}
	ev.throwf("%s has no assignable property %q", target.Type(), property)
	return Pointer{}
}

func mustInt(ev *Evaluator, v Value) Int {
	i, ok := v.(Int)
	if !ok {
		ev.throwf("expected an int, got %s", v.Type())
	}
	return i
}

// isNullish reports whether v should short-circuit `??` and `?.` the
// way Null does: an unset Void result (e.g. from a function call with
// no return) is treated the same as an explicit null.
func isNullish(v Value) bool {
	switch v.(type) {
	case Null, Void:
		return true
	default:
		return false
	}
}

// truthy is the boolean-coercion rule used by if/while/do/for
// conditions: only a Bool value participates (the preparer already
// rejects non-bool conditions, so this is a defensive default for the
// guard-false case).
func truthy(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}

func (ev *Evaluator) evalPredicate(scope *Scope, p *ast.Predicate) Value {
	return ev.evalBinary(scope, p.Comparison)
}
