package interp

import (
	"math"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
)

// evalBinary implements the arithmetic/bitwise/comparison contract the
// preparer already validated (spec.md 4.5.3, 4.3.1's precedence table).
func (ev *Evaluator) evalBinary(scope *Scope, b *ast.Binary) Value {
	switch b.Op {
	case lexer.ANDAND:
		if !truthy(ev.evalExpr(scope, b.Left)) {
			return Bool(false)
		}
		return Bool(truthy(ev.evalExpr(scope, b.Right)))
	case lexer.OROR:
		if truthy(ev.evalExpr(scope, b.Left)) {
			return Bool(true)
		}
		return Bool(truthy(ev.evalExpr(scope, b.Right)))
	case lexer.COALESCE:
		left := ev.evalExpr(scope, b.Left)
		if isNullish(left) {
			return ev.evalExpr(scope, b.Right)
		}
		return left
	}

	left := ev.evalExpr(scope, b.Left)
	right := ev.evalExpr(scope, b.Right)

	switch b.Op {
	case lexer.EQ:
		return Bool(valuesEqual(left, right))
	case lexer.NE:
		return Bool(!valuesEqual(left, right))
	case lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return ev.compareOrdered(b.Op, left, right)
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return ev.arith(b.Op, left, right)
	case lexer.SHL, lexer.SHR, lexer.USHR:
		return ev.shift(b.Op, left, right)
	case lexer.AMP, lexer.PIPE, lexer.CARET:
		return ev.bitwise(b.Op, left, right)
	default:
		ev.throwf("internal: unhandled binary operator %s", b.Op)
		return NullValue
	}
}

func (ev *Evaluator) compareOrdered(op lexer.TokenType, left, right Value) Value {
	a, b := promote(left, right)
	var cmp int
	switch av := a.(type) {
	case Int:
		bv := b.(Int)
		switch {
		case av < bv:
			cmp = -1
		case av > bv:
			cmp = 1
		}
	case Float:
		bv := b.(Float)
		switch {
		case av < bv:
			cmp = -1
		case av > bv:
			cmp = 1
		default:
			cmp = 0
		}
		if math.IsNaN(float64(av)) || math.IsNaN(float64(bv)) {
			return Bool(false)
		}
	default:
		ev.throwf("cannot order %s and %s", left.Type(), right.Type())
	}
	switch op {
	case lexer.LT:
		return Bool(cmp < 0)
	case lexer.LE:
		return Bool(cmp <= 0)
	case lexer.GT:
		return Bool(cmp > 0)
	default:
		return Bool(cmp >= 0)
	}
}

// promote applies Int->Float promotion when either operand is Float
// (spec.md 4.5.3: "Mixed Int/Float promotes Int to Float").
func promote(a, b Value) (Value, Value) {
	_, af := a.(Float)
	_, bf := b.(Float)
	if !af && !bf {
		return a, b
	}
	return toFloat(a), toFloat(b)
}

func toFloat(v Value) Value {
	switch n := v.(type) {
	case Int:
		return Float(n)
	case Float:
		return n
	default:
		return v
	}
}

func (ev *Evaluator) arith(op lexer.TokenType, left, right Value) Value {
	a, b := promote(left, right)
	if af, ok := a.(Float); ok {
		bf := b.(Float)
		switch op {
		case lexer.PLUS:
			return af + bf
		case lexer.MINUS:
			return af - bf
		case lexer.STAR:
			return af * bf
		case lexer.SLASH:
			return af / bf
		case lexer.PERCENT:
			return Float(math.Mod(float64(af), float64(bf)))
		}
	}
	ai, bi := a.(Int), b.(Int)
	switch op {
	case lexer.PLUS:
		return ai + bi
	case lexer.MINUS:
		return ai - bi
	case lexer.STAR:
		return ai * bi
	case lexer.SLASH:
		if bi == 0 {
			ev.throwf("division by zero")
		}
		return ai / bi
	case lexer.PERCENT:
		if bi == 0 {
			ev.throwf("division by zero")
		}
		return ai % bi
	}
	ev.throwf("internal: unhandled arithmetic operator %s", op)
	return NullValue
}

func (ev *Evaluator) shift(op lexer.TokenType, left, right Value) Value {
	a, ok1 := left.(Int)
	b, ok2 := right.(Int)
	if !ok1 || !ok2 {
		ev.throwf("shift operands must be int")
	}
	switch op {
	case lexer.SHL:
		return a << uint(b)
	case lexer.SHR:
		return a >> uint(b)
	default:
		return Int(uint64(a) >> uint(b))
	}
}

func (ev *Evaluator) bitwise(op lexer.TokenType, left, right Value) Value {
	if la, ok := left.(Bool); ok {
		ra, ok := right.(Bool)
		if !ok {
			ev.throwf("operands of %s must both be bool or both be int", op)
		}
		switch op {
		case lexer.AMP:
			return Bool(la && ra)
		case lexer.PIPE:
			return Bool(la || ra)
		default:
			return Bool(la != ra)
		}
	}
	a, ok1 := left.(Int)
	b, ok2 := right.(Int)
	if !ok1 || !ok2 {
		ev.throwf("operands of %s must both be bool or both be int", op)
	}
	switch op {
	case lexer.AMP:
		return a & b
	case lexer.PIPE:
		return a | b
	default:
		return a ^ b
	}
}

// evalUnary implements the prefix operators (spec.md 4.3.1): `!` `~`
// unary `-` `&` `*` and the foreach/call spread marker `...`.
func (ev *Evaluator) evalUnary(scope *Scope, u *ast.Unary) Value {
	switch u.Op {
	case lexer.BANG:
		return Bool(!truthy(ev.evalExpr(scope, u.Operand)))
	case lexer.TILDE:
		v, ok := ev.evalExpr(scope, u.Operand).(Int)
		if !ok {
			ev.throwf("~ requires an int operand")
		}
		return ^v
	case lexer.MINUS:
		switch v := ev.evalExpr(scope, u.Operand).(type) {
		case Int:
			return -v
		case Float:
			return -v
		default:
			ev.throwf("unary - requires a numeric operand")
			return NullValue
		}
	case lexer.AMP:
		return Pointer(ev.addressOf(scope, u.Operand))
	case lexer.STAR:
		ptrVal := ev.evalExpr(scope, u.Operand)
		p, ok := ptrVal.(Pointer)
		if !ok {
			ev.throwf("* requires a pointer operand")
		}
		return p.Get()
	case lexer.SPREAD:
		return ev.evalExpr(scope, u.Operand)
	default:
		ev.throwf("internal: unhandled unary operator %s", u.Op)
		return NullValue
	}
}

// valuesEqual implements `==` (spec.md §7: "x == x is true for every
// non-NaN, non-FlowControl Value; NaN == NaN is false").
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Void:
		_, ok := b.(Void)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return Float(av) == bv
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Float:
			return av == bv
		case Int:
			return av == Float(bv)
		}
		return false
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		ao, aIsObj := a.(Object)
		bo, bIsObj := b.(Object)
		if aIsObj && bIsObj {
			return ao == bo
		}
		return false
	}
}
