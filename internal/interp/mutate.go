package interp

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
)

// execMutate implements `+=` and friends, plus `++`/`--` (spec.md
// 4.5.2): the lvalue is resolved to an assignee once, its current
// value is read, the new value computed, then written back.
func (ev *Evaluator) execMutate(scope *Scope, m *ast.Mutate) FlowControl {
	ptr := ev.addressOf(scope, m.Target)

	if m.Value == nil {
		cur, ok := ptr.Get().(Int)
		if !ok {
			ev.throwf("++/-- requires an int lvalue")
		}
		if m.Op == lexer.INC {
			ptr.Set(cur + 1)
		} else {
			ptr.Set(cur - 1)
		}
		return flowNone
	}

	switch m.Op {
	case lexer.ANDANDASSIGN:
		cur := ptr.Get()
		if truthy(cur) {
			ptr.Set(Bool(truthy(ev.evalExpr(scope, m.Value))))
		}
		return flowNone
	case lexer.ORORASSIGN:
		cur := ptr.Get()
		if !truthy(cur) {
			ptr.Set(Bool(truthy(ev.evalExpr(scope, m.Value))))
		}
		return flowNone
	case lexer.COALESCEASSIGN:
		cur := ptr.Get()
		if isNullish(cur) {
			ptr.Set(ev.evalExpr(scope, m.Value))
		}
		return flowNone
	}

	cur := ptr.Get()
	rhs := ev.evalExpr(scope, m.Value)
	ptr.Set(ev.mutateResult(m.Op, cur, rhs))
	return flowNone
}

func (ev *Evaluator) mutateResult(op lexer.TokenType, cur, rhs Value) Value {
	switch op {
	case lexer.PLUSASSIGN:
		return ev.arith(lexer.PLUS, cur, rhs)
	case lexer.MINUSASSIGN:
		return ev.arith(lexer.MINUS, cur, rhs)
	case lexer.STARASSIGN:
		return ev.arith(lexer.STAR, cur, rhs)
	case lexer.SLASHASSIGN:
		return ev.arith(lexer.SLASH, cur, rhs)
	case lexer.PERCENTASSIGN:
		return ev.arith(lexer.PERCENT, cur, rhs)
	case lexer.SHLASSIGN:
		return ev.shift(lexer.SHL, cur, rhs)
	case lexer.SHRASSIGN:
		return ev.shift(lexer.SHR, cur, rhs)
	case lexer.USHRASSIGN:
		return ev.shift(lexer.USHR, cur, rhs)
	case lexer.ANDASSIGN:
		return ev.bitwise(lexer.AMP, cur, rhs)
	case lexer.ORASSIGN:
		return ev.bitwise(lexer.PIPE, cur, rhs)
	case lexer.XORASSIGN:
		return ev.bitwise(lexer.CARET, cur, rhs)
	default:
		ev.throwf("internal: unhandled compound-assignment operator %s", op)
		return NullValue
	}
}
