package interp

import (
	"github.com/eggscript/egg/internal/ast"
)

// execStmt dispatches a single statement (spec.md 4.5.2-4.5.5),
// returning whatever FlowControl it produced.
func (ev *Evaluator) execStmt(scope *Scope, stmt ast.Stmt) FlowControl {
	ev.at(stmt)
	switch s := stmt.(type) {
	case *ast.Declare:
		return ev.execDeclare(scope, s)
	case *ast.Assign:
		return ev.execAssign(scope, s)
	case *ast.Mutate:
		return ev.execMutate(scope, s)
	case *ast.ExprStmt:
		ev.evalExpr(scope, s.Expr)
		return flowNone
	case *ast.Break:
		return FlowControl{Kind: FlowBreak}
	case *ast.Continue:
		return FlowControl{Kind: FlowContinue}
	case *ast.Block:
		return ev.execBlock(scope, s)
	case *ast.If:
		return ev.execIf(scope, s)
	case *ast.While:
		return ev.execWhile(scope, s)
	case *ast.Do:
		return ev.execDo(scope, s)
	case *ast.ForClassic:
		return ev.execForClassic(scope, s)
	case *ast.ForEach:
		return ev.execForEach(scope, s)
	case *ast.Switch:
		return ev.execSwitch(scope, s)
	case *ast.Try:
		return ev.execTry(scope, s)
	case *ast.Return:
		var v Value = VoidValue
		if s.Value != nil {
			v = ev.evalExpr(scope, s.Value)
		}
		return FlowControl{Kind: FlowReturn, Value: v}
	case *ast.Throw:
		return ev.execThrow(scope, s)
	case *ast.YieldStmt:
		return ev.execYield(scope, s)
	case *ast.FunctionDef:
		scope.Declare(s.Name, NewUserFunction(ev.basket, s.Name, s.Params, s.Body, scope))
		return flowNone
	case *ast.GeneratorDef:
		scope.Declare(s.Name, NewGeneratorFunc(ev.basket, s.Name, s.Params, s.Body, scope))
		return flowNone
	case *ast.TypeDef:
		return flowNone
	default:
		ev.throwf("internal: unhandled statement %T", stmt)
		return flowNone
	}
}

func (ev *Evaluator) execDeclare(scope *Scope, d *ast.Declare) FlowControl {
	var v Value = VoidValue
	if d.Init != nil {
		v = ev.evalExpr(scope, d.Init)
	} else {
		v = NullValue
	}
	scope.Declare(d.Name, v)
	return flowNone
}

func (ev *Evaluator) execAssign(scope *Scope, a *ast.Assign) FlowControl {
	v := ev.evalExpr(scope, a.Value)
	ptr := ev.addressOf(scope, a.Target)
	ptr.Set(v)
	return flowNone
}

func (ev *Evaluator) execThrow(scope *Scope, t *ast.Throw) FlowControl {
	if t.Value == nil {
		if ev.currentCatch == nil {
			ev.throwf("rethrow outside catch block")
		}
		panic(exceptionSignal{value: ev.currentCatch})
	}
	v := ev.evalExpr(scope, t.Value)
	ev.at(t)
	panic(exceptionSignal{value: v})
}

func (ev *Evaluator) execYield(scope *Scope, y *ast.YieldStmt) FlowControl {
	g := ev.currentGenerator
	if g == nil {
		ev.throwf("yield outside generator")
	}
	if !y.Spread {
		ev.doYield(g, ev.evalExpr(scope, y.Value))
		return flowNone
	}
	for _, v := range ev.iterate(ev.evalExpr(scope, y.Value)) {
		ev.doYield(g, v)
	}
	return flowNone
}

func (ev *Evaluator) execIf(scope *Scope, s *ast.If) FlowControl {
	inner := scope.Nested()
	cond, ok := ev.evalHead(inner, s.Head)
	if !ok {
		return flowNone
	}
	if truthy(cond) {
		return ev.execBlock(inner, s.Then)
	}
	if s.Else != nil {
		return ev.execStmt(inner, s.Else)
	}
	return flowNone
}

func (ev *Evaluator) execWhile(scope *Scope, s *ast.While) FlowControl {
	for {
		inner := scope.Nested()
		cond, ok := ev.evalHead(inner, s.Head)
		if !ok || !truthy(cond) {
			return flowNone
		}
		fc := ev.execBlock(inner, s.Body)
		switch fc.Kind {
		case FlowBreak:
			return flowNone
		case FlowContinue, FlowNone:
		default:
			return fc
		}
	}
}

func (ev *Evaluator) execDo(scope *Scope, s *ast.Do) FlowControl {
	for {
		fc := ev.execBlock(scope, s.Body)
		switch fc.Kind {
		case FlowBreak:
			return flowNone
		case FlowContinue, FlowNone:
		default:
			return fc
		}
		if !truthy(ev.evalExpr(scope, s.Cond)) {
			return flowNone
		}
	}
}

func (ev *Evaluator) execForClassic(scope *Scope, s *ast.ForClassic) FlowControl {
	outer := scope.Nested()
	if s.Init != nil {
		ev.execStmt(outer, s.Init)
	}
	for {
		if s.Cond != nil && !truthy(ev.evalExpr(outer, s.Cond)) {
			return flowNone
		}
		fc := ev.execBlock(outer, s.Body)
		switch fc.Kind {
		case FlowBreak:
			return flowNone
		case FlowContinue, FlowNone:
		default:
			return fc
		}
		if s.Post != nil {
			ev.execStmt(outer, s.Post)
		}
	}
}

func (ev *Evaluator) execForEach(scope *Scope, s *ast.ForEach) FlowControl {
	coll := ev.evalExpr(scope, s.Collection)
	for _, v := range ev.iterate(coll) {
		inner := scope.Nested()
		if s.IsDecl {
			inner.Declare(s.Name, v)
		} else {
			ev.addressOf(inner, ast.NewIdentifier(s.Span(), s.Name)).Set(v)
		}
		fc := ev.execBlock(inner, s.Body)
		switch fc.Kind {
		case FlowBreak:
			return flowNone
		case FlowContinue, FlowNone:
		default:
			return fc
		}
	}
	return flowNone
}

func (ev *Evaluator) execSwitch(scope *Scope, s *ast.Switch) FlowControl {
	inner := scope.Nested()
	scrutinee, ok := ev.evalHead(inner, s.Head)
	if !ok {
		return flowNone
	}
	matched := -1
	deflt := -1
	for i, c := range s.Clauses {
		if c.IsDefault {
			deflt = i
			continue
		}
		if matched < 0 && valuesEqual(scrutinee, ev.evalExpr(inner, c.Test)) {
			matched = i
		}
	}
	if matched < 0 {
		matched = deflt
	}
	if matched < 0 {
		return flowNone
	}
	for i := matched; i < len(s.Clauses); i++ {
		fc := ev.execStmts(inner.Nested(), s.Clauses[i].Body)
		switch fc.Kind {
		case FlowBreak:
			return flowNone
		case FlowContinue:
			continue
		default:
			return fc
		}
	}
	return flowNone
}

func (ev *Evaluator) execTry(scope *Scope, s *ast.Try) FlowControl {
	fc := ev.runCatching(scope, s)
	if s.Finally != nil {
		ffc := ev.execBlock(scope, s.Finally)
		if !ffc.IsNone() {
			return ffc
		}
	}
	return fc
}

func (ev *Evaluator) runCatching(scope *Scope, s *ast.Try) (result FlowControl) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(exceptionSignal)
		if !ok {
			panic(r)
		}
		for _, c := range s.Catches {
			if !catchMatches(c, sig.value) {
				continue
			}
			inner := scope.Nested()
			inner.Declare(c.Name, sig.value)
			prevCatch := ev.currentCatch
			ev.currentCatch = sig.value
			result = ev.execBlock(inner, c.Body)
			ev.currentCatch = prevCatch
			return
		}
		panic(r)
	}()
	result = ev.execBlock(scope, s.Body)
	return result
}

// catchMatches reports whether a thrown value's runtime type is
// assignable to a catch clause's declared parameter type (spec.md
// 4.5.4). "any" and "object" accept any thrown value, since every
// exception is at least a dictionary; anything else matches by its
// runtime type name.
func catchMatches(c ast.Catch, v Value) bool {
	if c.Type == nil {
		return true
	}
	switch c.Type.Name {
	case "any", "object":
		return true
	default:
		return v.Type() == c.Type.Name
	}
}

// evalHead evaluates an if/while/switch condition slot, handling the
// guard-declaration form (spec.md glossary: Guard): a non-null value
// declares the narrowed binding and the guard is truthy; null means
// the guard fails outright.
func (ev *Evaluator) evalHead(scope *Scope, h ast.Head) (Value, bool) {
	if h.Guard == nil {
		return ev.evalExpr(scope, h.Expr), true
	}
	v := ev.evalExpr(scope, h.Guard.Init)
	if _, isNull := v.(Null); isNull {
		return Bool(false), true
	}
	scope.Declare(h.Guard.Name, v)
	return Bool(true), true
}
