package interp

import (
	"testing"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/source"
)

func newGeneratorBody(stmts ...ast.Stmt) *ast.Block {
	return ast.NewBlock(source.Span{}, stmts)
}

func TestGeneratorYieldsThenReturnsVoid(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	body := newGeneratorBody(
		ast.NewYieldStmt(source.Span{}, ast.NewIntLiteral(source.Span{}, 1), false),
		ast.NewYieldStmt(source.Span{}, ast.NewIntLiteral(source.Span{}, 2), false),
	)
	fn := NewGeneratorFunc(ev.basket, "g", nil, body, ev.root)
	g := newGenerator(ev, fn, nil)

	if v := g.resume(); v != Int(1) {
		t.Fatalf("first resume = %v, want 1", v)
	}
	if v := g.resume(); v != Int(2) {
		t.Fatalf("second resume = %v, want 2", v)
	}
	if v := g.resume(); v != VoidValue {
		t.Fatalf("third resume = %v, want Void (body exhausted)", v)
	}
	if !g.done {
		t.Fatal("generator should be done after falling off the end")
	}
	if v := g.resume(); v != VoidValue {
		t.Fatalf("resume after done = %v, want Void", v)
	}
}

func TestGeneratorReturnValueEndsSequence(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	body := newGeneratorBody(
		ast.NewYieldStmt(source.Span{}, ast.NewIntLiteral(source.Span{}, 1), false),
		ast.NewReturn(source.Span{}, ast.NewIntLiteral(source.Span{}, 99)),
	)
	fn := NewGeneratorFunc(ev.basket, "g", nil, body, ev.root)
	g := newGenerator(ev, fn, nil)

	if v := g.resume(); v != Int(1) {
		t.Fatalf("first resume = %v, want 1", v)
	}
	if v := g.resume(); v != Int(99) {
		t.Fatalf("resume after return = %v, want 99", v)
	}
	if !g.done {
		t.Fatal("generator should be done after return")
	}
}

func TestGeneratorThrowPropagatesToResumer(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	body := newGeneratorBody(
		ast.NewThrow(source.Span{}, ast.NewStringLiteral(source.Span{}, "boom")),
	)
	fn := NewGeneratorFunc(ev.basket, "g", nil, body, ev.root)
	g := newGenerator(ev, fn, nil)

	defer func() {
		r := recover()
		sig, ok := r.(exceptionSignal)
		if !ok {
			t.Fatalf("expected exceptionSignal, got %v", r)
		}
		if sig.value.String() != "boom" {
			t.Fatalf("thrown value = %v, want boom", sig.value)
		}
	}()
	g.resume()
	t.Fatal("expected resume to panic with the generator's thrown value")
}

func TestDoYieldHandoffViaExecYield(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	body := newGeneratorBody(
		ast.NewYieldStmt(source.Span{}, ast.NewIdentifier(source.Span{}, "x"), false),
	)
	fn := NewGeneratorFunc(ev.basket, "g", []ast.Param{{Name: "x"}}, body, ev.root)
	g := newGenerator(ev, fn, []Value{String("hi")})
	if v := g.resume(); v != String("hi") {
		t.Fatalf("resume() = %v, want hi", v)
	}
}
