package interp

import (
	"testing"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/source"
)

func TestCastToIntFromFloat(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	got := castToInt(ev, Float(3.9))
	if got != Int(3) {
		t.Errorf("castToInt(3.9) = %v, want 3", got)
	}
}

func TestCastToFloatFromInt(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	got := castToFloat(ev, Int(4))
	if got != Float(4) {
		t.Errorf("castToFloat(4) = %v, want 4.0", got)
	}
}

func TestJoinStrings(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	got := ev.joinStrings([]Value{String("a"), Int(1), Bool(true)})
	if got != "a1true" {
		t.Errorf("joinStrings = %q, want a1true", got)
	}
}

func TestBindParamsPacksVariadicTail(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	scope := NewScope()
	params := []ast.Param{
		{Name: "first"},
		{Name: "rest", Variadic: true},
	}
	ev.bindParams(scope, params, []Value{Int(1), Int(2), Int(3)})
	first, _ := scope.Get("first")
	if first != Int(1) {
		t.Fatalf("first = %v, want 1", first)
	}
	restVal, _ := scope.Get("rest")
	rest, ok := restVal.(*Array)
	if !ok || len(rest.Elements) != 2 {
		t.Fatalf("rest = %v, want 2-element array", restVal)
	}
	if rest.Elements[0] != Int(2) || rest.Elements[1] != Int(3) {
		t.Errorf("rest elements = %v", rest.Elements)
	}
}

func TestBindParamsMissingArgsDeclareNull(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	scope := NewScope()
	params := []ast.Param{{Name: "a"}, {Name: "b"}}
	ev.bindParams(scope, params, []Value{Int(1)})
	b, _ := scope.Get("b")
	if _, ok := b.(Null); !ok {
		t.Errorf("b = %v, want Null", b)
	}
}

func TestCallUserFunctionReturnsVoidWithoutReturn(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	fn := NewUserFunction(ev.basket, "f", nil, &ast.Block{}, ev.root)
	got := ev.callUserFunction(fn, nil)
	if _, ok := got.(Void); !ok {
		t.Errorf("callUserFunction with no return = %v, want Void", got)
	}
}

func TestEvalDotOnExceptionReadsDictFields(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	exc := NewException(ev.basket, "boom", source.Location{Line: 1, Column: 1}, nil)
	ev.root.Declare("e", exc)
	dot := ast.NewDot(source.Span{}, ast.NewIdentifier(source.Span{}, "e"), "message", false)
	got := ev.evalDot(ev.root, dot)
	if got.String() != "boom" {
		t.Errorf("e.message = %v, want boom", got)
	}
}

func TestEvalIndexOnExceptionReadsDictFields(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	exc := NewException(ev.basket, "boom", source.Location{Line: 1, Column: 1}, nil)
	ev.root.Declare("e", exc)
	ix := ast.NewIndex(source.Span{}, ast.NewIdentifier(source.Span{}, "e"), ast.NewStringLiteral(source.Span{}, "message"))
	got := ev.evalIndex(ev.root, ix)
	if got.String() != "boom" {
		t.Errorf("e[\"message\"] = %v, want boom", got)
	}
}

func TestDotPointerSetsExceptionField(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	exc := NewException(ev.basket, "boom", source.Location{Line: 1, Column: 1}, nil)
	ptr := ev.dotPointer(exc, "message")
	ptr.Set(String("changed"))
	if ptr.Get().String() != "changed" {
		t.Errorf("after Set, Get() = %v, want changed", ptr.Get())
	}
}

func TestIterateExceptionYieldsKeyValuePairs(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	exc := NewException(ev.basket, "boom", source.Location{Line: 1, Column: 1}, nil)
	pairs := ev.iterate(exc)
	if len(pairs) != 2 {
		t.Fatalf("iterate(exception) = %d pairs, want 2 (message, location)", len(pairs))
	}
	kv, ok := pairs[0].(*KeyValue)
	if !ok || kv.Key != "message" {
		t.Errorf("first pair = %v, want message", pairs[0])
	}
}

func TestEvalStaticAccessorStringFrom(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	fn := ev.evalStaticAccessor(ast.NewTypeRef(source.Span{}, "string", nil), "from")
	native, ok := fn.(*NativeFunction)
	if !ok {
		t.Fatalf("string.from = %T, want *NativeFunction", fn)
	}
	got := native.Fn(ev, []Value{Int(42)})
	if got.String() != "42" {
		t.Errorf("string.from(42) = %v, want 42", got)
	}
}

func TestEvalStaticAccessorTypeOf(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	fn := ev.evalStaticAccessor(ast.NewTypeRef(source.Span{}, "type", nil), "of")
	native, ok := fn.(*NativeFunction)
	if !ok {
		t.Fatalf("type.of = %T, want *NativeFunction", fn)
	}
	got := native.Fn(ev, []Value{String("hi")})
	if got.String() != "string" {
		t.Errorf("type.of(\"hi\") = %v, want string", got)
	}
}
