package semantic

import (
	"strings"
	"testing"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/diag"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/parser"
	"github.com/eggscript/egg/internal/source"
)

func prepareSource(t *testing.T, resource, src string) (*Preparer, diag.Severity) {
	t.Helper()
	ts := source.NewTextStream(source.NewCharStream(resource, strings.NewReader(src)))
	tz := lexer.NewTokenizer(lexer.New(ts))
	mod, err := parser.New(tz, resource).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	p := NewPreparer(resource)
	sev := p.Prepare(mod)
	return p, sev
}

func TestPrepareTypeMismatchAtDeclare(t *testing.T) {
	p, sev := prepareSource(t, "x.egg", `int x = "s";`)
	if sev != diag.Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
	found := false
	for _, d := range p.Diagnostics() {
		if d.Format() == `x.egg(1,1): Cannot initialize 'x' of type 'int' with a value of type 'string'` {
			found = true
		}
	}
	if !found {
		var got []string
		for _, d := range p.Diagnostics() {
			got = append(got, d.Format())
		}
		t.Fatalf("expected type-mismatch diagnostic, got %v", got)
	}
}

func TestPrepareShadowingWarning(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `
		var a = 1;
		{ var a = 2; print(a); }
		print(a);
	`)
	if sev != diag.Warning {
		t.Fatalf("expected Warning severity, got %v", sev)
	}
}

func TestPrepareArithmeticLoopIsClean(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `
		var s = 0;
		for (var i = 1; i <= 10; ++i) { s += i; }
		print(s);
	`)
	if sev != diag.None {
		t.Fatalf("expected no diagnostics, got severity %v", sev)
	}
}

func TestPrepareGeneratorYieldTypeChecked(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `
		int... naturals() { for (var i = 0; ; ++i) yield i; }
		var it = naturals();
	`)
	if sev != diag.None {
		t.Fatalf("expected no diagnostics, got severity %v", sev)
	}
}

func TestPrepareYieldOutsideGeneratorIsError(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `yield 1;`)
	if sev != diag.Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
}

func TestPrepareBreakOutsideLoopIsError(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `break;`)
	if sev != diag.Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
}

func TestPrepareAssertPromotesComparisonToPredicate(t *testing.T) {
	ts := source.NewTextStream(source.NewCharStream("x.egg", strings.NewReader(`assert(1 == 2);`)))
	tz := lexer.NewTokenizer(lexer.New(ts))
	mod, err := parser.New(tz, "x.egg").Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	NewPreparer("x.egg").Prepare(mod)

	exprStmt := mod.Statements[0].(*ast.ExprStmt)
	call := exprStmt.Expr.(*ast.Call)
	if _, ok := call.Args[0].Value.(*ast.Predicate); !ok {
		t.Fatalf("expected assert's comparison argument to be promoted to Predicate, got %T", call.Args[0].Value)
	}
}

func TestPrepareDuplicateDeclarationIsError(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `var a = 1; var a = 2;`)
	if sev != diag.Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
}

func TestPrepareUndeclaredIdentifierIsError(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `print(notDeclared);`)
	if sev != diag.Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
}

func TestPrepareUnreachableCodeAfterReturn(t *testing.T) {
	_, sev := prepareSource(t, "x.egg", `
		void f() { return; print(1); }
		f();
	`)
	if sev != diag.Warning {
		t.Fatalf("expected Warning severity for unreachable code, got %v", sev)
	}
}
