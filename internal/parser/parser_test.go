package parser

import (
	"strings"
	"testing"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
)

func parseSource(t *testing.T, src string) *ast.Module {
	t.Helper()
	ts := source.NewTextStream(source.NewCharStream("test.egg", strings.NewReader(src)))
	tz := lexer.NewTokenizer(lexer.New(ts))
	mod, err := New(tz, "test.egg").Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return mod
}

func TestParseHelloWorld(t *testing.T) {
	mod := parseSource(t, "print(`Hello, World!`);")
	if len(mod.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Statements))
	}
	stmt, ok := mod.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", mod.Statements[0])
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call, got %T", stmt.Expr)
	}
	if id, ok := call.Callee.(*ast.Identifier); !ok || id.Name != "print" {
		t.Fatalf("expected callee 'print', got %#v", call.Callee)
	}
}

func TestParseArithmeticLoop(t *testing.T) {
	mod := parseSource(t, `
		var s = 0;
		for (var i = 1; i <= 10; ++i) { s += i; }
		print(s);
	`)
	if len(mod.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(mod.Statements))
	}
	decl, ok := mod.Statements[0].(*ast.Declare)
	if !ok || !decl.IsVar || decl.Name != "s" {
		t.Fatalf("expected var declaration 's', got %#v", mod.Statements[0])
	}
	forStmt, ok := mod.Statements[1].(*ast.ForClassic)
	if !ok {
		t.Fatalf("expected ForClassic, got %T", mod.Statements[1])
	}
	post, ok := forStmt.Post.(*ast.Mutate)
	if !ok || post.Op != lexer.INC {
		t.Fatalf("expected prefix ++ mutation in for-post, got %#v", forStmt.Post)
	}
	if len(forStmt.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement")
	}
	if _, ok := forStmt.Body.Statements[0].(*ast.Mutate); !ok {
		t.Fatalf("expected 's += i' to parse as Mutate, got %T", forStmt.Body.Statements[0])
	}
}

func TestParseGeneratorDefinition(t *testing.T) {
	mod := parseSource(t, `
		int... naturals() { for (var i = 0; ; ++i) yield i; }
		var it = naturals();
	`)
	gen, ok := mod.Statements[0].(*ast.GeneratorDef)
	if !ok {
		t.Fatalf("expected GeneratorDef, got %T", mod.Statements[0])
	}
	if gen.Name != "naturals" || gen.YieldType.Name != "int" {
		t.Fatalf("unexpected generator signature: %#v", gen)
	}
	forStmt := gen.Body.Statements[0].(*ast.ForClassic)
	if forStmt.Cond != nil {
		t.Fatalf("expected empty for-condition")
	}
	if _, ok := forStmt.Body.Statements[0].(*ast.YieldStmt); !ok {
		t.Fatalf("expected YieldStmt in loop body, got %T", forStmt.Body.Statements[0])
	}
}

func TestParseGuardedIf(t *testing.T) {
	mod := parseSource(t, `
		if (int x = lookup()) { print(x); }
	`)
	ifStmt, ok := mod.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", mod.Statements[0])
	}
	if ifStmt.Head.Guard == nil || ifStmt.Head.Guard.Name != "x" {
		t.Fatalf("expected guard 'x', got %#v", ifStmt.Head)
	}
}

func TestParseSwitchWithDefaultClause(t *testing.T) {
	mod := parseSource(t, `
		switch (1) {
		case 1: print(1); break;
		default: print(2); break;
		}
	`)
	sw, ok := mod.Statements[0].(*ast.Switch)
	if !ok || len(sw.Clauses) != 2 {
		t.Fatalf("expected switch with 2 clauses, got %#v", mod.Statements[0])
	}
	if !sw.Clauses[1].IsDefault {
		t.Fatalf("expected second clause to be default")
	}
}

func TestNegativeLiteralFolding(t *testing.T) {
	mod := parseSource(t, "var a = -1; var b = - 1;")
	aDecl := mod.Statements[0].(*ast.Declare)
	aLit, ok := aDecl.Init.(*ast.IntLiteral)
	if !ok || !aLit.Folded || aLit.Value != -1 {
		t.Fatalf("expected folded Int(-1), got %#v", aDecl.Init)
	}
	bDecl := mod.Statements[1].(*ast.Declare)
	bUnary, ok := bDecl.Init.(*ast.Unary)
	if !ok || bUnary.Op != lexer.MINUS {
		t.Fatalf("expected Unary(-, ...), got %#v", bDecl.Init)
	}
}

func TestVexatiousMinusMinus(t *testing.T) {
	mod := parseSource(t, "var c = a--b;")
	decl := mod.Statements[0].(*ast.Declare)
	bin, ok := decl.Init.(*ast.Binary)
	if !ok || bin.Op != lexer.MINUS {
		t.Fatalf("expected top-level Binary(-), got %#v", decl.Init)
	}
	if _, ok := bin.Right.(*ast.Unary); !ok {
		t.Fatalf("expected right operand to be Unary(-, b), got %#v", bin.Right)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	mod := parseSource(t, `
		try { throw e; } catch (object e) { print(e); } finally { print(0); }
	`)
	tryStmt, ok := mod.Statements[0].(*ast.Try)
	if !ok || len(tryStmt.Catches) != 1 || tryStmt.Finally == nil {
		t.Fatalf("expected try/catch/finally, got %#v", mod.Statements[0])
	}
}

func TestParsePrintThenSExprIsStable(t *testing.T) {
	mod := parseSource(t, "print(1 + 2 * 3);")
	first := ast.Print(mod)
	mod2 := parseSource(t, "print(1 + 2 * 3);")
	second := ast.Print(mod2)
	if first != second {
		t.Fatalf("S-expression dump not stable: %q vs %q", first, second)
	}
}

func TestParseErrorAbortsOnFirstFailure(t *testing.T) {
	_, err := New(lexer.NewTokenizer(lexer.New(source.NewTextStream(source.NewCharStream("t", strings.NewReader("var x = ;"))))), "t").Parse()
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestParseSwitchClauseWithoutTerminatorFails(t *testing.T) {
	src := `
		switch (1) {
		case 1: print(1);
		default: print(2); break;
		}
	`
	ts := source.NewTextStream(source.NewCharStream("t", strings.NewReader(src)))
	tz := lexer.NewTokenizer(lexer.New(ts))
	_, err := New(tz, "t").Parse()
	if err == nil {
		t.Fatalf("expected a parse error for a 'case' clause falling off the end")
	}
}
