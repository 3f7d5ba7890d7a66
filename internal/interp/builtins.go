package interp

import (
	"github.com/eggscript/egg/internal/diag"
)

// NativeFunction wraps a Go closure as a callable Value: the four
// root built-ins (spec.md 4.5.6) and the bound receivers Dot produces
// for string virtual methods and static accessors. It is not basket
// tracked: it carries no owned references and lives only as long as
// the expression that produced it, so it never participates in a
// collection cycle the way Array/Dict/UserFunction can.
type NativeFunction struct {
	Name string
	Fn   func(ev *Evaluator, args []Value) Value
}

func (*NativeFunction) Type() string     { return "function" }
func (f *NativeFunction) String() string { return "<native " + f.Name + ">" }

// populateBuiltinValues declares the root-scope built-ins the preparer
// also pre-declares as signatures (internal/semantic/builtins.go):
// print, assert, string, type.
func populateBuiltinValues(ev *Evaluator) {
	ev.root.Declare("print", &NativeFunction{Name: "print", Fn: builtinPrint})
	ev.root.Declare("assert", &NativeFunction{Name: "assert", Fn: builtinAssert})
	ev.root.Declare("string", &NativeFunction{Name: "string", Fn: builtinString})
	ev.root.Declare("type", &NativeFunction{Name: "type", Fn: builtinType})
}

func builtinPrint(ev *Evaluator, args []Value) Value {
	msg := ev.joinStrings(args)
	ev.log(diag.User, diag.Information, msg)
	return VoidValue
}

func builtinString(ev *Evaluator, args []Value) Value {
	return String(ev.joinStrings(args))
}

func builtinType(ev *Evaluator, args []Value) Value {
	if len(args) == 0 {
		ev.throwf("type() requires one argument")
	}
	return String(args[0].Type())
}

// builtinAssert raises "Assertion is untrue" on a false argument,
// enriching the exception with left/operator/right when the argument
// was a comparison promoted to a Predicate at preparation time
// (spec.md 4.5.6). The enrichment itself happens in evalAssertPredicate
// (call.go), which has access to the original AST node; builtinAssert only sees the
// already-evaluated bool and is used for the plain (non-predicate)
// case.
func builtinAssert(ev *Evaluator, args []Value) Value {
	if len(args) == 0 {
		ev.throwf("assert() requires one argument")
	}
	if !truthy(args[0]) {
		ev.throwf("Assertion is untrue")
	}
	return VoidValue
}
