package interp

import (
	"fmt"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/diag"
	"github.com/eggscript/egg/internal/source"
)

// Logger receives every diagnostic an Evaluator produces at runtime:
// print output, assertion failures, and uncaught exceptions, already
// rendered to the MSBuild-style wire format spec.md 6.2 describes. The
// engine package is the canonical implementer; this interface lives
// here too so the evaluator depends on nothing above it.
type Logger interface {
	Log(source diag.Source, severity diag.Severity, message string)
}

// Evaluator walks a prepared Module and executes it directly (spec.md
// 4.5): no bytecode, no separate compile step. One Evaluator owns
// exactly one Basket and one top-level Scope.
type Evaluator struct {
	basket   *Basket
	resource string
	logger   Logger
	root     *Scope

	loc              source.Location
	currentGenerator *Generator
	currentCatch     Value
	severity         diag.Severity
	collectThreshold int
}

// SetCollectThreshold enables an opportunistic Collect() after every
// top-level statement once the basket holds more than n objects (0
// disables it; Collect still always runs once at module end per
// spec.md 5.3's "evaluator ... may call it opportunistically").
func (ev *Evaluator) SetCollectThreshold(n int) { ev.collectThreshold = n }

// exceptionSignal is the panic payload a `throw` statement or a
// runtime fault raises; it unwinds Go's call stack until a try/catch
// (or the top-level Run) recovers it, since an exception can escape
// arbitrarily deep nested expression evaluation, not just statement
// boundaries (spec.md 4.5.4).
type exceptionSignal struct {
	value Value
}

// NewEvaluator builds an Evaluator for resource (used in diagnostic
// locations) logging to logger.
func NewEvaluator(resource string, logger Logger) *Evaluator {
	ev := &Evaluator{
		basket:   NewBasket(),
		resource: resource,
		logger:   logger,
	}
	ev.root = NewRootScope(ev.basket)
	populateBuiltinValues(ev)
	return ev
}

// Basket exposes the evaluator's heap for host-embedded helpers (e.g.
// the engine package's Execute running Collect at module end).
func (ev *Evaluator) Basket() *Basket { return ev.basket }

// Run executes mod's top-level statements in the root scope and
// returns the worst severity observed: Error if an exception escaped
// uncaught, otherwise whatever print/assert logged.
func (ev *Evaluator) Run(mod *ast.Module) (severity diag.Severity) {
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(exceptionSignal)
			if !ok {
				panic(r)
			}
			ev.reportUncaught(sig.value)
			severity = diag.Max(ev.severity, diag.Error)
			return
		}
		severity = ev.severity
	}()
	for _, stmt := range mod.Statements {
		if fc := ev.execStmt(ev.root, stmt); !fc.IsNone() {
			break
		}
		if ev.collectThreshold > 0 && ev.basket.Size() > ev.collectThreshold {
			ev.basket.Collect()
		}
	}
	return ev.severity
}

// reportUncaught logs an exception that escaped every catch, at
// Runtime/Error severity, located at its throw point (spec.md §8
// scenario 4: "x.egg(1,1): boom").
func (ev *Evaluator) reportUncaught(v Value) {
	msg := ev.stringify(v)
	span := source.Span{Begin: ev.loc}
	if exc, ok := v.(*Exception); ok {
		span = source.Span{Begin: exc.Loc}
		if m, ok := exc.Get("message"); ok {
			msg = ev.stringify(m)
		}
	}
	ev.severity = diag.Max(ev.severity, diag.Error)
	if ev.logger == nil {
		return
	}
	d := diag.Diagnostic{Source: diag.Runtime, Severity: diag.Error, Message: msg, Resource: ev.resource, Span: span}
	ev.logger.Log(diag.Runtime, diag.Error, d.Format())
}

func (ev *Evaluator) log(src diag.Source, sev diag.Severity, message string) {
	ev.severity = diag.Max(ev.severity, sev)
	if ev.logger == nil {
		return
	}
	d := diag.Diagnostic{
		Source:   src,
		Severity: sev,
		Message:  message,
		Resource: ev.resource,
	}
	if src != diag.User {
		d.Span = source.Span{Begin: ev.loc}
	}
	ev.logger.Log(src, sev, d.Format())
}

// throwf raises a runtime exception carrying message, located at
// wherever the evaluator is currently executing.
func (ev *Evaluator) throwf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	exc := NewException(ev.basket, message, ev.loc, nil)
	panic(exceptionSignal{value: exc})
}

// runtimeError builds a Go error carrying a runtime-fault message; used
// by helpers (e.g. string methods) that validate arguments before the
// evaluator decides whether to turn the failure into a thrown
// exception.
func (ev *Evaluator) runtimeError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// stringify renders v the way `print`, string concatenation, and
// exception messages do: String values pass through unquoted,
// everything else uses its own String().
func (ev *Evaluator) stringify(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	if v == nil {
		return "null"
	}
	return v.String()
}

// execStmts runs stmts in order within scope, stopping at the first
// non-none FlowControl.
func (ev *Evaluator) execStmts(scope *Scope, stmts []ast.Stmt) FlowControl {
	for _, s := range stmts {
		if fc := ev.execStmt(scope, s); !fc.IsNone() {
			return fc
		}
	}
	return flowNone
}

// execBlock runs a block in a fresh child scope (spec.md 4.5.1).
func (ev *Evaluator) execBlock(scope *Scope, b *ast.Block) FlowControl {
	return ev.execStmts(scope.Nested(), b.Statements)
}

func (ev *Evaluator) at(n ast.Node) {
	ev.loc = n.Span().Begin
}
