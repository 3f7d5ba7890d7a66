package semantic

import (
	"fmt"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/diag"
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// funcContext tracks what kind of callable body is being walked, so
// that return/yield can be checked against the right signature and
// break/continue/throw can be checked against the right nesting
// (spec.md 4.4's return/yield/break/continue/throw rows).
type funcContext struct {
	returnType *types.Type // non-nil inside a function body
	yieldType  *types.Type // non-nil inside a generator body
	loopDepth  int
	switchDepth int
	catchDepth int
}

// Preparer runs the single AST walk of spec.md 4.4: it resolves
// identifiers against a lexical SymbolTable, infers and checks
// expression types, and validates control-flow nesting, collecting
// diagnostics rather than stopping at the first one (unlike the
// parser, which aborts on its first error).
type Preparer struct {
	resource    string
	diagnostics []diag.Diagnostic
	scope       *SymbolTable
	ctx         funcContext
}

// NewPreparer creates a preparer whose root scope is pre-populated with
// the built-ins of spec.md 4.5.6.
func NewPreparer(resource string) *Preparer {
	root := NewSymbolTable()
	populateBuiltins(root)
	return &Preparer{resource: resource, scope: root}
}

// Diagnostics returns every diagnostic collected by the last Prepare
// call, in emission order.
func (p *Preparer) Diagnostics() []diag.Diagnostic { return p.diagnostics }

// Prepare walks mod once, annotating its expressions with inferred
// types, and returns the maximum diagnostic severity seen.
func (p *Preparer) Prepare(mod *ast.Module) diag.Severity {
	p.prepareBlockLike(mod.Statements)
	sev := diag.None
	for _, d := range p.diagnostics {
		sev = diag.Max(sev, d.Severity)
	}
	return sev
}

func (p *Preparer) report(sev diag.Severity, span ast.Node, format string, args ...any) {
	p.diagnostics = append(p.diagnostics, diag.Diagnostic{
		Source:   diag.Compiler,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Resource: p.resource,
		Span:     source.Span{Begin: span.Span().Begin},
	})
}

func (p *Preparer) errorAt(span ast.Node, format string, args ...any) {
	p.report(diag.Error, span, format, args...)
}

func (p *Preparer) warnAt(span ast.Node, format string, args ...any) {
	p.report(diag.Warning, span, format, args...)
}

func (p *Preparer) pushScope() { p.scope = p.scope.Nested() }
func (p *Preparer) popScope()  { p.scope = p.scope.parent }
