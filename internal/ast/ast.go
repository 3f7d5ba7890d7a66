// Package ast defines the E language's abstract syntax tree: the
// statement, expression, and type-reference node families of spec.md
// 3.5. Every node carries its source span; expression nodes additionally
// carry a result type slot the preparer fills in (spec.md 3.5, 4.4).
package ast

import (
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// Node is implemented by every statement and expression.
type Node interface {
	Span() source.Span
}

// Expr is any node that produces a value. After preparation,
// ResultType reports the type the preparer inferred for it.
type Expr interface {
	Node
	exprNode()
	ResultType() *types.Type
	SetResultType(*types.Type)
}

// Stmt is any node that performs an action without itself producing a
// value.
type Stmt interface {
	Node
	stmtNode()
}

type exprBase struct {
	span       source.Span
	resultType *types.Type
}

func (e *exprBase) Span() source.Span           { return e.span }
func (e *exprBase) exprNode()                   {}
func (e *exprBase) ResultType() *types.Type      { return e.resultType }
func (e *exprBase) SetResultType(t *types.Type) { e.resultType = t }

type stmtBase struct {
	span source.Span
}

func (s *stmtBase) Span() source.Span { return s.span }
func (s *stmtBase) stmtNode()         {}

// Module is the root of a parsed program: a flat list of top-level
// statements (spec.md 3.5).
type Module struct {
	Resource   string
	Statements []Stmt
}

func (m *Module) Span() source.Span {
	if len(m.Statements) == 0 {
		return source.Span{}
	}
	return source.Join(m.Statements[0].Span(), m.Statements[len(m.Statements)-1].Span())
}
