package ast

import (
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// Identifier references a bound name (spec.md 3.5).
type Identifier struct {
	exprBase
	Name string
}

func NewIdentifier(span source.Span, name string) *Identifier {
	return &Identifier{exprBase: exprBase{span: span}, Name: name}
}

// NullLiteral, BoolLiteral, IntLiteral, FloatLiteral, StringLiteral are
// the five literal forms of spec.md 3.5.
type NullLiteral struct{ exprBase }

func NewNullLiteral(span source.Span) *NullLiteral { return &NullLiteral{exprBase{span: span, resultType: types.New(types.Null)}} }

type BoolLiteral struct {
	exprBase
	Value bool
}

func NewBoolLiteral(span source.Span, v bool) *BoolLiteral {
	return &BoolLiteral{exprBase{span: span, resultType: types.New(types.Bool)}, v}
}

// IntLiteral additionally records whether it was produced by
// negative-literal folding (spec.md 4.3.3), purely for printing.
type IntLiteral struct {
	exprBase
	Value  int64
	Folded bool
}

func NewIntLiteral(span source.Span, v int64) *IntLiteral {
	return &IntLiteral{exprBase{span: span, resultType: types.New(types.Int)}, v, false}
}

// NewFoldedIntLiteral builds an Int literal produced by negative-literal
// folding (spec.md 4.3.3): a `-` contiguous with the digits, folded into
// the literal rather than a Unary node so that math.MinInt64 remains
// representable.
func NewFoldedIntLiteral(span source.Span, v int64) *IntLiteral {
	return &IntLiteral{exprBase{span: span, resultType: types.New(types.Int)}, v, true}
}

type FloatLiteral struct {
	exprBase
	Value  float64
	Folded bool
}

func NewFloatLiteral(span source.Span, v float64) *FloatLiteral {
	return &FloatLiteral{exprBase{span: span, resultType: types.New(types.Float)}, v, false}
}

// NewFoldedFloatLiteral is the Float counterpart of NewFoldedIntLiteral.
func NewFoldedFloatLiteral(span source.Span, v float64) *FloatLiteral {
	return &FloatLiteral{exprBase{span: span, resultType: types.New(types.Float)}, v, true}
}

type StringLiteral struct {
	exprBase
	Value string
}

func NewStringLiteral(span source.Span, v string) *StringLiteral {
	return &StringLiteral{exprBase{span: span, resultType: types.New(types.String)}, v}
}

// ArrayLiteral is `[e1, e2, ...]` (spec.md 4.3.1 #15).
type ArrayLiteral struct {
	exprBase
	Elements []Expr
}

func NewArrayLiteral(span source.Span, elems []Expr) *ArrayLiteral {
	return &ArrayLiteral{exprBase: exprBase{span: span}, Elements: elems}
}

// ObjectEntry is one `key: value` pair of an object literal; keys must
// be unique identifiers (spec.md 4.3.1).
type ObjectEntry struct {
	Key   string
	Value Expr
}

// ObjectLiteral is `{key: val, ...}`.
type ObjectLiteral struct {
	exprBase
	Entries []ObjectEntry
}

func NewObjectLiteral(span source.Span, entries []ObjectEntry) *ObjectLiteral {
	return &ObjectLiteral{exprBase: exprBase{span: span}, Entries: entries}
}

// Argument is one call argument: positional (Name == "") or named
// (spec.md 4.3.1).
type Argument struct {
	Name  string
	Value Expr
}

// Call is `callee(args...)`.
type Call struct {
	exprBase
	Callee Expr
	Args   []Argument
}

func NewCall(span source.Span, callee Expr, args []Argument) *Call {
	return &Call{exprBase: exprBase{span: span}, Callee: callee, Args: args}
}

// Index is `target[index]`, the "brackets" postfix form of spec.md 3.5.
type Index struct {
	exprBase
	Target Expr
	Key    Expr
}

func NewIndex(span source.Span, target, key Expr) *Index {
	return &Index{exprBase: exprBase{span: span}, Target: target, Key: key}
}

// Dot is `target.property`, optionally null-safe (`?.`).
type Dot struct {
	exprBase
	Target     Expr
	Property   string
	NullSafe   bool
}

func NewDot(span source.Span, target Expr, property string, nullSafe bool) *Dot {
	return &Dot{exprBase: exprBase{span: span}, Target: target, Property: property, NullSafe: nullSafe}
}

// Unary is a prefix operator: `! & * - ~ ...`.
type Unary struct {
	exprBase
	Op      lexer.TokenType
	Operand Expr
}

func NewUnary(span source.Span, op lexer.TokenType, operand Expr) *Unary {
	return &Unary{exprBase: exprBase{span: span}, Op: op, Operand: operand}
}

// Binary is any left-associative infix operator from the precedence
// table of spec.md 4.3.1, plus the non-associative comparisons.
type Binary struct {
	exprBase
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func NewBinary(span source.Span, op lexer.TokenType, left, right Expr) *Binary {
	return &Binary{exprBase: exprBase{span: span}, Op: op, Left: left, Right: right}
}

// Ternary is `cond ? then : else`, the single right-associative
// operator of spec.md 4.3.1.
type Ternary struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func NewTernary(span source.Span, cond, then, els Expr) *Ternary {
	return &Ternary{exprBase: exprBase{span: span}, Cond: cond, Then: then, Else: els}
}

// Predicate wraps a Binary comparison that was passed as the sole
// argument of `assert(...)`; preparation promotes the plain Binary into
// this node so the evaluator can enrich a failed assertion with
// `left`/`operator`/`right` (spec.md glossary: Predicate promotion).
type Predicate struct {
	exprBase
	Comparison *Binary
}

func NewPredicate(comparison *Binary) *Predicate {
	return &Predicate{exprBase: exprBase{span: comparison.span}, Comparison: comparison}
}

// TypeRef is the pseudo-expression form of a type, used in declarations,
// parameter lists, casts (`keyword(args)`/`keyword.id`), and generator
// definitions (spec.md 3.5, 4.3.1 #15).
type TypeRef struct {
	exprBase
	Type *types.Type
	// Name is the surface spelling, preserved for diagnostics and for
	// user-defined type names the preparer must resolve.
	Name string
}

func NewTypeRef(span source.Span, name string, t *types.Type) *TypeRef {
	return &TypeRef{exprBase: exprBase{span: span, resultType: t}, Type: t, Name: name}
}
