package semantic

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/types"
)

func isBool(t *types.Type) bool       { return t != nil && t.Kind == types.KindPrimitive && t.Flags.Has(types.Bool) }
func isInt(t *types.Type) bool        { return t != nil && t.Kind == types.KindPrimitive && t.Flags.Has(types.Int) }
func isArithmetic(t *types.Type) bool {
	return t != nil && t.Kind == types.KindPrimitive && (t.Flags&types.Arithmetic) != 0
}
func isFloat(t *types.Type) bool { return t != nil && t.Kind == types.KindPrimitive && t.Flags.Has(types.Float) }

// elementTypeOf reports the type `foreach` binds its loop variable to
// when iterating a collection of type t (spec.md 4.5.4): Int (a Unicode
// codepoint) for a string, and Any for everything else, since the
// preparer does not track the element types of arrays or objects.
func elementTypeOf(t *types.Type) *types.Type {
	if t == nil {
		return types.New(types.Any)
	}
	switch {
	case t.Kind == types.KindPrimitive && t.Flags.Has(types.String):
		return types.New(types.Int)
	default:
		return types.New(types.Any)
	}
}

// resolveTypeRef returns the type a parsed TypeRef names. A nil ref
// (an omitted guard type, for instance) resolves to Any.
func (p *Preparer) resolveTypeRef(ref *ast.TypeRef) *types.Type {
	if ref == nil {
		return types.New(types.Any)
	}
	if ref.Type != nil {
		return ref.Type
	}
	if sym, ok := p.scope.Lookup(ref.Name); ok {
		return sym.Type
	}
	p.errorAt(ref, "Unknown type %q", ref.Name)
	return types.New(types.Any)
}

// prepareExpr infers and records e's result type, recursing into its
// children first. It never panics: an unresolvable subtree is typed
// Any so that surrounding checks can still be attempted without
// cascading spurious diagnostics.
func (p *Preparer) prepareExpr(e ast.Expr) *types.Type {
	if e == nil {
		return nil
	}
	t := p.inferExpr(e)
	if t == nil {
		t = types.New(types.Any)
	}
	e.SetResultType(t)
	return t
}

func (p *Preparer) inferExpr(e ast.Expr) *types.Type {
	switch ex := e.(type) {
	case *ast.Identifier:
		if sym, ok := p.scope.Lookup(ex.Name); ok {
			return sym.Type
		}
		p.errorAt(ex, "%q is not declared", ex.Name)
		return types.New(types.Any)
	case *ast.NullLiteral:
		return types.New(types.Null)
	case *ast.BoolLiteral:
		return types.New(types.Bool)
	case *ast.IntLiteral:
		return types.New(types.Int)
	case *ast.FloatLiteral:
		return types.New(types.Float)
	case *ast.StringLiteral:
		return types.New(types.String)
	case *ast.ArrayLiteral:
		for _, el := range ex.Elements {
			p.prepareExpr(el)
		}
		return types.New(types.Object)
	case *ast.ObjectLiteral:
		for _, entry := range ex.Entries {
			p.prepareExpr(entry.Value)
		}
		return types.New(types.Object)
	case *ast.Call:
		return p.inferCall(ex)
	case *ast.Index:
		return p.inferIndex(ex)
	case *ast.Dot:
		return p.inferDot(ex)
	case *ast.Unary:
		return p.inferUnary(ex)
	case *ast.Binary:
		return p.inferBinary(ex)
	case *ast.Ternary:
		return p.inferTernary(ex)
	case *ast.Predicate:
		return types.New(types.Bool)
	case *ast.TypeRef:
		if ex.Type != nil {
			return ex.Type
		}
		return types.New(types.Any)
	default:
		return types.New(types.Any)
	}
}

// inferCall type-checks a call's arguments against the callee's
// signature and promotes `assert(a CMP b)` into a Predicate node
// (spec.md 4.5.6's predicate transform).
func (p *Preparer) inferCall(c *ast.Call) *types.Type {
	if ref, ok := c.Callee.(*ast.TypeRef); ok {
		// `int(x)`, `string(x)`, ... : the type-keyword cast form of
		// spec.md 4.3.1 #15, not a call through a bound symbol.
		for i := range c.Args {
			p.prepareExpr(c.Args[i].Value)
		}
		return ref.Type
	}
	calleeType := p.prepareExpr(c.Callee)
	for i := range c.Args {
		p.prepareExpr(c.Args[i].Value)
		if id, ok := c.Callee.(*ast.Identifier); ok && id.Name == "assert" && len(c.Args) == 1 {
			if bin, ok := c.Args[i].Value.(*ast.Binary); ok && isComparison(bin.Op) {
				pred := ast.NewPredicate(bin)
				pred.SetResultType(types.New(types.Bool))
				c.Args[i].Value = pred
			}
		}
	}
	if calleeType == nil || calleeType.Kind != types.KindFunction && calleeType.Kind != types.KindGenerator {
		if calleeType != nil && calleeType.Kind == types.KindPrimitive && calleeType.Flags == types.Any {
			return types.New(types.Any)
		}
		p.errorAt(c.Callee, "Callee is not callable")
		return types.New(types.Any)
	}
	if calleeType.Kind == types.KindGenerator {
		return calleeType
	}
	return calleeType.Return
}

func isComparison(op lexer.TokenType) bool {
	switch op {
	case lexer.EQ, lexer.NE, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return true
	default:
		return false
	}
}

func (p *Preparer) inferIndex(ix *ast.Index) *types.Type {
	targetType := p.prepareExpr(ix.Target)
	p.prepareExpr(ix.Key)
	if targetType != nil && targetType.Kind == types.KindPrimitive &&
		targetType.Flags&(types.Object|types.String|types.Any) == 0 {
		p.errorAt(ix.Target, "Expected '%s' to be indexable", targetType)
	}
	return types.New(types.Any)
}

// inferDot type-checks a property access. Object is treated as an open
// type (no fixed property set), so only a statically-known non-dotable
// type such as Int or Bool is rejected (spec.md 4.4: "if closed and b
// unknown -> error").
func (p *Preparer) inferDot(d *ast.Dot) *types.Type {
	if ref, ok := d.Target.(*ast.TypeRef); ok {
		// Static accessor on a type keyword (spec.md 4.5.6); only
		// `string.from` is recognised, any other property is an error.
		if ref.Type != nil && ref.Type.Flags == types.String && d.Property == "from" {
			return types.NewFunction(types.New(types.String), []types.Param{
				{Name: "value", Type: types.New(types.Any), Flags: types.Required},
			})
		}
		p.errorAt(d, "%q has no static property %q", ref.Name, d.Property)
		return types.New(types.Any)
	}
	targetType := p.prepareExpr(d.Target)
	if targetType == nil || targetType.Kind != types.KindPrimitive {
		return types.New(types.Any)
	}
	if targetType.Flags == types.String {
		if sig, ok := StringMethods[d.Property]; ok {
			return sig
		}
		if d.Property == "length" {
			return types.New(types.Int)
		}
		p.errorAt(d, "'string' has no property %q", d.Property)
		return types.New(types.Any)
	}
	dotable := types.Object | types.Any | types.String
	if targetType.Flags&dotable == 0 {
		p.errorAt(d.Target, "Expected '%s' to be dotable", targetType)
	}
	return types.New(types.Any)
}

func (p *Preparer) inferUnary(u *ast.Unary) *types.Type {
	operandType := p.prepareExpr(u.Operand)
	switch u.Op {
	case lexer.BANG:
		if !isBool(operandType) {
			p.errorAt(u, "Expected operand of '!' to be 'bool'")
		}
		return types.New(types.Bool)
	case lexer.TILDE:
		if !isInt(operandType) {
			p.errorAt(u, "Expected operand of '~' to be 'int'")
		}
		return types.New(types.Int)
	case lexer.MINUS:
		if !isArithmetic(operandType) {
			p.errorAt(u, "Expected operand of unary '-' to be 'int' or 'float'")
		}
		return operandType
	case lexer.AMP:
		return types.NewPointer(operandType, types.Read|types.Write|types.Mutate)
	case lexer.STAR:
		if operandType != nil && operandType.Kind == types.KindPointer {
			return operandType.Pointee
		}
		p.errorAt(u.Operand, "Expected operand of '*' to be a pointer")
		return types.New(types.Any)
	case lexer.SPREAD:
		return elementTypeOf(operandType)
	default:
		return types.New(types.Any)
	}
}

func (p *Preparer) inferBinary(b *ast.Binary) *types.Type {
	leftType := p.prepareExpr(b.Left)
	rightType := p.prepareExpr(b.Right)
	switch b.Op {
	case lexer.ANDAND, lexer.OROR:
		if !isBool(leftType) || !isBool(rightType) {
			p.errorAt(b, "Expected left/right of '%s' to be 'bool'", b.Op)
		}
		return types.New(types.Bool)
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		if !isArithmetic(leftType) || !isArithmetic(rightType) {
			p.errorAt(b, "Expected operands of '%s' to be 'int' or 'float'", b.Op)
			return types.New(types.Int)
		}
		if isFloat(leftType) || isFloat(rightType) {
			return types.New(types.Float)
		}
		return types.New(types.Int)
	case lexer.SHL, lexer.SHR, lexer.USHR:
		if !isInt(leftType) || !isInt(rightType) {
			p.errorAt(b, "Expected operands of '%s' to be 'int'", b.Op)
		}
		return types.New(types.Int)
	case lexer.AMP, lexer.PIPE, lexer.CARET:
		if isBool(leftType) && isBool(rightType) {
			return types.New(types.Bool)
		}
		if !isInt(leftType) || !isInt(rightType) {
			p.errorAt(b, "Expected operands of '%s' to be 'bool' or 'int'", b.Op)
		}
		return types.New(types.Int)
	case lexer.EQ, lexer.NE, lexer.LT, lexer.LE, lexer.GT, lexer.GE:
		return types.New(types.Bool)
	case lexer.COALESCE:
		if leftType != nil && !leftType.CanBeNull() {
			p.warnAt(b.Left, "Expected left-hand side of '??' to be possibly 'null'")
		}
		return rightType
	default:
		return types.New(types.Any)
	}
}

func (p *Preparer) inferTernary(t *ast.Ternary) *types.Type {
	condType := p.prepareExpr(t.Cond)
	if !isBool(condType) {
		p.errorAt(t.Cond, "Expected condition of ternary to be 'bool'")
	}
	thenType := p.prepareExpr(t.Then)
	elseType := p.prepareExpr(t.Else)
	if thenType != nil && elseType != nil && thenType.Equal(elseType) {
		return thenType
	}
	return types.New(types.Any)
}
