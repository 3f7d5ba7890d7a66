package semantic

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/types"
)

// prepareBlockLike walks one brace-delimited statement list (or the
// module's top level, which has the same scoping rules). Function and
// generator definitions are pre-declared before the body walk so that
// mutually recursive calls and forward references resolve (spec.md
// 4.4: "all declared symbols at that level are pre-scanned for
// duplicates").
func (p *Preparer) prepareBlockLike(stmts []ast.Stmt) Flags {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.FunctionDef:
			p.predeclareFunction(d)
		case *ast.GeneratorDef:
			p.predeclareGenerator(d)
		}
	}

	flags := Fallthrough
	deadCodeReported := false
	for _, s := range stmts {
		if !flags.Has(Fallthrough) && !deadCodeReported {
			p.warnAt(s, "Unreachable code")
			deadCodeReported = true
		}
		flags = p.prepareStatement(s)
	}
	return flags
}

func (p *Preparer) prepareBlock(b *ast.Block) Flags {
	p.pushScope()
	flags := p.prepareBlockLike(b.Statements)
	p.popScope()
	return flags
}

func (p *Preparer) predeclareFunction(d *ast.FunctionDef) {
	if existing, ok := p.scope.DeclaredHere(d.Name); ok {
		p.errorAt(d, "%q is already declared at %s", d.Name, existing.DeclSpan.String())
		return
	}
	sig := types.NewFunction(p.resolveTypeRef(d.ReturnType), p.paramTypes(d.Params))
	p.scope.Declare(&Symbol{Kind: Readonly, Name: d.Name, Type: sig, DeclSpan: d.Span()})
}

func (p *Preparer) predeclareGenerator(d *ast.GeneratorDef) {
	if existing, ok := p.scope.DeclaredHere(d.Name); ok {
		p.errorAt(d, "%q is already declared at %s", d.Name, existing.DeclSpan.String())
		return
	}
	yield := p.resolveTypeRef(d.YieldType)
	sig := types.NewGenerator(yield)
	sig.Params = p.paramTypes(d.Params)
	p.scope.Declare(&Symbol{Kind: Readonly, Name: d.Name, Type: sig, DeclSpan: d.Span()})
}

func (p *Preparer) paramTypes(params []ast.Param) []types.Param {
	out := make([]types.Param, len(params))
	for i, prm := range params {
		flags := types.Required
		if prm.Variadic {
			flags = types.Variadic
		}
		if prm.Predicate {
			flags |= types.Predicate
		}
		out[i] = types.Param{Name: prm.Name, Type: p.resolveTypeRef(prm.Type), Flags: flags}
	}
	return out
}

// prepareStatement walks one statement and returns whether control can
// fall through it to the next statement in its block.
func (p *Preparer) prepareStatement(s ast.Stmt) Flags {
	switch st := s.(type) {
	case *ast.Block:
		return p.prepareBlock(st)
	case *ast.Declare:
		p.prepareDeclare(st)
		return Fallthrough
	case *ast.Assign:
		p.prepareAssign(st)
		return Fallthrough
	case *ast.Mutate:
		p.prepareMutate(st)
		return Fallthrough
	case *ast.ExprStmt:
		p.prepareExpr(st.Expr)
		return Fallthrough
	case *ast.Break:
		if p.ctx.loopDepth == 0 && p.ctx.switchDepth == 0 {
			p.errorAt(st, "'break' is only valid within a loop or switch")
		}
		return 0
	case *ast.Continue:
		if p.ctx.loopDepth == 0 && p.ctx.switchDepth == 0 {
			p.errorAt(st, "'continue' is only valid within a loop or switch")
		}
		return 0
	case *ast.Do:
		return p.prepareDo(st)
	case *ast.While:
		return p.prepareWhile(st)
	case *ast.If:
		return p.prepareIf(st)
	case *ast.ForClassic:
		return p.prepareForClassic(st)
	case *ast.ForEach:
		return p.prepareForEach(st)
	case *ast.Switch:
		return p.prepareSwitch(st)
	case *ast.Try:
		return p.prepareTry(st)
	case *ast.Return:
		p.prepareReturn(st)
		return 0
	case *ast.Throw:
		p.prepareThrow(st)
		return 0
	case *ast.YieldStmt:
		p.prepareYield(st)
		return Fallthrough
	case *ast.FunctionDef:
		p.prepareFunctionBody(st)
		return Fallthrough
	case *ast.GeneratorDef:
		p.prepareGeneratorBody(st)
		return Fallthrough
	case *ast.TypeDef:
		p.prepareTypeDef(st)
		return Fallthrough
	default:
		return Fallthrough
	}
}

func (p *Preparer) prepareDeclare(d *ast.Declare) {
	if existing, ok := p.scope.DeclaredHere(d.Name); ok {
		p.errorAt(d, "%q is already declared at %s", d.Name, existing.DeclSpan.String())
		return
	}
	if d.IsVar && d.Init == nil {
		p.errorAt(d, "'var' declaration of %q requires an initializer", d.Name)
		return
	}
	if p.scope.ShadowsOuter(d.Name) {
		p.warnAt(d, "%q shadows an outer declaration", d.Name)
	}

	var declType *types.Type
	if d.Type != nil {
		declType = p.resolveTypeRef(d.Type)
	}
	var initType *types.Type
	if d.Init != nil {
		initType = p.prepareExpr(d.Init)
	}

	switch {
	case d.Type == nil:
		// var: infer from the initializer, stripping Void.
		declType = initType.WithoutVoid()
	case d.Init != nil && !declType.Assignable(initType):
		p.errorAt(d, "Cannot initialize '%s' of type '%s' with a value of type '%s'", d.Name, declType, initType)
	}

	p.scope.Declare(&Symbol{Kind: ReadWrite, Name: d.Name, Type: declType, DeclSpan: d.Span()})
}

func (p *Preparer) prepareAssign(a *ast.Assign) {
	targetType := p.prepareLValue(a.Target)
	valueType := p.prepareExpr(a.Value)
	if targetType != nil && valueType != nil && !targetType.Assignable(valueType) {
		p.errorAt(a, "%s cannot be assigned a value of type '%s'", ast.Print(a.Target), valueType)
	}
}

func (p *Preparer) prepareMutate(m *ast.Mutate) {
	targetType := p.prepareLValue(m.Target)
	if m.Value == nil {
		// ++ / -- : int-only, operating on an lvalue (spec.md 4.5.2).
		if targetType != nil && !targetType.Equal(types.New(types.Int)) {
			p.errorAt(m.Target, "Expected operand of '%s' to be 'int'", m.Op)
		}
		return
	}
	valueType := p.prepareExpr(m.Value)
	if targetType == nil || valueType == nil {
		return
	}
	switch m.Op {
	case lexer.PLUSASSIGN, lexer.MINUSASSIGN, lexer.STARASSIGN, lexer.SLASHASSIGN, lexer.PERCENTASSIGN:
		if !isArithmetic(targetType) || !isArithmetic(valueType) {
			p.errorAt(m, "Expected operands of '%s' to be 'int' or 'float'", m.Op)
		}
	case lexer.SHLASSIGN, lexer.SHRASSIGN, lexer.USHRASSIGN:
		if !isInt(targetType) || !isInt(valueType) {
			p.errorAt(m, "Expected operands of '%s' to be 'int'", m.Op)
		}
	case lexer.ANDASSIGN, lexer.ORASSIGN, lexer.XORASSIGN:
		if isBool(targetType) && isBool(valueType) {
			break
		}
		if !isInt(targetType) || !isInt(valueType) {
			p.errorAt(m, "Expected operands of '%s' to be 'bool' or 'int'", m.Op)
		}
	case lexer.ANDANDASSIGN, lexer.ORORASSIGN:
		if !isBool(targetType) || !isBool(valueType) {
			p.errorAt(m, "Expected operands of '%s' to be 'bool'", m.Op)
		}
	case lexer.COALESCEASSIGN:
		if !targetType.CanBeNull() {
			p.warnAt(m.Target, "Expected left-hand side of '??=' to be possibly 'null'")
		}
		if !targetType.Assignable(valueType) {
			p.errorAt(m, "%s cannot be assigned a value of type '%s'", ast.Print(m.Target), valueType)
		}
	}
}

// prepareLValue checks that target is one of the four lvalue forms
// (identifier, index, dot, pointer deref) of spec.md 4.5.2 and returns
// its type.
func (p *Preparer) prepareLValue(target ast.Expr) *types.Type {
	switch target.(type) {
	case *ast.Identifier, *ast.Index, *ast.Dot, *ast.Unary:
		return p.prepareExpr(target)
	default:
		p.errorAt(target, "Expression is not assignable")
		return p.prepareExpr(target)
	}
}

func (p *Preparer) prepareDo(d *ast.Do) Flags {
	p.ctx.loopDepth++
	flags := p.prepareBlock(d.Body)
	p.ctx.loopDepth--
	p.checkBoolCondition(d.Cond, "do-while")
	return flags | Fallthrough
}

func (p *Preparer) prepareWhile(w *ast.While) Flags {
	p.pushScope()
	constant := p.prepareHead(w.Head, "while")
	p.ctx.loopDepth++
	p.prepareBlock(w.Body)
	p.ctx.loopDepth--
	p.popScope()
	flags := Fallthrough
	if constant {
		flags |= Constant
	}
	return flags
}

func (p *Preparer) prepareIf(i *ast.If) Flags {
	p.pushScope()
	constant := p.prepareHead(i.Head, "if")
	thenFlags := p.prepareBlock(i.Then)
	p.popScope()
	elseFlags := Fallthrough
	if i.Else != nil {
		elseFlags = p.prepareStatement(i.Else)
	}
	flags := Flags(0)
	if constant {
		flags |= Constant
	}
	if thenFlags.Has(Fallthrough) || elseFlags.Has(Fallthrough) {
		flags |= Fallthrough
	}
	return flags
}

func (p *Preparer) prepareForClassic(f *ast.ForClassic) Flags {
	p.pushScope()
	if f.Init != nil {
		p.prepareStatement(f.Init)
	}
	if f.Cond != nil {
		p.checkBoolCondition(f.Cond, "for")
	}
	if f.Post != nil {
		p.prepareStatement(f.Post)
	}
	p.ctx.loopDepth++
	p.prepareBlock(f.Body)
	p.ctx.loopDepth--
	p.popScope()
	return Fallthrough
}

func (p *Preparer) prepareForEach(f *ast.ForEach) Flags {
	p.pushScope()
	collType := p.prepareExpr(f.Collection)
	elemType := elementTypeOf(collType)
	if f.IsDecl {
		declType := elemType
		if f.Type != nil {
			declType = p.resolveTypeRef(f.Type)
		}
		p.scope.Declare(&Symbol{Kind: ReadWrite, Name: f.Name, Type: declType, DeclSpan: f.Span()})
	} else if sym, ok := p.scope.Lookup(f.Name); !ok {
		p.errorAt(f, "%q is not declared", f.Name)
	} else if sym.Kind == Builtin || sym.Kind == Readonly {
		p.errorAt(f, "%q is not assignable", f.Name)
	}
	p.ctx.loopDepth++
	p.prepareBlock(f.Body)
	p.ctx.loopDepth--
	p.popScope()
	return Fallthrough
}

func (p *Preparer) prepareSwitch(sw *ast.Switch) Flags {
	p.pushScope()
	p.prepareHead(sw.Head, "switch")
	p.ctx.switchDepth++
	seenDefault := false
	anyFallthrough := false
	for _, c := range sw.Clauses {
		if c.IsDefault {
			if seenDefault {
				p.errorAt(sw, "'switch' may have at most one 'default' clause")
			}
			seenDefault = true
		} else {
			p.prepareExpr(c.Test)
		}
		bodyFlags := p.prepareBlockLike(c.Body)
		if bodyFlags.Has(Fallthrough) {
			anyFallthrough = true
		}
	}
	p.ctx.switchDepth--
	p.popScope()
	flags := Flags(0)
	if anyFallthrough || !seenDefault {
		flags |= Fallthrough
	}
	return flags
}

func (p *Preparer) prepareTry(t *ast.Try) Flags {
	bodyFlags := p.prepareBlock(t.Body)
	any := bodyFlags.Has(Fallthrough)
	for _, c := range t.Catches {
		p.pushScope()
		catchType := p.resolveTypeRef(c.Type)
		p.scope.Declare(&Symbol{Kind: ReadWrite, Name: c.Name, Type: catchType, DeclSpan: c.Body.Span()})
		p.ctx.catchDepth++
		cFlags := p.prepareBlock(c.Body)
		p.ctx.catchDepth--
		p.popScope()
		if cFlags.Has(Fallthrough) {
			any = true
		}
	}
	if t.Finally != nil {
		p.prepareBlock(t.Finally)
	}
	flags := Flags(0)
	if any {
		flags |= Fallthrough
	}
	return flags
}

func (p *Preparer) prepareReturn(r *ast.Return) {
	if p.ctx.returnType == nil {
		p.errorAt(r, "'return' is only valid within a function or generator body")
		return
	}
	var valueType *types.Type
	if r.Value != nil {
		valueType = p.prepareExpr(r.Value)
	} else {
		valueType = types.New(types.Void)
	}
	if !p.ctx.returnType.Assignable(valueType) {
		p.errorAt(r, "Cannot return a value of type '%s' from a function returning '%s'", valueType, p.ctx.returnType)
	}
}

func (p *Preparer) prepareThrow(th *ast.Throw) {
	if th.Value == nil {
		if p.ctx.catchDepth == 0 {
			p.errorAt(th, "'throw' without an expression is only valid within a 'catch' block")
		}
		return
	}
	p.prepareExpr(th.Value)
}

func (p *Preparer) prepareYield(y *ast.YieldStmt) {
	if p.ctx.yieldType == nil {
		p.errorAt(y, "'yield' is only valid within a generator body")
		return
	}
	valueType := p.prepareExpr(y.Value)
	if y.Spread {
		valueType = elementTypeOf(valueType)
	}
	if !p.ctx.yieldType.Assignable(valueType) {
		p.errorAt(y, "Cannot yield a value of type '%s' from a generator yielding '%s'", valueType, p.ctx.yieldType)
	}
}

func (p *Preparer) prepareFunctionBody(d *ast.FunctionDef) {
	sym, _ := p.scope.Lookup(d.Name)
	p.pushScope()
	outer := p.ctx
	p.ctx = funcContext{returnType: sym.Type.Return}
	p.declareParams(d.Params)
	p.prepareBlockLike(d.Body.Statements)
	p.ctx = outer
	p.popScope()
}

func (p *Preparer) prepareGeneratorBody(d *ast.GeneratorDef) {
	sym, _ := p.scope.Lookup(d.Name)
	p.pushScope()
	outer := p.ctx
	p.ctx = funcContext{returnType: sym.Type.Return, yieldType: sym.Type.Yield}
	p.declareParams(d.Params)
	p.prepareBlockLike(d.Body.Statements)
	p.ctx = outer
	p.popScope()
}

func (p *Preparer) declareParams(params []ast.Param) {
	for _, prm := range params {
		p.scope.Declare(&Symbol{
			Kind: ReadWrite, Name: prm.Name,
			Type: p.resolveTypeRef(prm.Type),
		})
	}
}

func (p *Preparer) prepareTypeDef(td *ast.TypeDef) {
	if existing, ok := p.scope.DeclaredHere(td.Name); ok {
		p.errorAt(td, "%q is already declared at %s", td.Name, existing.DeclSpan.String())
		return
	}
	t := p.resolveTypeRef(td.Type)
	p.scope.Declare(&Symbol{Kind: Readonly, Name: td.Name, Type: t, DeclSpan: td.Span()})
}

// prepareHead type-checks an if/while/switch condition slot, which is
// either a plain expression or a guard declaration (spec.md glossary:
// Guard), and reports whether the condition folds to a constant.
func (p *Preparer) prepareHead(h ast.Head, construct string) bool {
	if h.Guard != nil {
		initType := p.prepareExpr(h.Guard.Init)
		declType := initType.WithoutVoid()
		if h.Guard.Type != nil {
			declType = p.resolveTypeRef(h.Guard.Type)
		}
		p.scope.Declare(&Symbol{Kind: ReadWrite, Name: h.Guard.Name, Type: declType.WithoutNull(), DeclSpan: h.Span()})
		return false
	}
	return p.checkBoolCondition(h.Expr, construct)
}

func (p *Preparer) checkBoolCondition(e ast.Expr, construct string) bool {
	t := p.prepareExpr(e)
	if t != nil && !isBool(t) {
		p.errorAt(e, "Condition in '%s' statement must be 'bool'", construct)
	}
	if lit, ok := e.(*ast.BoolLiteral); ok {
		p.warnAt(e, "Condition in '%s' statement is constant", construct)
		return lit.Value
	}
	return false
}
