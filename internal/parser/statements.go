package parser

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
)

// parseStatement dispatches on the current token per the grammar of
// spec.md 4.3.2.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.DO:
		return p.parseDo()
	case lexer.FOR:
		return p.parseFor()
	case lexer.SWITCH:
		return p.parseSwitch()
	case lexer.TRY:
		return p.parseTry()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.THROW:
		return p.parseThrow()
	case lexer.YIELD:
		return p.parseYieldStmt()
	case lexer.BREAK:
		tok := p.advance()
		p.expect(lexer.SEMICOLON, "after 'break'")
		return ast.NewBreak(tok.Span)
	case lexer.CONTINUE:
		tok := p.advance()
		p.expect(lexer.SEMICOLON, "after 'continue'")
		return ast.NewContinue(tok.Span)
	case lexer.VAR:
		return p.parseVarDeclare()
	case lexer.TYPEKW:
		return p.parseTypeDef()
	}

	if p.startsType() {
		m := p.mark()
		if stmt, ok := p.tryParseTypedStatement(); ok {
			return stmt
		}
		p.restore(m)
	}
	return p.parseSimpleStatementStmt()
}

// parseBodyBlock parses the body of an if/while/do/for: a brace-delimited
// block, or (spec.md 8's generator example shows a bare `yield i;` as a
// 'for' body) a single statement wrapped in a synthetic one-statement
// block so every control-flow body is uniformly *ast.Block.
func (p *Parser) parseBodyBlock() *ast.Block {
	if p.at(lexer.LBRACE) {
		return p.parseBlock()
	}
	stmt := p.parseStatement()
	return ast.NewBlock(stmt.Span(), []ast.Stmt{stmt})
}

func (p *Parser) parseBlock() *ast.Block {
	begin := p.expect(lexer.LBRACE, "to start a block")
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	end := p.expect(lexer.RBRACE, "to close a block")
	return ast.NewBlock(source.Join(begin.Span, end.Span), stmts)
}

// parseHead parses the `(expr-or-guard)` condition slot shared by
// if/while/switch (spec.md 4.3.2). A guard has the form `type id = expr`.
func (p *Parser) parseHead() ast.Head {
	p.expect(lexer.LPAREN, "to start a condition")
	var head ast.Head
	if p.startsType() {
		m := p.mark()
		if guard, ok := p.tryParseGuard(); ok {
			head = ast.Head{Guard: guard}
		} else {
			p.restore(m)
			head = ast.Head{Expr: p.parseExpression()}
		}
	} else {
		head = ast.Head{Expr: p.parseExpression()}
	}
	p.expect(lexer.RPAREN, "to close a condition")
	return head
}

func (p *Parser) tryParseGuard() (*ast.Guard, bool) {
	typ := p.parseTypeRef()
	if !p.at(lexer.IDENT) {
		return nil, false
	}
	name := p.advance().Literal
	if !p.at(lexer.ASSIGN) {
		return nil, false
	}
	p.advance()
	init := p.parseExpression()
	return &ast.Guard{Type: typ, Name: name, Init: init}, true
}

func (p *Parser) parseIf() *ast.If {
	begin := p.expect(lexer.IF, "")
	head := p.parseHead()
	then := p.parseBodyBlock()
	var els ast.Stmt
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBodyBlock()
		}
	}
	span := source.Join(begin.Span, then.Span())
	if els != nil {
		span = source.Join(span, els.Span())
	}
	return ast.NewIf(span, head, then, els)
}

func (p *Parser) parseWhile() *ast.While {
	begin := p.expect(lexer.WHILE, "")
	head := p.parseHead()
	body := p.parseBodyBlock()
	return ast.NewWhile(source.Join(begin.Span, body.Span()), head, body)
}

func (p *Parser) parseDo() *ast.Do {
	begin := p.expect(lexer.DO, "")
	body := p.parseBlock()
	p.expect(lexer.WHILE, "after 'do' block")
	p.expect(lexer.LPAREN, "to start the 'do...while' condition")
	cond := p.parseExpression()
	end := p.expect(lexer.RPAREN, "to close the 'do...while' condition")
	p.expect(lexer.SEMICOLON, "after 'do...while'")
	return ast.NewDo(source.Join(begin.Span, end.Span), body, cond)
}

// parseFor disambiguates the classic and foreach forms of spec.md 4.3.2
// by a single backtracking attempt at the foreach shape, since both
// begin with `for (`.
func (p *Parser) parseFor() ast.Stmt {
	begin := p.expect(lexer.FOR, "")
	p.expect(lexer.LPAREN, "to start a 'for' clause")

	m := p.mark()
	if stmt, ok := p.tryParseForEach(begin.Span); ok {
		return stmt
	}
	p.restore(m)

	var init ast.Stmt
	if !p.at(lexer.SEMICOLON) {
		init = p.parseSimpleStmtNoSemi()
	}
	p.expect(lexer.SEMICOLON, "after 'for' initializer")
	var cond ast.Expr
	if !p.at(lexer.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON, "after 'for' condition")
	var post ast.Stmt
	if !p.at(lexer.RPAREN) {
		post = p.parseSimpleStmtNoSemi()
	}
	p.expect(lexer.RPAREN, "to close a 'for' clause")
	body := p.parseBodyBlock()
	return ast.NewForClassic(source.Join(begin.Span, body.Span()), init, cond, post, body)
}

func (p *Parser) tryParseForEach(begin source.Span) (ast.Stmt, bool) {
	var typ *ast.TypeRef
	isDecl := false
	var name string
	if p.startsType() {
		tm := p.mark()
		t := p.parseTypeRef()
		if p.at(lexer.IDENT) {
			typ, isDecl, name = t, true, p.advance().Literal
		} else {
			p.restore(tm)
		}
	}
	if name == "" {
		if !p.at(lexer.IDENT) {
			return nil, false
		}
		name = p.advance().Literal
	}
	if !p.at(lexer.COLON) {
		return nil, false
	}
	p.advance()
	collection := p.parseExpression()
	p.expect(lexer.RPAREN, "to close a 'foreach' clause")
	body := p.parseBodyBlock()
	return ast.NewForEach(source.Join(begin, body.Span()), typ, name, isDecl, collection, body), true
}

func (p *Parser) parseSwitch() *ast.Switch {
	begin := p.expect(lexer.SWITCH, "")
	head := p.parseHead()
	p.expect(lexer.LBRACE, "to start a 'switch' body")
	var clauses []ast.Clause
	sawDefault := false
	for !p.at(lexer.RBRACE) {
		var clause ast.Clause
		if p.at(lexer.DEFAULT) {
			if sawDefault {
				p.fail(p.cur().Span, "A 'switch' statement may have at most one 'default' clause")
			}
			sawDefault = true
			p.advance()
			clause.IsDefault = true
		} else {
			p.expect(lexer.CASE, "to start a 'switch' clause")
			clause.Test = p.parseExpression()
		}
		p.expect(lexer.COLON, "after 'switch' clause label")
		for !p.at(lexer.CASE) && !p.at(lexer.DEFAULT) && !p.at(lexer.RBRACE) {
			clause.Body = append(clause.Body, p.parseStatement())
		}
		if !clauseTerminates(clause.Body) {
			p.fail(p.cur().Span, "Each 'switch' clause must end with 'break', 'continue', 'return', or 'throw'")
		}
		clauses = append(clauses, clause)
	}
	end := p.expect(lexer.RBRACE, "to close a 'switch' body")
	return ast.NewSwitch(source.Join(begin.Span, end.Span), head, clauses)
}

// clauseTerminates reports whether a switch clause's body ends with one
// of the four statements spec.md 4.3.2 requires; fallthrough is never
// implicit, so an empty clause or one that ends on anything else fails.
func clauseTerminates(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	switch body[len(body)-1].(type) {
	case *ast.Break, *ast.Continue, *ast.Return, *ast.Throw:
		return true
	default:
		return false
	}
}

func (p *Parser) parseTry() *ast.Try {
	begin := p.expect(lexer.TRY, "")
	body := p.parseBlock()
	var catches []ast.Catch
	for p.at(lexer.CATCH) {
		p.advance()
		p.expect(lexer.LPAREN, "to start a 'catch' clause")
		typ := p.parseTypeRef()
		name, _ := p.identName("as a 'catch' clause parameter name")
		p.expect(lexer.RPAREN, "to close a 'catch' clause")
		catchBody := p.parseBlock()
		catches = append(catches, ast.Catch{Type: typ, Name: name, Body: catchBody})
	}
	var finally *ast.Block
	end := body.Span()
	if len(catches) > 0 {
		end = catches[len(catches)-1].Body.Span()
	}
	if p.at(lexer.FINALLY) {
		p.advance()
		finally = p.parseBlock()
		end = finally.Span()
	}
	if len(catches) == 0 && finally == nil {
		p.fail(p.cur().Span, "A 'try' statement needs at least one 'catch' or a 'finally'")
	}
	return ast.NewTry(source.Join(begin.Span, end), body, catches, finally)
}

func (p *Parser) parseReturn() *ast.Return {
	begin := p.expect(lexer.RETURN, "")
	var value ast.Expr
	if !p.at(lexer.SEMICOLON) {
		value = p.parseExpression()
	}
	end := p.expect(lexer.SEMICOLON, "after 'return'")
	span := source.Join(begin.Span, end.Span)
	return ast.NewReturn(span, value)
}

func (p *Parser) parseThrow() *ast.Throw {
	begin := p.expect(lexer.THROW, "")
	var value ast.Expr
	if !p.at(lexer.SEMICOLON) {
		value = p.parseExpression()
	}
	end := p.expect(lexer.SEMICOLON, "after 'throw'")
	return ast.NewThrow(source.Join(begin.Span, end.Span), value)
}

func (p *Parser) parseYieldStmt() *ast.YieldStmt {
	begin := p.expect(lexer.YIELD, "")
	spread := false
	if p.at(lexer.SPREAD) {
		spread = true
		p.advance()
	}
	value := p.parseExpression()
	end := p.expect(lexer.SEMICOLON, "after 'yield'")
	return ast.NewYieldStmt(source.Join(begin.Span, end.Span), value, spread)
}

func (p *Parser) parseVarDeclare() *ast.Declare {
	begin := p.expect(lexer.VAR, "")
	name, _ := p.identName("after 'var'")
	p.expect(lexer.ASSIGN, "'var' declarations require an initializer")
	init := p.parseExpression()
	end := p.expect(lexer.SEMICOLON, "after 'var' declaration")
	return ast.NewDeclare(source.Join(begin.Span, end.Span), nil, name, init, true)
}

// parseTypeDef parses `type Name = typeRef;`, naming a type expression
// for later reuse by the preparer's symbol table.
func (p *Parser) parseTypeDef() *ast.TypeDef {
	begin := p.expect(lexer.TYPEKW, "")
	name, _ := p.identName("after 'type'")
	p.expect(lexer.ASSIGN, "in type definition")
	ref := p.parseTypeRef()
	end := p.expect(lexer.SEMICOLON, "after type definition")
	return ast.NewTypeDef(source.Join(begin.Span, end.Span), name, ref)
}

// tryParseTypedStatement attempts to parse a declaration,
// function-definition, or generator-definition starting at the current
// position, which must begin with a type reference (spec.md 4.3.2). It
// reports ok=false, leaving the cursor advanced, whenever the `type id`
// prefix parses but what follows fits none of those three shapes; the
// caller is responsible for restoring its own mark in that case.
func (p *Parser) tryParseTypedStatement() (ast.Stmt, bool) {
	begin := p.cur().Span
	typ := p.parseTypeRef()

	if p.at(lexer.SPREAD) {
		p.advance()
		name, ok := p.identNameOK()
		if !ok || !p.at(lexer.LPAREN) {
			return nil, false
		}
		params := p.parseParams()
		body := p.parseBlock()
		return ast.NewGeneratorDef(source.Join(begin, body.Span()), typ, name, params, body), true
	}

	name, ok := p.identNameOK()
	if !ok {
		return nil, false
	}
	switch p.cur().Type {
	case lexer.LPAREN:
		params := p.parseParams()
		body := p.parseBlock()
		return ast.NewFunctionDef(source.Join(begin, body.Span()), typ, name, params, body), true
	case lexer.ASSIGN:
		p.advance()
		init := p.parseExpression()
		end := p.expect(lexer.SEMICOLON, "after declaration")
		return ast.NewDeclare(source.Join(begin, end.Span), typ, name, init, false), true
	case lexer.SEMICOLON:
		end := p.advance()
		return ast.NewDeclare(source.Join(begin, end.Span), typ, name, nil, false), true
	default:
		return nil, false
	}
}

// identNameOK is identName without panicking: used where a non-match
// should fall back to backtracking instead of aborting the parse.
func (p *Parser) identNameOK() (string, bool) {
	if !p.at(lexer.IDENT) {
		return "", false
	}
	return p.advance().Literal, true
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(lexer.LPAREN, "to start a parameter list")
	var params []ast.Param
	for !p.at(lexer.RPAREN) {
		if len(params) > 0 {
			p.expect(lexer.COMMA, "between parameters")
		}
		typ := p.parseTypeRef()
		variadic := false
		if p.at(lexer.SPREAD) {
			variadic = true
			p.advance()
		}
		name, _ := p.identName("as a parameter name")
		params = append(params, ast.Param{Name: name, Type: typ, Variadic: variadic})
	}
	p.expect(lexer.RPAREN, "to close a parameter list")
	return params
}

var compoundAssignOps = map[lexer.TokenType]bool{
	lexer.PLUSASSIGN: true, lexer.MINUSASSIGN: true, lexer.STARASSIGN: true, lexer.SLASHASSIGN: true,
	lexer.PERCENTASSIGN: true, lexer.ANDASSIGN: true, lexer.ORASSIGN: true, lexer.XORASSIGN: true,
	lexer.SHLASSIGN: true, lexer.SHRASSIGN: true, lexer.USHRASSIGN: true, lexer.COALESCEASSIGN: true,
	lexer.ANDANDASSIGN: true, lexer.ORORASSIGN: true,
}

// parseSimpleStmtNoSemi parses one assignment, mutation, or call-stmt
// without consuming a trailing terminator, for use in a 'for' clause's
// init/post slots (spec.md 4.3.2's "simple-stmt").
func (p *Parser) parseSimpleStmtNoSemi() ast.Stmt {
	if p.at(lexer.INC) || p.at(lexer.DEC) {
		op := p.advance()
		target := p.parseUnary()
		return ast.NewMutate(source.Join(op.Span, target.Span()), target, op.Type, nil)
	}
	expr := p.parseExpression()
	switch {
	case p.at(lexer.ASSIGN):
		p.advance()
		rhs := p.parseExpression()
		return ast.NewAssign(source.Join(expr.Span(), rhs.Span()), expr, rhs)
	case compoundAssignOps[p.cur().Type]:
		op := p.advance()
		rhs := p.parseExpression()
		return ast.NewMutate(source.Join(expr.Span(), rhs.Span()), expr, op.Type, rhs)
	case p.at(lexer.INC) || p.at(lexer.DEC):
		op := p.advance()
		return ast.NewMutate(source.Join(expr.Span(), op.Span), expr, op.Type, nil)
	default:
		if _, ok := expr.(*ast.Call); !ok {
			p.fail(expr.Span(), "Expected an assignment, mutation, or function call")
		}
		return ast.NewExprStmt(expr.Span(), expr)
	}
}

// parseSimpleStatementStmt wraps parseSimpleStmtNoSemi with the
// terminating ';' every top-level simple statement requires.
func (p *Parser) parseSimpleStatementStmt() ast.Stmt {
	stmt := p.parseSimpleStmtNoSemi()
	p.expect(lexer.SEMICOLON, "after statement")
	return stmt
}
