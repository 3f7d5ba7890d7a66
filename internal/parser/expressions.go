package parser

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// precedence levels, lowest to highest, mirroring spec.md 4.3.1 #2-12.
// Ternary (#1) and unary/postfix/primary (#13-15) sit outside this
// table.
const (
	precNone = iota
	precCoalesce
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[lexer.TokenType]int{
	lexer.COALESCE: precCoalesce,
	lexer.OROR:     precOr,
	lexer.ANDAND:   precAnd,
	lexer.PIPE:     precBitOr,
	lexer.CARET:    precBitXor,
	lexer.AMP:      precBitAnd,
	lexer.EQ:       precEquality,
	lexer.NE:       precEquality,
	lexer.LT:       precRelational,
	lexer.LE:       precRelational,
	lexer.GT:       precRelational,
	lexer.GE:       precRelational,
	lexer.SHL:      precShift,
	lexer.SHR:      precShift,
	lexer.USHR:     precShift,
	lexer.PLUS:     precAdditive,
	lexer.MINUS:    precAdditive,
	lexer.STAR:     precMultiplicative,
	lexer.SLASH:    precMultiplicative,
	lexer.PERCENT:  precMultiplicative,
}

// parseExpression parses the full ternary/binary precedence ladder of
// spec.md 4.3.1, starting at the ternary level (#1, right-associative).
func (p *Parser) parseExpression() ast.Expr {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseBinary(precCoalesce)
	if p.at(lexer.QUESTION) {
		p.advance()
		then := p.parseExpression()
		p.expect(lexer.COLON, "in ternary expression")
		els := p.parseExpression()
		return ast.NewTernary(source.Join(cond.Span(), els.Span()), cond, then, els)
	}
	return cond
}

// parseBinary implements left-associative precedence climbing over
// spec.md 4.3.1 #2-11, folding in the `a--b` vexatious case: a bare
// `--` at the additive level is `- (-b)`, never a postfix decrement,
// since increment/decrement are statements, never operators inside an
// expression (spec.md 4.3.1 #11, §8).
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		tok := p.cur()
		opType := tok.Type
		prec, ok := binaryPrecedence[opType]
		negateRight := false
		if !ok && opType == lexer.DEC {
			ok, prec, opType, negateRight = true, precAdditive, lexer.MINUS, true
		}
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		if negateRight {
			right = ast.NewUnary(right.Span(), lexer.MINUS, right)
		}
		left = ast.NewBinary(source.Join(left.Span(), right.Span()), opType, left, right)
	}
}

var unaryOps = map[lexer.TokenType]bool{
	lexer.BANG: true, lexer.AMP: true, lexer.STAR: true, lexer.MINUS: true, lexer.TILDE: true, lexer.SPREAD: true,
}

// parseUnary implements #13, including negative-literal folding: a `-`
// immediately contiguous with an Int or Float literal folds into the
// literal rather than producing a Unary node, preserving representability
// of math.MinInt64 (spec.md 4.3.3).
func (p *Parser) parseUnary() ast.Expr {
	tok := p.cur()
	if tok.Type == lexer.MINUS {
		next := p.peek(1)
		if next.Contiguous && next.Type == lexer.INT {
			p.advance()
			lit := p.advance()
			return ast.NewFoldedIntLiteral(source.Join(tok.Span, lit.Span), -lit.Value.(int64))
		}
		if next.Contiguous && next.Type == lexer.FLOAT {
			p.advance()
			lit := p.advance()
			return ast.NewFoldedFloatLiteral(source.Join(tok.Span, lit.Span), -lit.Value.(float64))
		}
	}
	if !unaryOps[tok.Type] {
		return p.parsePostfix()
	}
	p.advance()
	operand := p.parseUnary()
	return ast.NewUnary(source.Join(tok.Span, operand.Span()), tok.Type, operand)
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case lexer.LBRACKET:
			p.advance()
			idx := p.parseExpression()
			end := p.expect(lexer.RBRACKET, "to close an index expression")
			expr = ast.NewIndex(source.Join(expr.Span(), end.Span), expr, idx)
		case lexer.LPAREN:
			p.advance()
			args := p.parseArgs()
			end := p.expect(lexer.RPAREN, "at end of function call parameter list")
			expr = ast.NewCall(source.Join(expr.Span(), end.Span), expr, args)
		case lexer.DOT, lexer.QDOT:
			nullSafe := p.cur().Type == lexer.QDOT
			p.advance()
			name, nameSpan := p.identName("after '.'")
			expr = ast.NewDot(source.Join(expr.Span(), nameSpan), expr, name, nullSafe)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Argument {
	var args []ast.Argument
	for !p.at(lexer.RPAREN) {
		if len(args) > 0 {
			p.expect(lexer.COMMA, "between call arguments")
		}
		name := ""
		if p.at(lexer.IDENT) && p.peek(1).Type == lexer.COLON {
			name = p.advance().Literal
			p.advance()
		}
		args = append(args, ast.Argument{Name: name, Value: p.parseExpression()})
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.NULLKW:
		p.advance()
		return ast.NewNullLiteral(tok.Span)
	case lexer.TRUEKW:
		p.advance()
		return ast.NewBoolLiteral(tok.Span, true)
	case lexer.FALSEKW:
		p.advance()
		return ast.NewBoolLiteral(tok.Span, false)
	case lexer.INT:
		p.advance()
		return ast.NewIntLiteral(tok.Span, tok.Value.(int64))
	case lexer.FLOAT:
		p.advance()
		return ast.NewFloatLiteral(tok.Span, tok.Value.(float64))
	case lexer.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Span, tok.Value.(string))
	case lexer.IDENT:
		p.advance()
		return ast.NewIdentifier(tok.Span, tok.Literal)
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN, "to close a parenthesized expression")
		return inner
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		return p.parseObjectLiteral()
	default:
		if flags, ok := primitiveKeywords[tok.Type]; ok {
			// A bare type keyword used as a value is the cast/static-accessor
			// form of spec.md 4.3.1 #15 (`int(x)`, `string.from(x)`); leave
			// any `(`/`.` suffix to parsePostfix rather than letting
			// parseTypeRef's function-type-suffix grammar claim it.
			p.advance()
			return ast.NewTypeRef(tok.Span, tok.Literal, types.New(flags))
		}
		p.fail(tok.Span, "Unexpected token %q", tok)
		panic("unreachable")
	}
}

// parseArrayLiteral parses `[e1, e2, ...]`; a trailing comma is a
// syntax error (spec.md 4.3.1).
func (p *Parser) parseArrayLiteral() ast.Expr {
	begin := p.expect(lexer.LBRACKET, "to start an array literal")
	var elems []ast.Expr
	for !p.at(lexer.RBRACKET) {
		if len(elems) > 0 {
			p.expect(lexer.COMMA, "between array elements")
		}
		if p.at(lexer.RBRACKET) {
			p.fail(p.cur().Span, "Trailing comma is not allowed in an array literal")
		}
		elems = append(elems, p.parseExpression())
	}
	end := p.expect(lexer.RBRACKET, "to close an array literal")
	return ast.NewArrayLiteral(source.Join(begin.Span, end.Span), elems)
}

// parseObjectLiteral parses `{key: val, ...}`; keys must be unique
// identifiers (spec.md 4.3.1), checked here since it is purely
// syntactic and needs no type information.
func (p *Parser) parseObjectLiteral() ast.Expr {
	begin := p.expect(lexer.LBRACE, "to start an object literal")
	seen := map[string]bool{}
	var entries []ast.ObjectEntry
	for !p.at(lexer.RBRACE) {
		if len(entries) > 0 {
			p.expect(lexer.COMMA, "between object entries")
		}
		key, keySpan := p.identName("as an object literal key")
		if seen[key] {
			p.fail(keySpan, "Duplicate object literal key %q", key)
		}
		seen[key] = true
		p.expect(lexer.COLON, "after object literal key")
		entries = append(entries, ast.ObjectEntry{Key: key, Value: p.parseExpression()})
	}
	end := p.expect(lexer.RBRACE, "to close an object literal")
	return ast.NewObjectLiteral(source.Join(begin.Span, end.Span), entries)
}
