package parser

import (
	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

var primitiveKeywords = map[lexer.TokenType]types.Flags{
	lexer.VOIDKW:   types.Void,
	lexer.NULLKW:   types.Null,
	lexer.BOOLKW:   types.Bool,
	lexer.INTKW:    types.Int,
	lexer.FLOATKW:  types.Float,
	lexer.STRINGKW: types.String,
	lexer.OBJECTKW: types.Object,
	lexer.ANYKW:    types.Any,
}

// startsType reports whether the current token can begin a type
// reference: a primitive type keyword or an identifier naming a
// user-defined type (spec.md 4.3.2).
func (p *Parser) startsType() bool {
	if _, ok := primitiveKeywords[p.cur().Type]; ok {
		return true
	}
	return p.at(lexer.IDENT)
}

// parseTypeRef parses the "type" nonterminal used by declarations,
// function/generator definitions, parameters, and casts. Unions of
// primitive flags are supported (`int|null`); pointer (`T*`) and
// function-type (`T(params)`) suffixes are supported but are not
// themselves unionable, matching the union-of-primitives-only algebra
// of spec.md 3.3.
func (p *Parser) parseTypeRef() *ast.TypeRef {
	begin := p.cur().Span
	flags, name, t, composite := p.parseTypeAtom()
	if !composite {
		for p.at(lexer.PIPE) {
			p.advance()
			f2, n2, _, comp2 := p.parseTypeAtom()
			if comp2 {
				p.fail(begin, "A union type cannot include a pointer, function, or generator member")
			}
			flags |= f2
			name += "|" + n2
		}
		t = types.New(flags)
	}
	span := source.Join(begin, p.lastSpan())
	return ast.NewTypeRef(span, name, t)
}

func (p *Parser) lastSpan() source.Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.toks[p.pos-1].Span
}

// parseTypeAtom parses one base type plus any pointer/function/generator
// suffixes. composite is true when the result is not a plain primitive
// flag set (so callers know unions no longer apply).
func (p *Parser) parseTypeAtom() (flags types.Flags, name string, t *types.Type, composite bool) {
	tok := p.cur()
	switch {
	case primitiveKeywords[tok.Type] != 0:
		flags = primitiveKeywords[tok.Type]
		name = tok.Literal
		p.advance()
	case tok.Type == lexer.IDENT:
		name = tok.Literal
		p.advance()
		// Named user types are resolved by the preparer; t stays nil here.
	default:
		p.fail(tok.Span, "Expected a type, found %q", tok)
	}

	// Generator suffix: `type...(params)`.
	if p.at(lexer.SPREAD) && p.peek(1).Type == lexer.LPAREN {
		p.advance()
		p.parseTypeList() // generator call signature takes no parameters
		yield := types.New(flags)
		return 0, name + "...(...)", types.NewGenerator(yield), true
	}

	// Function-type suffix: `type(params)`.
	if p.at(lexer.LPAREN) {
		ret := types.New(flags)
		paramTypes := p.parseTypeList()
		fnParams := make([]types.Param, len(paramTypes))
		for i, pt := range paramTypes {
			fnParams[i] = types.Param{Type: pt, Flags: types.Required}
		}
		return 0, name + "(...)", types.NewFunction(ret, fnParams), true
	}

	base := types.New(flags)
	for p.at(lexer.STAR) && p.cur().Contiguous {
		p.advance()
		base = types.NewPointer(base, types.Read|types.Write|types.Mutate)
		name += "*"
		composite = true
	}
	if composite {
		return 0, name, base, true
	}
	return flags, name, nil, false
}

// parseTypeList parses a parenthesized, comma-separated list of bare
// types (no parameter names), used by function-type suffixes.
func (p *Parser) parseTypeList() []*types.Type {
	p.expect(lexer.LPAREN, "to start a type parameter list")
	var out []*types.Type
	for !p.at(lexer.RPAREN) {
		if len(out) > 0 {
			p.expect(lexer.COMMA, "between type parameters")
		}
		ref := p.parseTypeRef()
		out = append(out, ref.Type)
	}
	p.expect(lexer.RPAREN, "to end a type parameter list")
	return out
}
