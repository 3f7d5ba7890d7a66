// Package parser implements the recursive-descent grammar of spec.md
// 4.3: backtracking via cursor marks, single-diagnostic abort on the
// first syntax error, and the negative-literal folding and `a--b`
// vexatious-case handling spec.md 4.3.3 calls out.
package parser

import (
	"fmt"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/diag"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// Parser turns a token stream into an *ast.Module. A mark records the
// current cursor position and restore rewinds the cursor to it, giving
// backtracking without mutating consumed state (spec.md 4.3).
type Parser struct {
	tz       *lexer.Tokenizer
	resource string
	toks     []lexer.Token
	pos      int
}

// New wraps tz. resource names the source for diagnostics (spec.md 6.2).
func New(tz *lexer.Tokenizer, resource string) *Parser {
	return &Parser{tz: tz, resource: resource}
}

// Parse runs the parser to completion, returning the module or the
// first syntax error encountered. Parsing never recovers from an error
// (spec.md 4.3.2).
func (p *Parser) Parse() (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*diag.Error); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	var stmts []ast.Stmt
	for !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	return &ast.Module{Resource: p.resource, Statements: stmts}, nil
}

// --- cursor plumbing ---

func (p *Parser) fetch(n int) lexer.Token {
	for len(p.toks) <= n {
		p.toks = append(p.toks, p.tz.Next())
	}
	return p.toks[n]
}

func (p *Parser) cur() lexer.Token        { return p.fetch(p.pos) }
func (p *Parser) peek(n int) lexer.Token  { return p.fetch(p.pos + n) }
func (p *Parser) at(t lexer.TokenType) bool { return p.cur().Type == t }

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	p.pos++
	return tok
}

// mark snapshots the cursor for a later restore; a mark that is never
// restored is simply dropped, keeping the tokens consumed since.
type mark int

func (p *Parser) mark() mark { return mark(p.pos) }
func (p *Parser) restore(m mark) { p.pos = int(m) }

func (p *Parser) fail(span source.Span, format string, args ...any) {
	panic(diag.New(span, format, args...))
}

// expect consumes the current token if it matches t, else aborts with a
// span-carrying diagnostic naming what was expected and where.
func (p *Parser) expect(t lexer.TokenType, context string) lexer.Token {
	if !p.at(t) {
		p.fail(p.cur().Span, "Expected %q %s, found %q", t, context, p.cur())
	}
	return p.advance()
}

func (p *Parser) identName(context string) (string, source.Span) {
	tok := p.expect(lexer.IDENT, context)
	return tok.Literal, tok.Span
}
