package lexer

import (
	"io"

	"github.com/eggscript/egg/internal/source"
)

// Tokenizer layers keyword classification, operator maximal-munch
// splitting, and random-access lookahead on top of Lexer (spec.md 4.2).
// Once the underlying source is exhausted it returns an EOF token
// indefinitely, so callers never need a separate "done" check.
type Tokenizer struct {
	lex     *Lexer
	buf     []Token
	pending []Token // unsplit tail of an operator run mid-flight
	err     error
}

// NewTokenizer wraps lex.
func NewTokenizer(lex *Lexer) *Tokenizer {
	return &Tokenizer{lex: lex}
}

// Err returns the first lexical error encountered, if any. Once set it
// is sticky: further Peek/Next calls keep returning EOF.
func (t *Tokenizer) Err() error { return t.err }

// Peek returns the token n positions ahead (0 = the next token to be
// consumed by Next) without consuming anything.
func (t *Tokenizer) Peek(n int) Token {
	t.fill(n)
	if n < len(t.buf) {
		return t.buf[n]
	}
	return eofToken()
}

// Next consumes and returns the next token.
func (t *Tokenizer) Next() Token {
	tok := t.Peek(0)
	if len(t.buf) > 0 {
		t.buf = t.buf[1:]
	}
	return tok
}

func eofToken() Token { return Token{Type: EOF, Literal: "", Contiguous: true} }

func (t *Tokenizer) fill(n int) {
	for len(t.buf) <= n {
		tok, done := t.scanOne()
		if done {
			return
		}
		t.buf = append(t.buf, tok)
	}
}

// scanOne produces the next classified token: either the head of a
// pending operator-run split, or a fresh item pulled from the lexer
// after skipping whitespace/comments (tracked for the Contiguous flag).
func (t *Tokenizer) scanOne() (Token, bool) {
	if len(t.pending) > 0 {
		tok := t.pending[0]
		t.pending = t.pending[1:]
		return tok, false
	}
	if t.err != nil {
		return Token{}, true
	}

	sawGap := false
	for {
		item, err := t.lex.Next()
		if err == io.EOF {
			return Token{}, true
		}
		if err != nil {
			t.err = err
			return Token{}, true
		}
		switch item.Kind {
		case ItemWhitespace, ItemComment:
			sawGap = true
			continue
		case ItemIdentifier:
			return Token{Type: LookupIdentifier(item.Verbatim), Literal: item.Verbatim, Span: item.Span, Contiguous: !sawGap}, false
		case ItemInteger:
			return Token{Type: INT, Literal: item.Verbatim, Value: item.Value, Span: item.Span, Contiguous: !sawGap}, false
		case ItemFloat:
			return Token{Type: FLOAT, Literal: item.Verbatim, Value: item.Value, Span: item.Span, Contiguous: !sawGap}, false
		case ItemString:
			return Token{Type: STRING, Literal: item.Verbatim, Value: item.Value, Span: item.Span, Contiguous: !sawGap}, false
		case ItemOperator:
			t.splitIntoPending(item, !sawGap)
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok, false
		}
	}
}

// splitIntoPending breaks an operator-character run into individual
// maximal-munch tokens. Only the first carries the run's own
// contiguity; every later token in the same run is, by construction,
// adjacent to the one before it.
func (t *Tokenizer) splitIntoPending(item Item, firstContiguous bool) {
	run := item.Verbatim
	loc := item.Span.Begin
	first := true
	for len(run) > 0 {
		typ, width, ok := splitOperatorRun(run)
		if !ok {
			t.err = &Error{Span: item.Span, Message: "internal: unrecognized operator text"}
			return
		}
		text := run[:width]
		end := advanceLocation(loc, text)
		contiguous := true
		if first {
			contiguous = firstContiguous
		}
		t.pending = append(t.pending, Token{
			Type:       typ,
			Literal:    text,
			Span:       source.Span{Begin: loc, End: end},
			Contiguous: contiguous,
		})
		loc = end
		run = run[width:]
		first = false
	}
}

func advanceLocation(begin source.Location, text string) source.Location {
	col := begin.Column
	for range text {
		col++
	}
	return source.Location{Line: begin.Line, Column: col}
}
