// Package lexer turns E source text into a lazy sequence of classified
// lexer items (spec.md 4.1) and then, via Tokenizer, into a
// random-access token stream with keyword and operator classification
// (spec.md 4.2).
package lexer

import "github.com/eggscript/egg/internal/source"

// ItemKind classifies a raw lexer item, before keyword/operator
// classification.
type ItemKind int

const (
	ItemWhitespace ItemKind = iota
	ItemComment
	ItemInteger
	ItemFloat
	ItemString
	ItemIdentifier
	ItemOperator
)

func (k ItemKind) String() string {
	switch k {
	case ItemWhitespace:
		return "whitespace"
	case ItemComment:
		return "comment"
	case ItemInteger:
		return "integer"
	case ItemFloat:
		return "float"
	case ItemString:
		return "string"
	case ItemIdentifier:
		return "identifier"
	case ItemOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Item is one lexical unit recognized straight out of the character
// stream: whitespace, a comment, a literal, an identifier or an
// operator-character run. Verbatim always round-trips to the exact
// source text consumed, so concatenating every item's Verbatim
// reconstructs the input (spec.md 8).
type Item struct {
	Kind ItemKind
	// Verbatim is the exact source text this item consumed.
	Verbatim string
	// Value holds the decoded literal payload: int64 for ItemInteger,
	// float64 for ItemFloat, string for ItemString (already unescaped).
	// Nil for every other kind.
	Value any
	Span  source.Span
}
