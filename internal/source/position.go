// Package source provides byte- and rune-level access to E program text:
// UTF-8 decoding with BOM handling (CharStream) and line/column tracking
// with lookahead (TextStream).
package source

import "fmt"

// Location identifies a single point in source text. Both fields are
// 1-based; the zero value means "unknown" per spec.md 3.1.
type Location struct {
	Line   uint32
	Column uint32
}

// IsKnown reports whether the location carries real line/column info.
func (l Location) IsKnown() bool {
	return l.Line != 0
}

func (l Location) String() string {
	if !l.IsKnown() {
		return "(unknown)"
	}
	return fmt.Sprintf("(%d,%d)", l.Line, l.Column)
}

// Span covers a half-open range of source text, begin inclusive, end
// exclusive. Every AST node and diagnostic carries one.
type Span struct {
	Begin Location
	End   Location
}

// String renders the MSBuild-style location fragment used by diag
// formatting: "(line,col)" when begin and end coincide, else
// "(line,col,endline,endcol)".
func (s Span) String() string {
	if !s.Begin.IsKnown() {
		return ""
	}
	if s.End.IsKnown() && s.End != s.Begin {
		return fmt.Sprintf("(%d,%d,%d,%d)", s.Begin.Line, s.Begin.Column, s.End.Line, s.End.Column)
	}
	return fmt.Sprintf("(%d,%d)", s.Begin.Line, s.Begin.Column)
}

// Join returns the smallest span covering both a and b. A zero span on
// either side is ignored.
func Join(a, b Span) Span {
	if !a.Begin.IsKnown() {
		return b
	}
	if !b.Begin.IsKnown() {
		return a
	}
	return Span{Begin: a.Begin, End: b.End}
}
