package source

import (
	"bufio"
	"fmt"
	"io"
)

const byteOrderMark = rune(0xFEFF)

// CharStream decodes a byte stream as UTF-8, silently consuming a leading
// byte-order mark, and hands codepoints one at a time while tracking the
// raw byte offset (spec.md 6.3, 6.4).
type CharStream struct {
	resource string
	reader   *bufio.Reader
	offset   int64
	peeked   rune
	peekSize int
	hasPeek  bool
	atEOF    bool
}

// NewCharStream wraps r, tagging diagnostics that mention this stream with
// resource (the logical file/name the bytes came from).
func NewCharStream(resource string, r io.Reader) *CharStream {
	cs := &CharStream{resource: resource, reader: bufio.NewReader(r)}
	cs.consumeBOM()
	return cs
}

// Resource returns the name this stream was created with.
func (cs *CharStream) Resource() string { return cs.resource }

// Offset returns the number of bytes consumed so far, not counting a
// skipped BOM.
func (cs *CharStream) Offset() int64 { return cs.offset }

func (cs *CharStream) consumeBOM() {
	r, size, err := cs.reader.ReadRune()
	if err != nil {
		cs.atEOF = true
		return
	}
	if r == byteOrderMark {
		return
	}
	cs.hasPeek = true
	cs.peeked = r
	cs.peekSize = size
}

// Peek returns the next codepoint without consuming it. ok is false at
// end of stream.
func (cs *CharStream) Peek() (r rune, ok bool) {
	if cs.hasPeek {
		return cs.peeked, true
	}
	if cs.atEOF {
		return 0, false
	}
	next, size, err := cs.reader.ReadRune()
	if err != nil {
		cs.atEOF = true
		return 0, false
	}
	if next == '�' && size == 1 {
		cs.atEOF = true
		return 0, false
	}
	cs.hasPeek = true
	cs.peeked = next
	cs.peekSize = size
	return next, true
}

// Next consumes and returns the next codepoint.
func (cs *CharStream) Next() (r rune, ok bool) {
	r, ok = cs.Peek()
	if !ok {
		return 0, false
	}
	cs.offset += int64(cs.peekSize)
	cs.hasPeek = false
	return r, true
}

// Error wraps a CharStream-level failure (malformed UTF-8) with the
// stream's resource name.
func (cs *CharStream) Error(msg string) error {
	return fmt.Errorf("%s: %s", cs.resource, msg)
}
