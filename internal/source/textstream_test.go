package source

import (
	"strings"
	"testing"
)

func collect(ts *TextStream) string {
	var sb strings.Builder
	for {
		r, _, ok := ts.Next()
		if !ok {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTextStreamLineEndings(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Location
	}{
		{"lf", "a\nb", []Location{{1, 1}, {1, 2}, {2, 1}}},
		{"crlf", "a\r\nb", []Location{{1, 1}, {1, 2}, {2, 1}, {2, 1}}},
		{"cr", "a\rb", []Location{{1, 1}, {1, 2}, {2, 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := NewTextStream(NewCharStream("t", strings.NewReader(tc.input)))
			var got []Location
			for {
				_, loc, ok := ts.Next()
				if !ok {
					break
				}
				got = append(got, loc)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d locations, want %d: %v", len(got), len(tc.want), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("rune %d: got %v want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCharStreamSkipsBOM(t *testing.T) {
	cs := NewCharStream("t", strings.NewReader(string(rune(0xFEFF)) + "hello"))
	ts := NewTextStream(cs)
	if got := collect(ts); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestTextStreamLookahead(t *testing.T) {
	ts := NewTextStream(NewCharStream("t", strings.NewReader("abc")))
	r, _, ok := ts.Peek(2)
	if !ok || r != 'c' {
		t.Fatalf("Peek(2) = %q, %v", r, ok)
	}
	r, _, ok = ts.Peek(0)
	if !ok || r != 'a' {
		t.Fatalf("Peek(0) after Peek(2) = %q, %v; lookahead must not consume", r, ok)
	}
	if got := collect(ts); got != "abc" {
		t.Fatalf("got %q, want abc", got)
	}
}
