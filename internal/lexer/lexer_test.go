package lexer

import (
	"io"
	"strings"
	"testing"

	"github.com/eggscript/egg/internal/source"
)

func scanAll(t *testing.T, input string) []Item {
	t.Helper()
	l := New(source.NewTextStream(source.NewCharStream("t", strings.NewReader(input))))
	var items []Item
	for {
		it, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		items = append(items, it)
	}
	return items
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`var s = 0; for (var i = 1; i <= 10; ++i) { s += i; } print(s);`,
		"// comment\nint x = 1; /* block */ var y = -1;",
		"a?.b ?? c; a--b; -9223372036854775808;",
	}
	for _, in := range inputs {
		items := scanAll(t, in)
		var sb strings.Builder
		for _, it := range items {
			sb.WriteString(it.Verbatim)
		}
		if sb.String() != in {
			t.Errorf("round trip mismatch:\n got: %q\nwant: %q", sb.String(), in)
		}
	}
}

func TestIntegerLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"123", 123},
		{"0xFF", 255},
		{"0x0", 0},
	}
	for _, tc := range cases {
		items := scanAll(t, tc.in)
		if len(items) != 1 || items[0].Kind != ItemInteger {
			t.Fatalf("%q: got %v", tc.in, items)
		}
		if items[0].Value.(int64) != tc.want {
			t.Errorf("%q: got %v want %v", tc.in, items[0].Value, tc.want)
		}
	}
}

func TestLeadingZeroIsError(t *testing.T) {
	l := New(source.NewTextStream(source.NewCharStream("t", strings.NewReader("07"))))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for leading zero")
	}
}

func TestFloatLiterals(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"1.5e10", 1.5e10},
		{"1.0e-3", 1.0e-3},
	}
	for _, tc := range cases {
		items := scanAll(t, tc.in)
		if len(items) != 1 || items[0].Kind != ItemFloat {
			t.Fatalf("%q: got %v", tc.in, items)
		}
		if items[0].Value.(float64) != tc.want {
			t.Errorf("%q: got %v want %v", tc.in, items[0].Value, tc.want)
		}
	}
}

func TestUnterminatedBlockCommentIsError(t *testing.T) {
	l := New(source.NewTextStream(source.NewCharStream("t", strings.NewReader("/* never closes"))))
	_, err := l.Next()
	if err == nil {
		t.Fatal("expected error for unterminated block comment")
	}
}

func TestStringEscapes(t *testing.T) {
	items := scanAll(t, `"a\nbA\U41;"`)
	if len(items) != 1 {
		t.Fatalf("got %d items", len(items))
	}
	want := "a\nbA" + string(rune(0x41))
	if items[0].Value.(string) != want {
		t.Errorf("got %q want %q", items[0].Value, want)
	}
}

func TestBackquotedStringMultiline(t *testing.T) {
	items := scanAll(t, "`line1\nline2 `` tick`")
	if len(items) != 1 {
		t.Fatalf("got %d items: %v", len(items), items)
	}
	want := "line1\nline2 ` tick"
	if items[0].Value.(string) != want {
		t.Errorf("got %q want %q", items[0].Value, want)
	}
}
