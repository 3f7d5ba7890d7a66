package interp

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// rootCollator backs the ordering half of String.compare (spec.md
// 4.5.6): a root-locale collator gives a culturally sane <0/0/>0 result
// instead of raw byte comparison.
var rootCollator = collate.New(language.Und)

// compareStrings implements the `compare(s)` virtual method. Equal
// strings short-circuit to 0 without allocating a collation key. When
// the two differ only by Unicode normalization form (NFC vs NFD), they
// are still treated as equal: E considers grapheme identity, not byte
// identity, the basis of string equality for ordering purposes.
func compareStrings(a, b string) int {
	if a == b {
		return 0
	}
	an, bn := norm.NFC.String(a), norm.NFC.String(b)
	if an == bn {
		return 0
	}
	return rootCollator.CompareString(an, bn)
}

// stringMethod dispatches one of spec.md 4.5.6's String virtual
// methods. args are already evaluated.
func (ev *Evaluator) stringMethod(recv String, name string, args []Value) (Value, error) {
	s := string(recv)
	switch name {
	case "hashCode":
		var h uint32 = 2166136261
		for i := 0; i < len(s); i++ {
			h ^= uint32(s[i])
			h *= 16777619
		}
		return Int(int32(h)), nil
	case "toString":
		return recv, nil
	case "contains":
		return Bool(strings.Contains(s, string(args[0].(String)))), nil
	case "compare":
		return Int(compareStrings(s, string(args[0].(String)))), nil
	case "startsWith":
		return Bool(strings.HasPrefix(s, string(args[0].(String)))), nil
	case "endsWith":
		return Bool(strings.HasSuffix(s, string(args[0].(String)))), nil
	case "indexOf":
		return Int(utf8RuneIndex(s, strings.Index(s, string(args[0].(String))))), nil
	case "lastIndexOf":
		return Int(utf8RuneIndex(s, strings.LastIndex(s, string(args[0].(String))))), nil
	case "join":
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = ev.stringify(a)
		}
		return String(strings.Join(parts, s)), nil
	case "split":
		sep := string(args[0].(String))
		parts := strings.Split(s, sep)
		arr := make([]Value, len(parts))
		for i, p := range parts {
			arr[i] = String(p)
		}
		return NewArray(ev.basket, arr), nil
	case "slice":
		return sliceString(s, args), nil
	case "repeat":
		n := int64(args[0].(Int))
		if n < 0 {
			return nil, ev.runtimeError("repeat count must be non-negative, got %d", n)
		}
		return String(strings.Repeat(s, int(n))), nil
	case "replace":
		needle := string(args[0].(String))
		repl := string(args[1].(String))
		count := -1
		if len(args) > 2 {
			if _, isNull := args[2].(Null); !isNull {
				count = int(int64(args[2].(Int)))
			}
		}
		return String(strings.Replace(s, needle, repl, count)), nil
	case "padLeft":
		return String(pad(s, args, true)), nil
	case "padRight":
		return String(pad(s, args, false)), nil
	default:
		return nil, ev.runtimeError("'string' has no method %q", name)
	}
}

// utf8RuneIndex converts a byte offset returned by strings.Index into
// a codepoint offset, since E's string indices are codepoint-based
// (spec.md 4.5.4: "iterates Unicode codepoints").
func utf8RuneIndex(s string, byteIdx int) int {
	if byteIdx < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:byteIdx])
}

func sliceString(s string, args []Value) Value {
	runes := []rune(s)
	begin := int(int64(args[0].(Int)))
	end := len(runes)
	if len(args) > 1 {
		if _, isNull := args[1].(Null); !isNull {
			end = int(int64(args[1].(Int)))
		}
	}
	if begin < 0 {
		begin = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if begin >= end {
		return String("")
	}
	return String(string(runes[begin:end]))
}

func pad(s string, args []Value, left bool) string {
	length := int(int64(args[0].(Int)))
	padStr := " "
	if len(args) > 1 {
		if _, isNull := args[1].(Null); !isNull {
			padStr = string(args[1].(String))
		}
	}
	runes := utf8.RuneCountInString(s)
	if runes >= length || padStr == "" {
		return s
	}
	var b strings.Builder
	padRunes := []rune(padStr)
	need := length - runes
	padding := buildPadding(padRunes, need)
	if left {
		b.WriteString(padding)
		b.WriteString(s)
	} else {
		b.WriteString(s)
		b.WriteString(padding)
	}
	return b.String()
}

func buildPadding(padRunes []rune, need int) string {
	var b strings.Builder
	for i := 0; i < need; i++ {
		b.WriteRune(padRunes[i%len(padRunes)])
	}
	return b.String()
}
