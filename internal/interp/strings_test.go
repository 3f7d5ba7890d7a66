package interp

import "testing"

func callStringMethod(t *testing.T, recv string, name string, args ...Value) Value {
	t.Helper()
	ev := NewEvaluator("x.egg", nil)
	v, err := ev.stringMethod(String(recv), name, args)
	if err != nil {
		t.Fatalf("stringMethod(%q, %q) error: %v", recv, name, err)
	}
	return v
}

func TestStringMethods(t *testing.T) {
	tests := []struct {
		name   string
		recv   string
		method string
		args   []Value
		want   Value
	}{
		{"contains true", "hello world", "contains", []Value{String("wor")}, Bool(true)},
		{"contains false", "hello world", "contains", []Value{String("xyz")}, Bool(false)},
		{"startsWith", "hello", "startsWith", []Value{String("he")}, Bool(true)},
		{"endsWith", "hello", "endsWith", []Value{String("lo")}, Bool(true)},
		{"indexOf found", "hello", "indexOf", []Value{String("l")}, Int(2)},
		{"indexOf missing", "hello", "indexOf", []Value{String("z")}, Int(-1)},
		{"toString", "hello", "toString", nil, String("hello")},
		{"repeat", "ab", "repeat", []Value{Int(3)}, String("ababab")},
		{"join", ",", "join", []Value{String("a"), String("b"), String("c")}, String("a,b,c")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := callStringMethod(t, tt.recv, tt.method, tt.args...)
			if got.String() != tt.want.String() {
				t.Errorf("%s.%s(...) = %v, want %v", tt.recv, tt.method, got, tt.want)
			}
		})
	}
}

func TestStringSlice(t *testing.T) {
	got := callStringMethod(t, "hello", "slice", Int(1), Int(3))
	if got.String() != "el" {
		t.Errorf("slice(1,3) = %v, want el", got)
	}
}

func TestStringSliceOpenEnd(t *testing.T) {
	got := callStringMethod(t, "hello", "slice", Int(2), NullValue)
	if got.String() != "llo" {
		t.Errorf("slice(2,null) = %v, want llo", got)
	}
}

func TestStringPadLeft(t *testing.T) {
	got := callStringMethod(t, "7", "padLeft", Int(3), String("0"))
	if got.String() != "007" {
		t.Errorf("padLeft(3,'0') = %v, want 007", got)
	}
}

func TestStringSplit(t *testing.T) {
	got := callStringMethod(t, "a,b,c", "split", String(","))
	arr, ok := got.(*Array)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("split(,) = %v, want 3-element array", got)
	}
	if arr.Elements[0].String() != "a" || arr.Elements[2].String() != "c" {
		t.Errorf("split(,) elements = %v", arr.Elements)
	}
}

func TestStringCompareNormalizesUnicodeForms(t *testing.T) {
	nfc := "\u00e9"         // e-acute, precomposed
	nfd := "e\u0301"        // e + combining acute accent
	if got := compareStrings(nfc, nfd); got != 0 {
		t.Errorf("compareStrings(NFC, NFD) = %d, want 0", got)
	}
}

func TestStringHashCodeIsDeterministic(t *testing.T) {
	a := callStringMethod(t, "hello", "hashCode")
	b := callStringMethod(t, "hello", "hashCode")
	if a.String() != b.String() {
		t.Errorf("hashCode not deterministic: %v vs %v", a, b)
	}
}

func TestStringUnknownMethodErrors(t *testing.T) {
	ev := NewEvaluator("x.egg", nil)
	_, err := ev.stringMethod(String("hi"), "frobnicate", nil)
	if err == nil {
		t.Fatalf("expected error for unknown string method")
	}
}
