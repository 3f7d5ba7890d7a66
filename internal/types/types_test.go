package types

import "testing"

func TestAssignability(t *testing.T) {
	cases := []struct {
		name string
		to   *Type
		from *Type
		want Assignability
	}{
		{"same", New(Int), New(Int), Always},
		{"subset", New(Int | Float), New(Int), Always},
		{"widen-int-to-float", New(Float), New(Int), Always},
		{"overlap-unions", New(Int | Null), New(Int | Float), Sometimes},
		{"disjoint", New(String), New(Int), Never},
		{"any-accepts-everything", New(Any), New(Int | Null), Always},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.to.AssignableFrom(tc.from); got != tc.want {
				t.Errorf("%s.AssignableFrom(%s) = %v, want %v", tc.to, tc.from, got, tc.want)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	obj := New(Object)
	if !obj.Indexable() || !obj.Dotable() {
		t.Fatal("object should be indexable and dotable")
	}
	str := New(String)
	if !str.Dotable() {
		t.Fatal("string should be dotable for virtual methods")
	}
	if str.Indexable() {
		t.Fatal("string should not be statically indexable")
	}

	fn := NewFunction(New(Int), []Param{{Name: "x", Type: New(Int), Flags: Required}})
	if _, ok := fn.Callable(); !ok {
		t.Fatal("function type should be callable")
	}

	gen := NewGenerator(New(Int))
	if elem, ok := gen.Iterable(); !ok || elem.Flags != Int {
		t.Fatalf("generator should be iterable over int, got %v %v", elem, ok)
	}

	ptr := NewPointer(New(Int), Read|Write)
	if pointee, mod, ok := ptr.Pointable(); !ok || pointee.Flags != Int || mod != Read|Write {
		t.Fatalf("pointer capability mismatch: %v %v %v", pointee, mod, ok)
	}
}

func TestEqualAndStripping(t *testing.T) {
	nullable := New(Int | Null)
	if nullable.StripNull().Flags != Int {
		t.Fatal("StripNull should remove the Null bit")
	}
	voidish := New(Void | String)
	if voidish.StripVoid().Flags != String {
		t.Fatal("StripVoid should remove the Void bit")
	}
	if !New(Int | Float).Equal(New(Float | Int)) {
		t.Fatal("flag order should not affect equality")
	}
}
