package interp

import "testing"

func TestPrimitiveTypeNames(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{VoidValue, "void"},
		{NullValue, "null"},
		{Bool(true), "bool"},
		{Int(1), "int"},
		{Float(1.5), "float"},
		{String("s"), "string"},
	}
	for _, tt := range tests {
		if got := tt.v.Type(); got != tt.want {
			t.Errorf("%#v.Type() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPointerStringRendersDereferencedValue(t *testing.T) {
	cell := Int(5)
	p := Pointer{
		Get: func() Value { return cell },
		Set: func(v Value) { cell = v.(Int) },
	}
	if got := p.String(); got != "&5" {
		t.Errorf("Pointer.String() = %q, want &5", got)
	}
	p.Set(Int(9))
	if got := p.Get(); got != Int(9) {
		t.Errorf("after Set, Get() = %v, want 9", got)
	}
}

func TestFloatStringTrimsTrailingZeros(t *testing.T) {
	if got := Float(2.5).String(); got != "2.5" {
		t.Errorf("Float(2.5).String() = %q, want 2.5", got)
	}
	if got := Float(2).String(); got != "2" {
		t.Errorf("Float(2).String() = %q, want 2", got)
	}
}
