// Package types implements the type algebra of spec.md 3.3: immutable,
// structurally compared primitive flags, unions of them, and the
// composite pointer/function/generator forms, together with the
// Never/Sometimes/Always assignability lattice.
package types

import (
	"fmt"
	"strings"
)

// Flags is a bitset of primitive type tags. A Type built purely from
// Flags (Kind == Primitive) represents either a single primitive or a
// union of several, exactly as spec.md 3.3 describes.
type Flags uint16

const (
	Void Flags = 1 << iota
	Null
	Bool
	Int
	Float
	String
	Object
	Any
)

// Arithmetic and AnyQ are the two named unions spec.md 3.3 calls out.
const (
	Arithmetic = Int | Float
	AnyQ       = Any | Null
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Void, "void"}, {Null, "null"}, {Bool, "bool"}, {Int, "int"},
	{Float, "float"}, {String, "string"}, {Object, "object"}, {Any, "any"},
}

func (f Flags) String() string {
	if f == 0 {
		return "never"
	}
	if f == Any {
		return "any"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Has reports whether every bit of sub is set in f.
func (f Flags) Has(sub Flags) bool { return f&sub == sub }

// Kind discriminates the composite forms of Type beyond a flag union.
type Kind int

const (
	KindPrimitive Kind = iota
	KindPointer
	KindFunction
	KindGenerator
)

// Modifiability is the capability set of a pointer: which operations
// the pointed-to storage permits through that pointer (spec.md 3.3).
type Modifiability uint8

const (
	Read Modifiability = 1 << iota
	Write
	Mutate
)

// ParamFlags marks properties of a single function parameter.
type ParamFlags uint8

const (
	Required ParamFlags = 1 << iota
	Variadic
	Predicate
)

// Param is one entry of a Function type's parameter list.
type Param struct {
	Name  string
	Type  *Type
	Flags ParamFlags
}

// Type is an immutable, structurally-compared type value. The zero
// value is not meaningful; construct with the New* functions.
type Type struct {
	Kind  Kind
	Flags Flags // primitive flags, meaningful when Kind == KindPrimitive

	// KindPointer
	Pointee *Type
	Mod     Modifiability

	// KindFunction and KindGenerator
	Return *Type
	Params []Param

	// KindGenerator only: the element type yielded.
	Yield *Type
}

// New builds a primitive/union type from a flag set.
func New(flags Flags) *Type { return &Type{Kind: KindPrimitive, Flags: flags} }

// NewPointer builds a pointer-to-pointee type with the given
// modifiability.
func NewPointer(pointee *Type, mod Modifiability) *Type {
	return &Type{Kind: KindPointer, Pointee: pointee, Mod: mod}
}

// NewFunction builds a function type.
func NewFunction(ret *Type, params []Param) *Type {
	return &Type{Kind: KindFunction, Return: ret, Params: params}
}

// NewGenerator builds the function-shaped generator type
// `(Void|Y)()` marked iterable over Y (spec.md 3.3).
func NewGenerator(yield *Type) *Type {
	return &Type{
		Kind:   KindGenerator,
		Return: New(Void | yield.Flags),
		Yield:  yield,
	}
}

func (t *Type) String() string {
	switch t.Kind {
	case KindPrimitive:
		return t.Flags.String()
	case KindPointer:
		mods := ""
		if t.Mod&Write != 0 {
			mods += "!"
		}
		if t.Mod&Mutate != 0 {
			mods += "~"
		}
		return t.Pointee.String() + "*" + mods
	case KindFunction:
		return t.signature("")
	case KindGenerator:
		return t.signature("...")
	default:
		return "?"
	}
}

func (t *Type) signature(marker string) string {
	var parts []string
	for _, p := range t.Params {
		s := p.Type.String()
		if p.Flags&Variadic != 0 {
			s += "..."
		}
		parts = append(parts, s)
	}
	ret := "void"
	if t.Kind == KindGenerator {
		ret = t.Yield.String()
	} else if t.Return != nil {
		ret = t.Return.String()
	}
	return fmt.Sprintf("%s%s(%s)", ret, marker, strings.Join(parts, ", "))
}

// Equal reports structural equality, the "same type" leg of
// assignability.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Flags == other.Flags
	case KindPointer:
		return t.Mod == other.Mod && t.Pointee.Equal(other.Pointee)
	case KindFunction:
		return t.equalSignature(other)
	case KindGenerator:
		return t.Yield.Equal(other.Yield)
	}
	return false
}

// Assignable reports whether a value of type from may be stored into a
// variable of type t (spec.md 4.4: "typeof(a).assignable(typeof(b)) !=
// Never"). Any accepts everything; a primitive destination accepts any
// source whose flags it is a superset of; composite kinds require
// structural equality.
func (t *Type) Assignable(from *Type) bool {
	if t == nil || from == nil {
		return false
	}
	if t.Kind == KindPrimitive && t.Flags == Any {
		return true
	}
	if t.Kind == KindPrimitive && from.Kind == KindPrimitive {
		return t.Flags.Has(from.Flags)
	}
	return t.Equal(from)
}

// CanBeNull reports whether t's value set includes Null.
func (t *Type) CanBeNull() bool {
	return t.Kind == KindPrimitive && t.Flags&Null != 0
}

// WithoutNull returns t with the Null flag cleared, used for guard
// narrowing (spec.md glossary: Guard).
func (t *Type) WithoutNull() *Type {
	if t.Kind != KindPrimitive {
		return t
	}
	return New(t.Flags &^ Null)
}

// WithoutVoid returns t with the Void flag cleared, used when inferring
// a declaration's type from its initializer (spec.md 4.4).
func (t *Type) WithoutVoid() *Type {
	if t.Kind != KindPrimitive {
		return t
	}
	return New(t.Flags &^ Void)
}

func (t *Type) equalSignature(other *Type) bool {
	if !t.Return.Equal(other.Return) || len(t.Params) != len(other.Params) {
		return false
	}
	for i := range t.Params {
		if t.Params[i].Flags != other.Params[i].Flags || !t.Params[i].Type.Equal(other.Params[i].Type) {
			return false
		}
	}
	return true
}
