package types

// Callable reports whether a value of this type can be invoked, and if
// so returns the type to use for argument/return checking.
func (t *Type) Callable() (*Type, bool) {
	if t.Kind == KindFunction || t.Kind == KindGenerator {
		return t, true
	}
	return nil, false
}

// Indexable reports whether `a[i]` is meaningful for this type. E has no
// generic container types in its static type system: any value carrying
// the Object flag may turn out to be an array or dictionary at runtime,
// so indexing is accepted provisionally here and re-validated against
// the concrete vanilla object by the evaluator.
func (t *Type) Indexable() bool {
	return t.Kind == KindPrimitive && t.Flags.Has(Object)
}

// Dotable reports whether `a.b` is meaningful for this type. Object
// values resolve properties dynamically; String values additionally
// expose the fixed set of virtual methods from spec.md 4.5.6.
func (t *Type) Dotable() bool {
	return t.Kind == KindPrimitive && (t.Flags.Has(Object) || t.Flags.Has(String))
}

// Iterable reports whether `foreach` may walk this type and, if so,
// returns the element type. Primitive String/Object values are
// iterable per spec.md 4.5.4; Any is accepted optimistically since the
// runtime value decides at evaluation time.
func (t *Type) Iterable() (*Type, bool) {
	if t.Kind == KindGenerator {
		return t.Yield, true
	}
	if t.Kind == KindPrimitive && (t.Flags.Has(String) || t.Flags.Has(Object) || t.Flags.Has(Any)) {
		return New(Any), true
	}
	return nil, false
}

// Pointable reports whether this type is itself a pointer, returning
// the pointee type and modifiability.
func (t *Type) Pointable() (*Type, Modifiability, bool) {
	if t.Kind == KindPointer {
		return t.Pointee, t.Mod, true
	}
	return nil, 0, false
}

// IsVoid reports whether this is exactly the Void type, which cannot be
// assigned to a variable (spec.md 3.2).
func (t *Type) IsVoid() bool {
	return t.Kind == KindPrimitive && t.Flags == Void
}

// StripNull returns a copy of t with the Null flag cleared, used when
// narrowing a guard's declared type (spec.md glossary: Guard).
func (t *Type) StripNull() *Type {
	if t.Kind != KindPrimitive {
		return t
	}
	return New(t.Flags &^ Null)
}

// StripVoid returns a copy of t with the Void flag cleared, used when
// inferring a declaration's type from an initializer (spec.md 4.4).
func (t *Type) StripVoid() *Type {
	if t.Kind != KindPrimitive {
		return t
	}
	return New(t.Flags &^ Void)
}
