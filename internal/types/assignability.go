package types

// Assignability is the three-valued lattice of spec.md 3.3: a value of
// the source type may Never, Sometimes, or Always be legally stored
// into a variable of the target type.
type Assignability int

const (
	Never Assignability = iota
	Sometimes
	Always
)

func (a Assignability) String() string {
	switch a {
	case Never:
		return "never"
	case Sometimes:
		return "sometimes"
	case Always:
		return "always"
	default:
		return "?"
	}
}

// AssignableFrom computes whether a value of type `from` may be
// assigned to a variable of type `to`, per the rules of spec.md 3.3:
// identical types, a subset of primitive flags, Int-widens-to-Float,
// and overlapping-but-not-identical unions being Sometimes assignable.
func (to *Type) AssignableFrom(from *Type) Assignability {
	if to.Equal(from) {
		return Always
	}
	if to.Kind == KindPrimitive && to.Flags.Has(Any) {
		return Always
	}
	if to.Kind != KindPrimitive || from.Kind != KindPrimitive {
		return Never
	}

	toFlags, fromFlags := to.Flags, from.Flags

	// Numeric widening: treat any Int bit in `from` as also satisfying
	// a Float bit in `to`.
	widened := fromFlags
	if fromFlags.Has(Int) && toFlags.Has(Float) {
		widened = (fromFlags &^ Int) | Float
	}
	if toFlags.Has(widened) {
		return Always
	}

	if fromFlags&toFlags != 0 {
		return Sometimes
	}
	return Never
}
