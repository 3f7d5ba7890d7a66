package semantic

// Flags is the result of preparing one statement or expression subtree
// (spec.md 4.4): whether control can fall through it, whether its
// condition folds to a compile-time constant, whether it is a predicate
// promoted for assert(), whether it is a variadic spread, and whether
// inference gave up on it after an earlier error (Abandon), which stops
// that subtree from cascading further diagnostics.
type Flags uint8

const (
	Fallthrough Flags = 1 << iota
	Constant
	Predicate
	Variadic
	Abandon
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }
