// Package interp implements the tree-walking evaluator of spec.md 4.5:
// a single-threaded, synchronous execution of a prepared AST against a
// Context carrying the current scope, runtime location, and logger.
package interp

import (
	"fmt"
	"strconv"
)

// Value is any runtime value the evaluator can produce (spec.md 3.2).
// Primitive values are small immutable wrappers; Object and Pointer
// carry a reference into the basket or to a storage slot.
type Value interface {
	Type() string
	String() string
}

// Void is the single-valued "no result" type, produced by statements
// and by a function that falls off its body.
type Void struct{}

func (Void) Type() string   { return "void" }
func (Void) String() string { return "" }

// VoidValue is the shared Void instance.
var VoidValue = Void{}

// Null is the single-valued null reference.
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }

// NullValue is the shared Null instance.
var NullValue = Null{}

// Bool wraps a boolean runtime value.
type Bool bool

func (Bool) Type() string     { return "bool" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int wraps a 64-bit two's-complement integer (spec.md 4.5.3).
type Int int64

func (Int) Type() string     { return "int" }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float wraps an IEEE-754 double.
type Float float64

func (Float) Type() string     { return "float" }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// String wraps a UTF-8 string runtime value.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }

// Pointer is `&x`: a mutable reference to a storage slot (spec.md 3.2,
// 4.5.2's lvalue/assignee pair).
type Pointer struct {
	Get func() Value
	Set func(Value)
}

func (Pointer) Type() string     { return "pointer" }
func (p Pointer) String() string { return fmt.Sprintf("&%s", p.Get()) }

// Object is any vanilla heap-allocated value tracked by the basket
// (spec.md 4.5.7): Array, Object/Dictionary, KeyValue, Exception,
// UserFunction, Generator.
type Object interface {
	Value
	basketEntry() *entry
}
