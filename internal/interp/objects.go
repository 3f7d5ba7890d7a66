package interp

import (
	"fmt"
	"strings"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/source"
)

// Array is the zero-based, dense vanilla array of spec.md 4.5.7. Its
// `.length` property truncates or extends with Null.
type Array struct {
	entry
	Elements []Value
}

// NewArray allocates an Array and registers it in b, linking any
// already-collectable elements so the array keeps them reachable
// (spec.md 5.3's "Link set").
func NewArray(b *Basket, elems []Value) *Array {
	a := &Array{Elements: elems}
	b.Add(a)
	for _, v := range elems {
		if obj, ok := v.(Object); ok {
			b.Link(a, obj)
		}
	}
	return a
}

func (*Array) Type() string { return "array" }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, v := range a.Elements {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Get returns the element at i, or Null if i is out of range.
func (a *Array) Get(i int64) Value {
	if i < 0 || i >= int64(len(a.Elements)) {
		return NullValue
	}
	return a.Elements[i]
}

// Set writes v at index i, extending the array with Null as needed
// (spec.md 4.5.7: "extends on out-of-range set").
func (a *Array) Set(i int64, v Value) {
	if i < 0 {
		return
	}
	for int64(len(a.Elements)) <= i {
		a.Elements = append(a.Elements, NullValue)
	}
	a.Elements[i] = v
	if obj, ok := v.(Object); ok && a.basket != nil {
		a.basket.Link(a, obj)
	}
}

// SetLength truncates or extends the array to n elements.
func (a *Array) SetLength(n int64) {
	switch {
	case n < 0:
		return
	case n <= int64(len(a.Elements)):
		a.Elements = a.Elements[:n]
	default:
		for int64(len(a.Elements)) < n {
			a.Elements = append(a.Elements, NullValue)
		}
	}
}

// KeyValue is a two-field dictionary of exactly `key` and `value`,
// itself iterable (spec.md 4.5.7).
type KeyValue struct {
	entry
	Key   string
	Value Value
}

func NewKeyValue(b *Basket, key string, value Value) *KeyValue {
	kv := &KeyValue{Key: key, Value: value}
	b.Add(kv)
	if obj, ok := value.(Object); ok {
		b.Link(kv, obj)
	}
	return kv
}

func (*KeyValue) Type() string     { return "keyvalue" }
func (kv *KeyValue) String() string { return fmt.Sprintf("{key: %q, value: %s}", kv.Key, kv.Value) }

// Dict is the insertion-ordered string->Value dictionary spec.md 4.5.7
// calls "Object": `obj[key]` is sugar for `obj.key`, iterating yields
// KeyValue entries. Named Dict here since Object already names the
// basket-collectable interface every vanilla kind implements.
type Dict struct {
	entry
	order []string
	data  map[string]Value
}

func NewDict(b *Basket) *Dict {
	d := &Dict{data: make(map[string]Value)}
	b.Add(d)
	return d
}

func (*Dict) Type() string { return "object" }
func (d *Dict) String() string {
	parts := make([]string, len(d.order))
	for i, k := range d.order {
		parts[i] = fmt.Sprintf("%s: %s", k, d.data[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Get reads key, returning Null and false when absent.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.data[key]
	if !ok {
		return NullValue, false
	}
	return v, true
}

// Set inserts or updates key, preserving insertion order on first set.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.data[key]; !ok {
		d.order = append(d.order, key)
	}
	d.data[key] = v
	if obj, ok := v.(Object); ok && d.basket != nil {
		d.basket.Link(d, obj)
	}
}

// Keys returns the dictionary's keys in insertion order.
func (d *Dict) Keys() []string { return d.order }

// asDict unwraps a Dict or an Exception (which embeds one) so
// property-access code can treat both uniformly; other kinds return
// ok == false.
func asDict(v Value) (*Dict, bool) {
	switch t := v.(type) {
	case *Dict:
		return t, true
	case *Exception:
		return t.Dict, true
	default:
		return nil, false
	}
}

// Exception is a Dict carrying at least `message` and `location`
// (spec.md 4.5.7). The script-visible `location` field is the plain
// "(line,col)" rendering; Loc keeps the structured source.Location so
// an uncaught exception's engine-level diagnostic can be rendered with
// the resource name prefixed, matching spec.md §8 scenario 4.
type Exception struct {
	*Dict
	Loc source.Location
}

// NewException builds an Exception dictionary with its required
// fields and any extra ones (used for predicate enrichment: `left`,
// `operator`, `right`).
func NewException(b *Basket, message string, loc source.Location, extra map[string]Value) *Exception {
	d := NewDict(b)
	d.Set("message", String(message))
	d.Set("location", String(loc.String()))
	for k, v := range extra {
		d.Set(k, v)
	}
	return &Exception{Dict: d, Loc: loc}
}

// UserFunction is a callable value closing over the scope it was
// defined in (spec.md 4.5.7).
type UserFunction struct {
	entry
	Name    string
	Params  []ast.Param
	Body    *ast.Block
	Closure *Scope
}

func NewUserFunction(b *Basket, name string, params []ast.Param, body *ast.Block, closure *Scope) *UserFunction {
	f := &UserFunction{Name: name, Params: params, Body: body, Closure: closure}
	b.Add(f)
	return f
}

func (*UserFunction) Type() string     { return "function" }
func (f *UserFunction) String() string { return fmt.Sprintf("<function %s>", f.Name) }
