package interp

// Scope is a lexical runtime binding chain, the execution-time
// counterpart of the preparer's SymbolTable (spec.md 4.5.1): "entering
// a new block or a for loop creates a nested scope whose parent is the
// enclosing one; exit drops it."
type Scope struct {
	vars   map[string]*Value
	parent *Scope
	basket *Basket
}

// NewScope creates a root scope with no basket, for tests and other
// callers that only ever store non-Object values in it.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]*Value)}
}

// NewRootScope creates the root scope for a module run, rooting every
// Object a variable in it (or a scope nested under it) comes to hold
// against b so Collect does not sweep a live, still-referenced array
// or dictionary out from under the running program (spec.md 5.3).
func NewRootScope(b *Basket) *Scope {
	return &Scope{vars: make(map[string]*Value), basket: b}
}

// Nested creates a scope whose parent is s, inheriting s's basket.
func (s *Scope) Nested() *Scope {
	return &Scope{vars: make(map[string]*Value), parent: s, basket: s.basket}
}

// Declare binds name to an initial value in this exact scope, rooting
// it in the basket if it is a collectable Object.
func (s *Scope) Declare(name string, v Value) {
	cell := v
	s.vars[name] = &cell
	s.retain(v)
}

// retain roots v in s's basket, if any, for as long as a scope cell
// holds it as its own value.
func (s *Scope) retain(v Value) {
	if s.basket == nil {
		return
	}
	if obj, ok := v.(Object); ok {
		s.basket.Retain(obj)
	}
}

// release undoes a prior retain, called when a cell stops holding v.
func (s *Scope) release(v Value) {
	if s.basket == nil {
		return
	}
	if obj, ok := v.(Object); ok {
		s.basket.Release(obj)
	}
}

// cell returns the storage slot backing name, searching outward.
func (s *Scope) cell(name string) (*Value, bool) {
	if c, ok := s.vars[name]; ok {
		return c, true
	}
	if s.parent == nil {
		return nil, false
	}
	return s.parent.cell(name)
}

// Get reads name's current value.
func (s *Scope) Get(name string) (Value, bool) {
	c, ok := s.cell(name)
	if !ok {
		return nil, false
	}
	return *c, true
}

// Set writes name's value in whichever scope it was declared, rooting
// the new value and releasing the old one.
func (s *Scope) Set(name string, v Value) bool {
	c, ok := s.cell(name)
	if !ok {
		return false
	}
	old := *c
	*c = v
	s.retain(v)
	s.release(old)
	return true
}
