// Package semantic implements the preparer of spec.md 4.4: a single
// tree walk that resolves identifiers, infers and checks types, and
// validates control-flow context, annotating the AST's expression nodes
// with their result types without ever changing its structural children
// (spec.md 8).
package semantic

import (
	"github.com/eggscript/egg/internal/source"
	"github.com/eggscript/egg/internal/types"
)

// SymbolKind classifies how a binding may be used (spec.md 3.4).
type SymbolKind int

const (
	Builtin SymbolKind = iota
	Readonly
	ReadWrite
)

// Symbol is one lexical scope entry.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	Type     *types.Type
	DeclSpan source.Span
}

// SymbolTable is one lexical scope: a map of names owned at this level
// plus a link to the enclosing scope (spec.md 3.4). The chain is walked
// outward on lookup; shadowing an outer binding is legal but warned on.
type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

// NewSymbolTable creates the root scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Nested creates a scope whose parent is st.
func (st *SymbolTable) Nested() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol), parent: st}
}

// DeclaredHere reports whether name is already bound in this exact
// scope (not an ancestor) — the duplicate-declaration check of spec.md
// 4.4's "pre-scanned for duplicates".
func (st *SymbolTable) DeclaredHere(name string) (*Symbol, bool) {
	s, ok := st.symbols[name]
	return s, ok
}

// Declare binds name at this scope. Callers must check DeclaredHere
// first to report duplicates; Declare itself always overwrites.
func (st *SymbolTable) Declare(sym *Symbol) {
	st.symbols[sym.Name] = sym
}

// Lookup searches this scope and its ancestors outward.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	if s, ok := st.symbols[name]; ok {
		return s, true
	}
	if st.parent == nil {
		return nil, false
	}
	return st.parent.Lookup(name)
}

// ShadowsOuter reports whether name is already bound in an ancestor
// scope, used right before Declare to decide whether to warn (spec.md
// 3.4: "Shadowing an outer binding produces a warning but is legal").
func (st *SymbolTable) ShadowsOuter(name string) bool {
	if st.parent == nil {
		return false
	}
	_, ok := st.parent.Lookup(name)
	return ok
}
