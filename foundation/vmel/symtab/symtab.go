// File: symtab.go
// Title: vmel Symbol Table
// Description: Symbol records kept in declaration order with a name index.
//              Storage grows in fixed increments.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package symtab

import (
	"fmt"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
)

// GrowthIncrement is the number of entries added each time the table grows
const GrowthIncrement = 7

// Kind is the declaration kind of a symbol
type Kind int

const (
	KindVariable Kind = iota
	KindGroup
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "variable":
		*k = KindVariable
	case "group":
		*k = KindGroup
	default:
		return fmt.Errorf("unknown symbol kind %q", text)
	}
	return nil
}

// Symbol is a declared name. Value is meaningful only when HasValue is set;
// groups never get a value.
type Symbol struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Value    string `json:"value,omitempty"`
	HasValue bool   `json:"has_value"`
	Line     int    `json:"line"`
}

// Table maps names to symbols. It is not safe for concurrent use.
type Table struct {
	entries []Symbol
	index   map[string]int
}

// New creates an empty table
func New() *Table {
	return &Table{
		entries: make([]Symbol, 0, GrowthIncrement),
		index:   make(map[string]int),
	}
}

// Declare registers name. Declaring a variable that already exists is a
// no-op. A group name must be new; a clash returns DUPLICATE_ENTRY.
// Declaring a variable over a group returns INVALID_OPERATION.
func (t *Table) Declare(name string, kind Kind, line int) error {
	if mdwstringx.IsBlank(name) {
		return mdwerror.New("symbol name cannot be empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("symtab.Declare")
	}

	if i, ok := t.index[name]; ok {
		existing := t.entries[i]
		switch {
		case kind == KindGroup:
			return mdwerror.Newf("'%s' is already declared", name).
				WithCode(mdwerror.CodeDuplicateEntry).
				WithOperation("symtab.Declare").
				WithDetail("line", existing.Line)
		case existing.Kind == KindGroup:
			return mdwerror.Newf("'%s' is a group", name).
				WithCode(mdwerror.CodeInvalidOperation).
				WithOperation("symtab.Declare")
		default:
			return nil
		}
	}

	if len(t.entries) == cap(t.entries) {
		grown := make([]Symbol, len(t.entries), cap(t.entries)+GrowthIncrement)
		copy(grown, t.entries)
		t.entries = grown
	}
	t.entries = append(t.entries, Symbol{Name: name, Kind: kind, Line: line})
	t.index[name] = len(t.entries) - 1
	return nil
}

// Lookup returns a copy of the symbol named name
func (t *Table) Lookup(name string) (Symbol, bool) {
	i, ok := t.index[name]
	if !ok {
		return Symbol{}, false
	}
	return t.entries[i], true
}

// Value returns the current value of a variable. ok is false for unknown
// names, groups and variables that were never assigned.
func (t *Table) Value(name string) (value string, ok bool) {
	sym, found := t.Lookup(name)
	if !found || sym.Kind != KindVariable || !sym.HasValue {
		return "", false
	}
	return sym.Value, true
}

// Assign replaces the value of a declared variable
func (t *Table) Assign(name, value string) error {
	i, ok := t.index[name]
	if !ok {
		return mdwerror.Newf("'%s' is not declared", name).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("symtab.Assign")
	}
	if t.entries[i].Kind != KindVariable {
		return mdwerror.Newf("cannot assign to group '%s'", name).
			WithCode(mdwerror.CodeInvalidOperation).
			WithOperation("symtab.Assign")
	}
	t.entries[i].Value = value
	t.entries[i].HasValue = true
	return nil
}

// Symbols returns every symbol in declaration order
func (t *Table) Symbols() []Symbol {
	result := make([]Symbol, len(t.entries))
	copy(result, t.entries)
	return result
}

// Len returns the number of symbols
func (t *Table) Len() int { return len(t.entries) }

// Cap returns the allocated capacity, a multiple of GrowthIncrement
func (t *Table) Cap() int { return cap(t.entries) }

// Reset removes every symbol
func (t *Table) Reset() {
	t.entries = make([]Symbol, 0, GrowthIncrement)
	t.index = make(map[string]int)
}
