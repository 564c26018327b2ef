// File: list.go
// Title: Bounded Diagnostic List
// Description: Fixed capacity collection of diagnostics with a counter for
//              entries dropped after the list filled up.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package diag

import (
	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

// DefaultCapacity is the list capacity used when none is configured
const DefaultCapacity = 20

// ErrListFull is returned by Add when the diagnostic was dropped
var ErrListFull = mdwerror.New("diagnostic list full").
	WithCode(mdwerror.CodeQuotaExceeded).
	WithOperation("diag.List.Add")

// List is a bounded, ordered collection of diagnostics. It is not safe for
// concurrent use; one list belongs to one run or session.
type List struct {
	items    []Diagnostic
	capacity int
	dropped  int
}

// NewList creates a list holding at most capacity entries. A capacity of
// zero or less selects DefaultCapacity.
func NewList(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{
		items:    make([]Diagnostic, 0, min(capacity, DefaultCapacity)),
		capacity: capacity,
	}
}

// Add appends d, or drops it and returns ErrListFull when the list is full
func (l *List) Add(d Diagnostic) error {
	if len(l.items) >= l.capacity {
		l.dropped++
		return ErrListFull
	}
	l.items = append(l.items, d)
	return nil
}

// Report is shorthand for Add(New(id, text, line))
func (l *List) Report(id ID, text string, line int) error {
	return l.Add(New(id, text, line))
}

// Items returns a copy of the stored diagnostics in report order
func (l *List) Items() []Diagnostic {
	result := make([]Diagnostic, len(l.items))
	copy(result, l.items)
	return result
}

// Since returns the diagnostics stored at or after index start
func (l *List) Since(start int) []Diagnostic {
	if start >= len(l.items) {
		return nil
	}
	if start < 0 {
		start = 0
	}
	result := make([]Diagnostic, len(l.items)-start)
	copy(result, l.items[start:])
	return result
}

// Len returns the number of stored diagnostics
func (l *List) Len() int { return len(l.items) }

// Cap returns the configured capacity
func (l *List) Cap() int { return l.capacity }

// Dropped returns how many diagnostics were discarded after the list filled
func (l *List) Dropped() int { return l.dropped }

// Full reports whether the next Add will drop
func (l *List) Full() bool { return len(l.items) >= l.capacity }

// Count returns the number of stored diagnostics in category c
func (l *List) Count(c Category) int {
	n := 0
	for _, d := range l.items {
		if d.Category == c {
			n++
		}
	}
	return n
}

// HasCategory reports whether any stored diagnostic is in category c
func (l *List) HasCategory(c Category) bool {
	return l.Count(c) > 0
}

// Reset empties the list and clears the dropped counter
func (l *List) Reset() {
	l.items = l.items[:0]
	l.dropped = 0
}
