// File: store.go
// Title: vmel Node Store
// Description: Owns the root statements of one parse in program order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

// Store holds the root nodes of a program. Children are reachable only
// through their parent, so releasing the store releases the whole forest.
type Store struct {
	roots []Node
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Add appends a root node. Nil nodes are ignored.
func (s *Store) Add(n Node) {
	if n == nil {
		return
	}
	s.roots = append(s.roots, n)
}

// Roots returns the root nodes in program order
func (s *Store) Roots() []Node {
	result := make([]Node, len(s.roots))
	copy(result, s.roots)
	return result
}

// Len returns the number of root nodes
func (s *Store) Len() int {
	return len(s.roots)
}

// Count returns the number of nodes in the whole forest
func (s *Store) Count() int {
	n := 0
	for _, root := range s.roots {
		Inspect(root, func(Node) bool {
			n++
			return true
		})
	}
	return n
}

// Reset drops every node
func (s *Store) Reset() {
	s.roots = nil
}
