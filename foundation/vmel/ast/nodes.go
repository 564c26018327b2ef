// File: nodes.go
// Title: vmel AST Node Definitions
// Description: Node variants for literals, arithmetic and comparison
//              operations, assignments, groups, arrays and keyword calls.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"strings"
)

// Node is implemented by every AST variant. The unexported marker keeps the
// set of variants closed to this package.
type Node interface {
	// Pos returns the source position of the node
	Pos() Position

	// String returns the node in source-like notation
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	node()
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// LiteralKind distinguishes the literal variants
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralInteger
	LiteralIdentifier
	LiteralMixString
)

// String returns the name of the literal kind
func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "String"
	case LiteralInteger:
		return "Integer"
	case LiteralIdentifier:
		return "Identifier"
	case LiteralMixString:
		return "MixString"
	default:
		return "Unknown"
	}
}

// BinaryKind is an arithmetic operator
type BinaryKind int

const (
	OpAdd BinaryKind = iota
	OpSub
	OpMul
	OpDiv
)

var binarySymbols = [...]string{OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/"}

// String returns the operator symbol
func (k BinaryKind) String() string {
	if k >= 0 && int(k) < len(binarySymbols) {
		return binarySymbols[k]
	}
	return "?"
}

// CompareKind is a comparison operator
type CompareKind int

const (
	OpEq CompareKind = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpBetween
)

var compareSymbols = [...]string{
	OpEq: "==", OpNeq: "!=", OpLt: "<", OpLte: "<=", OpGt: ">", OpGte: ">=", OpBetween: "><",
}

// String returns the operator symbol
func (k CompareKind) String() string {
	if k >= 0 && int(k) < len(compareSymbols) {
		return compareSymbols[k]
	}
	return "?"
}

// Literal is a leaf: a string, an integer, a variable reference or a mix
// string. Value holds the text without delimiters and without '$'.
type Literal struct {
	Kind     LiteralKind
	Value    string
	Position Position
}

// BinaryOp is an arithmetic operation on two operands
type BinaryOp struct {
	Op          BinaryKind
	Left, Right Node
	Position    Position
}

// CompareOp is a comparison of two operands
type CompareOp struct {
	Op          CompareKind
	Left, Right Node
	Position    Position
}

// Assignment stores the value of Value in the variable Target
type Assignment struct {
	Target   string
	Value    Node
	Position Position
}

// Group is a named, ordered list of command strings
type Group struct {
	Name     string
	Commands []string
	Position Position
}

// Array is an ordered list of literals, expressions and nested arrays
type Array struct {
	Elements []Node
	Position Position
}

// KeywordCall is a keyword statement with its single argument
type KeywordCall struct {
	Keyword  string
	Arg      Node
	Position Position
}

func (*Literal) node()     {}
func (*BinaryOp) node()    {}
func (*CompareOp) node()   {}
func (*Assignment) node()  {}
func (*Group) node()       {}
func (*Array) node()       {}
func (*KeywordCall) node() {}

// Pos implements Node
func (n *Literal) Pos() Position     { return n.Position }
func (n *BinaryOp) Pos() Position    { return n.Position }
func (n *CompareOp) Pos() Position   { return n.Position }
func (n *Assignment) Pos() Position  { return n.Position }
func (n *Group) Pos() Position       { return n.Position }
func (n *Array) Pos() Position       { return n.Position }
func (n *KeywordCall) Pos() Position { return n.Position }

// String implements Node
func (n *Literal) String() string {
	switch n.Kind {
	case LiteralString:
		return `"` + n.Value + `"`
	case LiteralIdentifier:
		return "$" + n.Value
	case LiteralMixString:
		return "`" + n.Value + "`"
	default:
		return n.Value
	}
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *CompareOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *Assignment) String() string {
	return fmt.Sprintf("$%s = %s", n.Target, n.Value)
}

func (n *Group) String() string {
	var b strings.Builder
	b.WriteString("{" + n.Name + "}")
	for _, cmd := range n.Commands {
		b.WriteString(` "` + cmd + `"`)
	}
	return b.String()
}

func (n *Array) String() string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (n *KeywordCall) String() string {
	return n.Keyword + " " + n.Arg.String()
}

// Children returns the direct child nodes of n in source order
func Children(n Node) []Node {
	switch v := n.(type) {
	case *BinaryOp:
		return []Node{v.Left, v.Right}
	case *CompareOp:
		return []Node{v.Left, v.Right}
	case *Assignment:
		return []Node{v.Value}
	case *Array:
		result := make([]Node, len(v.Elements))
		copy(result, v.Elements)
		return result
	case *KeywordCall:
		return []Node{v.Arg}
	default:
		return nil
	}
}

// Inspect walks the tree rooted at n depth first, parents before children.
// Children of a node are skipped when fn returns false for it.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, fn)
	}
}
