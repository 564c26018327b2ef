// File: visitor.go
// Title: vmel AST Visitor
// Description: Visitor interface and the Accept implementations of every
//              node variant.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

// Visitor has one method per node variant
type Visitor interface {
	VisitLiteral(n *Literal) interface{}
	VisitBinaryOp(n *BinaryOp) interface{}
	VisitCompareOp(n *CompareOp) interface{}
	VisitAssignment(n *Assignment) interface{}
	VisitGroup(n *Group) interface{}
	VisitArray(n *Array) interface{}
	VisitKeywordCall(n *KeywordCall) interface{}
}

func (n *Literal) Accept(v Visitor) interface{}     { return v.VisitLiteral(n) }
func (n *BinaryOp) Accept(v Visitor) interface{}    { return v.VisitBinaryOp(n) }
func (n *CompareOp) Accept(v Visitor) interface{}   { return v.VisitCompareOp(n) }
func (n *Assignment) Accept(v Visitor) interface{}  { return v.VisitAssignment(n) }
func (n *Group) Accept(v Visitor) interface{}       { return v.VisitGroup(n) }
func (n *Array) Accept(v Visitor) interface{}       { return v.VisitArray(n) }
func (n *KeywordCall) Accept(v Visitor) interface{} { return v.VisitKeywordCall(n) }
