// File: printer.go
// Title: vmel AST Printer
// Description: Indented tree dump of AST nodes, used by the parse command
//              and the REPL.
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

// Printer renders nodes as an indented tree, one node per line
type Printer struct {
	Indent string
	b      strings.Builder
	depth  int
}

// NewPrinter creates a printer indenting by two spaces
func NewPrinter() *Printer {
	return &Printer{Indent: "  "}
}

// Print returns the tree dump of every root
func (p *Printer) Print(roots ...Node) string {
	p.b.Reset()
	p.depth = 0
	for _, n := range roots {
		n.Accept(p)
	}
	return p.b.String()
}

func (p *Printer) line(format string, args ...interface{}) {
	p.b.WriteString(strings.Repeat(p.Indent, p.depth))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *Printer) nested(children ...Node) {
	p.depth++
	for _, c := range children {
		c.Accept(p)
	}
	p.depth--
}

func (p *Printer) VisitLiteral(n *Literal) interface{} {
	p.line("%s %s (line %d)", n.Kind, n, n.Position.Line)
	return nil
}

func (p *Printer) VisitBinaryOp(n *BinaryOp) interface{} {
	p.line("BinaryOp %s (line %d)", n.Op, n.Position.Line)
	p.nested(n.Left, n.Right)
	return nil
}

func (p *Printer) VisitCompareOp(n *CompareOp) interface{} {
	p.line("CompareOp %s (line %d)", n.Op, n.Position.Line)
	p.nested(n.Left, n.Right)
	return nil
}

func (p *Printer) VisitAssignment(n *Assignment) interface{} {
	p.line("Assignment $%s (line %d)", n.Target, n.Position.Line)
	p.nested(n.Value)
	return nil
}

func (p *Printer) VisitGroup(n *Group) interface{} {
	p.line("Group {%s} (line %d)", n.Name, n.Position.Line)
	p.depth++
	for _, cmd := range n.Commands {
		p.line("Command %q", cmd)
	}
	p.depth--
	return nil
}

func (p *Printer) VisitArray(n *Array) interface{} {
	p.line("Array len=%d (line %d)", len(n.Elements), n.Position.Line)
	p.nested(n.Elements...)
	return nil
}

func (p *Printer) VisitKeywordCall(n *KeywordCall) interface{} {
	p.line("KeywordCall %s (line %d)", n.Keyword, n.Position.Line)
	p.nested(n.Arg)
	return nil
}
