// File: ast_test.go
// Title: vmel AST Tests
// Description: Tests for node notation, traversal, the printer and the
//              store.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package ast

import (
	"testing"
)

func lit(kind LiteralKind, value string) *Literal {
	return &Literal{Kind: kind, Value: value, Position: Position{Line: 1, Column: 1}}
}

func sampleAssignment() *Assignment {
	// $a = ($b + 2) * "x"
	return &Assignment{
		Target: "a",
		Value: &BinaryOp{
			Op: OpMul,
			Left: &BinaryOp{
				Op:    OpAdd,
				Left:  lit(LiteralIdentifier, "b"),
				Right: lit(LiteralInteger, "2"),
			},
			Right: lit(LiteralString, "x"),
		},
		Position: Position{Line: 1, Column: 1},
	}
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"assignment", sampleAssignment(), `$a = (($b + 2) * "x")`},
		{"mix string", lit(LiteralMixString, "Hi $n"), "`Hi $n`"},
		{"compare", &CompareOp{Op: OpBetween, Left: lit(LiteralInteger, "1"), Right: lit(LiteralInteger, "2")}, "(1 >< 2)"},
		{"group", &Group{Name: "deploy", Commands: []string{"build", "push"}}, `{deploy} "build" "push"`},
		{"nested array", &Array{Elements: []Node{lit(LiteralInteger, "1"), &Array{Elements: []Node{lit(LiteralString, "a")}}}}, `[1, ["a"]]`},
		{"empty array", &Array{}, "[]"},
		{"keyword", &KeywordCall{Keyword: "print", Arg: lit(LiteralIdentifier, "x")}, "print $x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	var kinds []string
	Inspect(sampleAssignment(), func(n Node) bool {
		switch v := n.(type) {
		case *Assignment:
			kinds = append(kinds, "assign")
		case *BinaryOp:
			kinds = append(kinds, v.Op.String())
		case *Literal:
			kinds = append(kinds, v.Kind.String())
		}
		return true
	})

	want := []string{"assign", "*", "+", "Identifier", "Integer", "String"}
	if len(kinds) != len(want) {
		t.Fatalf("Inspect() visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestInspect_Prune(t *testing.T) {
	visited := 0
	Inspect(sampleAssignment(), func(n Node) bool {
		visited++
		_, isBinary := n.(*BinaryOp)
		return !isBinary
	})
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestStore(t *testing.T) {
	s := NewStore()
	s.Add(sampleAssignment())
	s.Add(nil)
	s.Add(&Group{Name: "g", Commands: []string{"c"}})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.Count() != 7 {
		t.Errorf("Count() = %d, want 7", s.Count())
	}

	roots := s.Roots()
	roots[0] = nil
	if s.Roots()[0] == nil {
		t.Error("Roots() should return a copy")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("after Reset() Len() = %d", s.Len())
	}
}

func TestPrinter(t *testing.T) {
	call := &KeywordCall{
		Keyword:  "run",
		Arg:      &Group{Name: "deploy", Commands: []string{"build"}, Position: Position{Line: 2}},
		Position: Position{Line: 2},
	}

	got := NewPrinter().Print(call)
	want := "KeywordCall run (line 2)\n" +
		"  Group {deploy} (line 2)\n" +
		"    Command \"build\"\n"
	if got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}
