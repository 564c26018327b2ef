// File: parser_test.go
// Title: vmel Parser Unit Tests
// Description: Tests for precedence, statement forms, symbol declaration
//              and syntax error recovery.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test suite

package parser

import (
	"io"
	"testing"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

func quietLogger() *mdwlog.Logger {
	return mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard})
}

// parseSource lexes and parses input, failing the test on lexical errors
func parseSource(t *testing.T, input string, maxDepth int) ([]ast.Node, *symtab.Table, *diag.List) {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) error = %v", input, err)
	}
	symbols := symtab.New()
	errs := diag.NewList(0)
	roots := New(Options{Logger: quietLogger(), MaxDepth: maxDepth}).Parse(tokens, symbols, errs)
	return roots, symbols, errs
}

func rootStrings(roots []ast.Node) []string {
	result := make([]string, len(roots))
	for i, n := range roots {
		result[i] = n.String()
	}
	return result
}

func TestParser_Statements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"precedence", "$a = 2 + 3 * 4", []string{"$a = (2 + (3 * 4))"}},
		{"parentheses", "$a = (2 + 3) * 4", []string{"$a = ((2 + 3) * 4)"}},
		{"left associative", "$a = 10 - 4 - 3", []string{"$a = ((10 - 4) - 3)"}},
		{"division binds tighter", "$a = 8 / 2 - 1", []string{"$a = ((8 / 2) - 1)"}},
		{"comparison folds with additive", "$a = 1 < 2 + 3", []string{"$a = ((1 < 2) + 3)"}},
		{"between", "$a = $x >< 5", []string{"$a = ($x >< 5)"}},
		{"string", `$s = "x y"`, []string{`$s = "x y"`}},
		{"variable copy", "$b = $a", []string{"$b = $a"}},
		{"nested array", `$a = [1, "b", [2, $c], 1 + 1]`, []string{`$a = [1, "b", [2, $c], (1 + 1)]`}},
		{"empty array", "$a = []", []string{"$a = []"}},
		{"keyword with mix string", "print `hi $a`", []string{"print `hi $a`"}},
		{"keyword with expression", "println 1 + 2", []string{"println (1 + 2)"}},
		{"keyword with group", `run {deploy} "build" "push"`, []string{`run {deploy} "build" "push"`}},
		{"group block", `{g} "a" "b"`, []string{`{g} "a" "b"`}},
		{
			name:     "several statements",
			input:    "$a = 1\n$b = $a + 1\necho $b",
			expected: []string{"$a = 1", "$b = ($a + 1)", "echo $b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, _, errs := parseSource(t, tt.input, 0)
			if errs.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", errs.Items())
			}
			got := rootStrings(roots)
			if len(got) != len(tt.expected) {
				t.Fatalf("roots = %q, want %q", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("root %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxDepth  int
		wantRoots []string
		wantDiags []diag.Diagnostic
	}{
		{
			name:      "naked declaration",
			input:     "$a\nprint 1",
			wantRoots: []string{"print 1"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynNakedDeclaration, "$a", 1)},
		},
		{
			name:      "duplicate group keeps the first",
			input:     "{g} \"a\"\n{g} \"b\"",
			wantRoots: []string{`{g} "a"`},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynDuplicateGroup, "g", 2)},
		},
		{
			name:      "empty group",
			input:     "{g}\nprint 1",
			wantRoots: []string{"print 1"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynEmptyGroup, "g", 1)},
		},
		{
			name:      "missing paren",
			input:     "$a = (1 + 2\nprint 3",
			wantRoots: []string{"print 3"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynMissingParen, "print", 2)},
		},
		{
			name:      "missing bracket",
			input:     "$a = [1, 2\nprint 3",
			wantRoots: []string{"print 3"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynMissingBracket, "print", 2)},
		},
		{
			name:      "trailing operator",
			input:     "$a = 1 +\nprint 2",
			wantRoots: []string{"print 2"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynInvalidOperand, "+", 1)},
		},
		{
			name:      "missing argument at end",
			input:     "print",
			wantDiags: []diag.Diagnostic{diag.New(diag.SynMissingArgument, "print", 1)},
		},
		{
			name:      "missing argument before keyword",
			input:     "echo\nprint 1",
			wantRoots: []string{"print 1"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynMissingArgument, "echo", 1)},
		},
		{
			name:      "variable named like a group",
			input:     "{g} \"a\"\n$g = 1",
			wantRoots: []string{`{g} "a"`},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynNameConflict, "$g", 2)},
		},
		{
			name:      "unexpected statement start",
			input:     "= 1\nprint 2",
			wantRoots: []string{"print 2"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynUnexpectedToken, "=", 1)},
		},
		{
			name:      "operator without left operand",
			input:     "$a = * 2",
			wantDiags: []diag.Diagnostic{diag.New(diag.SynUnexpectedToken, "*", 1)},
		},
		{
			name:      "parentheses too deep",
			input:     "$a = (((1)))\nprint 2",
			maxDepth:  2,
			wantRoots: []string{"print 2"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynNestingTooDeep, "(", 1)},
		},
		{
			name:      "arrays too deep",
			input:     "$a = [[[1]]]\nprint 2",
			maxDepth:  2,
			wantRoots: []string{"print 2"},
			wantDiags: []diag.Diagnostic{diag.New(diag.SynNestingTooDeep, "[", 1)},
		},
		{
			name:      "recovery continues after each failure",
			input:     "$a\n$b = 1 +\nprint 3",
			wantRoots: []string{"print 3"},
			wantDiags: []diag.Diagnostic{
				diag.New(diag.SynNakedDeclaration, "$a", 1),
				diag.New(diag.SynInvalidOperand, "+", 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, _, errs := parseSource(t, tt.input, tt.maxDepth)

			got := rootStrings(roots)
			if len(got) != len(tt.wantRoots) {
				t.Fatalf("roots = %q, want %q", got, tt.wantRoots)
			}
			for i := range got {
				if got[i] != tt.wantRoots[i] {
					t.Errorf("root %d = %q, want %q", i, got[i], tt.wantRoots[i])
				}
			}

			items := errs.Items()
			if len(items) != len(tt.wantDiags) {
				t.Fatalf("diagnostics = %v, want %v", items, tt.wantDiags)
			}
			for i := range items {
				if items[i] != tt.wantDiags[i] {
					t.Errorf("diagnostic %d = %v, want %v", i, items[i], tt.wantDiags[i])
				}
			}
		})
	}
}

func TestParser_Symbols(t *testing.T) {
	_, symbols, errs := parseSource(t, "$a = 1\n$a = 2\n{deploy} \"x\"\n$b = [1]", 0)
	if errs.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs.Items())
	}
	if symbols.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", symbols.Len())
	}

	tests := []struct {
		name string
		kind symtab.Kind
		line int
	}{
		{"a", symtab.KindVariable, 1},
		{"deploy", symtab.KindGroup, 3},
		{"b", symtab.KindVariable, 4},
	}
	for _, tt := range tests {
		sym, ok := symbols.Lookup(tt.name)
		if !ok {
			t.Errorf("symbol %q not declared", tt.name)
			continue
		}
		if sym.Kind != tt.kind || sym.Line != tt.line {
			t.Errorf("symbol %q = %+v, want kind %v line %d", tt.name, sym, tt.kind, tt.line)
		}
		if sym.HasValue {
			t.Errorf("symbol %q has a value after parsing", tt.name)
		}
	}
}

func TestParser_FailedAssignmentDeclaresNothing(t *testing.T) {
	_, symbols, _ := parseSource(t, "$a = (1", 0)
	if _, ok := symbols.Lookup("a"); ok {
		t.Error("failed assignment declared its target")
	}
}

func TestParser_AssignToEarlierGroup(t *testing.T) {
	symbols := symtab.New()
	if err := symbols.Declare("g", symtab.KindGroup, 1); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	tokens, err := Tokenize("$g = 1\n$h = 2")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	errs := diag.NewList(0)
	roots := New(Options{Logger: quietLogger()}).Parse(tokens, symbols, errs)

	if got := rootStrings(roots); len(got) != 1 || got[0] != "$h = 2" {
		t.Errorf("roots = %v, want [$h = 2]", got)
	}
	want := diag.New(diag.SynNameConflict, "$g", 1)
	if items := errs.Items(); len(items) != 1 || items[0] != want {
		t.Errorf("diagnostics = %v, want [%v]", items, want)
	}
	if sym, _ := symbols.Lookup("g"); sym.Kind != symtab.KindGroup {
		t.Errorf("Kind(g) = %v, want group", sym.Kind)
	}
}

func TestParser_ErrorCapacity(t *testing.T) {
	tokens, err := Tokenize("$a\n$b\n$c")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	errs := diag.NewList(2)
	New(Options{Logger: quietLogger()}).Parse(tokens, symtab.New(), errs)

	if errs.Len() != 2 || errs.Dropped() != 1 {
		t.Errorf("Len() = %d, Dropped() = %d, want 2 and 1", errs.Len(), errs.Dropped())
	}
}

func TestParser_MissingEOF(t *testing.T) {
	p := New(Options{Logger: quietLogger()})
	errs := diag.NewList(0)

	if roots := p.Parse(nil, symtab.New(), errs); len(roots) != 0 {
		t.Errorf("Parse(nil) = %v, want no roots", roots)
	}

	tokens := []Token{
		{Type: TokenKeyword, Value: "print", Line: 1, Column: 1},
		{Type: TokenInteger, Value: "7", Line: 1, Column: 7},
	}
	roots := p.Parse(tokens, symtab.New(), errs)
	if len(roots) != 1 || roots[0].String() != "print 7" {
		t.Errorf("Parse() = %v, want [print 7]", rootStrings(roots))
	}
	if errs.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", errs.Items())
	}
}

func TestParser_Positions(t *testing.T) {
	roots, _, _ := parseSource(t, "\n  $a = 1 + 2", 0)
	if len(roots) != 1 {
		t.Fatalf("got %d roots", len(roots))
	}
	assign := roots[0].(*ast.Assignment)
	if assign.Pos() != (ast.Position{Line: 2, Column: 3}) {
		t.Errorf("assignment position = %+v", assign.Pos())
	}
	op := assign.Value.(*ast.BinaryOp)
	if op.Pos() != (ast.Position{Line: 2, Column: 10}) {
		t.Errorf("operator position = %+v", op.Pos())
	}
}
