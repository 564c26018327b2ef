// File: symtab_test.go
// Title: vmel Symbol Table Tests
// Description: Tests for declaration rules, assignment and growth.
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
	"testing"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

func TestDeclare(t *testing.T) {
	tests := []struct {
		name     string
		existing Kind
		kind     Kind
		wantCode mdwerror.Code
	}{
		{"variable twice", KindVariable, KindVariable, ""},
		{"group twice", KindGroup, KindGroup, mdwerror.CodeDuplicateEntry},
		{"group over variable", KindVariable, KindGroup, mdwerror.CodeDuplicateEntry},
		{"variable over group", KindGroup, KindVariable, mdwerror.CodeInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := New()
			if err := table.Declare("x", tt.existing, 1); err != nil {
				t.Fatalf("first Declare() error = %v", err)
			}

			err := table.Declare("x", tt.kind, 2)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Declare() error = %v, want nil", err)
				}
			} else if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("Declare() error = %v, want %s", err, tt.wantCode)
			}

			if table.Len() != 1 {
				t.Errorf("Len() = %d, want 1", table.Len())
			}
			sym, _ := table.Lookup("x")
			if sym.Kind != tt.existing || sym.Line != 1 {
				t.Errorf("first declaration replaced: %+v", sym)
			}
		})
	}
}

func TestDeclare_EmptyName(t *testing.T) {
	if err := New().Declare("", KindVariable, 1); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Declare(\"\") error = %v", err)
	}
}

func TestAssign(t *testing.T) {
	table := New()
	_ = table.Declare("a", KindVariable, 1)
	_ = table.Declare("deploy", KindGroup, 2)

	if _, ok := table.Value("a"); ok {
		t.Error("unassigned variable should have no value")
	}

	if err := table.Assign("a", "1"); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if err := table.Assign("a", "latest"); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if v, ok := table.Value("a"); !ok || v != "latest" {
		t.Errorf("Value(a) = %q, %v, want latest", v, ok)
	}
	if table.Len() != 2 {
		t.Errorf("re-assignment created entries: Len() = %d", table.Len())
	}

	if err := table.Assign("nope", "x"); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Assign(undeclared) error = %v", err)
	}
	if err := table.Assign("deploy", "x"); !mdwerror.HasCode(err, mdwerror.CodeInvalidOperation) {
		t.Errorf("Assign(group) error = %v", err)
	}
	if _, ok := table.Value("deploy"); ok {
		t.Error("group should have no value")
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	table := New()
	_ = table.Declare("a", KindVariable, 1)
	_ = table.Assign("a", "1")

	sym, _ := table.Lookup("a")
	sym.Value = "changed"
	if v, _ := table.Value("a"); v != "1" {
		t.Errorf("Lookup() leaked internal state: %q", v)
	}
}

func TestGrowthAndOrder(t *testing.T) {
	table := New()
	for i := 0; i < 15; i++ {
		if err := table.Declare(fmt.Sprintf("v%d", i), KindVariable, i+1); err != nil {
			t.Fatalf("Declare() error = %v", err)
		}
	}

	if table.Cap() != 3*GrowthIncrement {
		t.Errorf("Cap() = %d, want %d", table.Cap(), 3*GrowthIncrement)
	}
	for i, sym := range table.Symbols() {
		if sym.Name != fmt.Sprintf("v%d", i) {
			t.Errorf("Symbols()[%d] = %s", i, sym.Name)
		}
	}

	table.Reset()
	if table.Len() != 0 {
		t.Errorf("after Reset() Len() = %d", table.Len())
	}
}
