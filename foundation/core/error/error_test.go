// File: error_test.go
// Title: Core Error Tests
// Description: Tests for error construction, wrapping, code lookups and
//              JSON marshalling.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test implementation
// - 2026-10-18 v0.2.0: Tests for chain lookups and language codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("something broke")

	if err.Error() != "something broke" {
		t.Errorf("Error() = %q, want %q", err.Error(), "something broke")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if len(err.StackTrace()) == 0 {
		t.Error("New() should capture a stack trace")
	}
	if !strings.Contains(err.StackTrace()[0].Function, "TestNew") {
		t.Errorf("first frame = %q, want the calling test", err.StackTrace()[0].Function)
	}
}

func TestWithCode_DerivesSeverity(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want Severity
	}{
		{"syntax is low", CodeVMELSyntax, SeverityLow},
		{"database is high", CodeDatabaseError, SeverityHigh},
		{"internal is critical", CodeInternal, SeverityCritical},
		{"quota stays medium", CodeQuotaExceeded, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWithCode_KeepsExplicitSeverity(t *testing.T) {
	err := New("x").WithSeverity(SeverityCritical).WithCode(CodeNotFound)
	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if Wrap(nil, "context") != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("standard error", func(t *testing.T) {
		base := errors.New("disk full")
		err := Wrap(base, "journal write failed")

		if err.Error() != "journal write failed: disk full" {
			t.Errorf("Error() = %q", err.Error())
		}
		if !errors.Is(err, base) {
			t.Error("errors.Is should find the wrapped cause")
		}
	})

	t.Run("inherits code and details", func(t *testing.T) {
		base := New("duplicate").WithCode(CodeDuplicateEntry).WithDetail("name", "deploy")
		err := Wrap(base, "declare failed")

		if err.Code() != CodeDuplicateEntry {
			t.Errorf("Code() = %v, want %v", err.Code(), CodeDuplicateEntry)
		}
		if err.Details()["name"] != "deploy" {
			t.Errorf("Details()[name] = %v, want deploy", err.Details()["name"])
		}
	})
}

func TestHasCode(t *testing.T) {
	inner := New("not found").WithCode(CodeNotFound)
	outer := Wrap(inner, "lookup").WithCode(CodeInvalidOperation)
	std := fmt.Errorf("plain: %w", outer)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"outer code", outer, CodeInvalidOperation, true},
		{"inner code through chain", outer, CodeNotFound, true},
		{"through fmt wrapping", std, CodeNotFound, true},
		{"absent code", outer, CodeDatabaseError, false},
		{"plain error", errors.New("x"), CodeNotFound, false},
		{"nil error", nil, CodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(errors.New("x")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
	err := fmt.Errorf("ctx: %w", New("x").WithCode(CodeTimeout))
	if got := GetCode(err); got != CodeTimeout {
		t.Errorf("GetCode(wrapped) = %v, want %v", got, CodeTimeout)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("io"), "save run").
		WithCode(CodeDatabaseError).
		WithOperation("journal.Record").
		WithDetail("run_id", "abc")

	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Marshal() error = %v", marshalErr)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	checks := map[string]interface{}{
		"message":   "save run",
		"code":      "DATABASE_ERROR",
		"severity":  "high",
		"operation": "journal.Record",
		"cause":     "io",
	}
	for key, want := range checks {
		if decoded[key] != want {
			t.Errorf("%s = %v, want %v", key, decoded[key], want)
		}
	}
}

func TestCode_Mappings(t *testing.T) {
	tests := []struct {
		code     Code
		category string
		status   int
	}{
		{CodeVMELSyntax, "language", 400},
		{CodeVMELRuntime, "language", 422},
		{CodeDuplicateEntry, "storage", 409},
		{CodeQuotaExceeded, "operation", 429},
		{CodeInvalidConfig, "configuration", 400},
		{CodeUnknown, "generic", 500},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if !tt.code.IsValid() {
				t.Errorf("IsValid() = false for %v", tt.code)
			}
			if got := tt.code.Category(); got != tt.category {
				t.Errorf("Category() = %v, want %v", got, tt.category)
			}
			if got := tt.code.HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.status)
			}
		})
	}

	if Code("NOPE").IsValid() {
		t.Error("unknown code should not be valid")
	}
}

func TestString_SortsDetails(t *testing.T) {
	err := New("x").WithDetail("b", 2).WithDetail("a", 1)
	if !strings.Contains(err.String(), "Details: {a=1, b=2}") {
		t.Errorf("String() = %q, want sorted details", err.String())
	}
}
