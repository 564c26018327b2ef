// File: buffer_test.go
// Title: String Buffer Tests
// Description: Tests for Buffer push, set and replacement semantics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package stringx

import (
	"strings"
	"testing"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

func TestBuffer_Push(t *testing.T) {
	var b Buffer
	b.PushString("pr")
	b.PushByte('i')
	b.PushString(strings.Repeat("n", 100))

	if b.Len() != 103 {
		t.Errorf("Len() = %d, want 103", b.Len())
	}
	if !strings.HasPrefix(b.String(), "prin") {
		t.Errorf("String() = %q", b.String())
	}

	b.Set("x")
	if b.String() != "x" {
		t.Errorf("after Set() = %q, want x", b.String())
	}
	b.Reset()
	if b.Len() != 0 {
		t.Errorf("after Reset() Len() = %d", b.Len())
	}
}

func TestBuffer_ReplaceFirst(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		needle      string
		replacement string
		want        string
	}{
		{"same length", "a $x b", "$x", "42", "a 42 b"},
		{"longer", "Hello $name!", "$name", "Samantha", "Hello Samantha!"},
		{"shorter", "Hello $name!", "$name", "S", "Hello S!"},
		{"empty replacement", "[$a]", "$a", "", "[]"},
		{"only first", "$a $a", "$a", "1", "1 $a"},
		{"at end", "value $v", "$v", "long text", "value long text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.initial)
			if err := b.ReplaceFirst(tt.needle, tt.replacement); err != nil {
				t.Fatalf("ReplaceFirst() error = %v", err)
			}
			if b.String() != tt.want {
				t.Errorf("String() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestBuffer_ReplaceFirstErrors(t *testing.T) {
	b := NewBuffer("abc")

	err := b.ReplaceFirst("", "x")
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("empty needle error = %v, want INVALID_INPUT", err)
	}

	err = b.ReplaceFirst("zz", "x")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("missing needle error = %v, want NOT_FOUND", err)
	}
	if b.String() != "abc" {
		t.Errorf("failed replace modified buffer: %q", b.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"println $x", 7, "prin..."},
		{"äöüäöü", 4, "ä..."},
		{"abc", 2, ".."},
		{"abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max, "..."); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsBlankAndFirstLine(t *testing.T) {
	if !IsBlank(" \t\n") || IsBlank(" x ") {
		t.Error("IsBlank() mismatch")
	}
	if got := FirstLine("a = 1\nprint $a"); got != "a = 1" {
		t.Errorf("FirstLine() = %q", got)
	}
	if got := FirstNonBlank("", "  ", "de", "en"); got != "de" {
		t.Errorf("FirstNonBlank() = %q, want de", got)
	}
}

func TestBuffer_ReplaceFirstFrom(t *testing.T) {
	b := NewBuffer("$ab $a $a")

	idx, err := b.ReplaceFirstFrom(4, "$a", "1")
	if err != nil {
		t.Fatalf("ReplaceFirstFrom() error = %v", err)
	}
	if idx != 4 || b.String() != "$ab 1 $a" {
		t.Errorf("ReplaceFirstFrom() = %d, %q", idx, b.String())
	}

	if _, err := b.ReplaceFirstFrom(99, "$a", "x"); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("offset past end error = %v", err)
	}
	if got := b.IndexFrom(5, "$a"); got != 6 {
		t.Errorf("IndexFrom() = %d, want 6", got)
	}
}
