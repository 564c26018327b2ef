// File: format_test.go
// Title: Log Format Tests
// Description: Tests for format parsing and the output of each formatter.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with formatter tests
// - 2026-10-18 v0.2.0: Field ordering tests

package log

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testEntry() *Entry {
	entry := NewEntry(LevelWarn, "division by zero")
	entry.Timestamp = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	entry.Logger = "executor"
	entry.Fields["line"] = 3
	entry.Fields["id"] = "runtime.division_by_zero"
	return entry
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" Text ", FormatText, false},
		{"CONSOLE", FormatConsole, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter().Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "12:30:00 [WRN] {executor} division by zero [id=runtime.division_by_zero line=3]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	entry := testEntry()
	entry.Error = errors.New("x / 0")

	out, err := NewLogfmtFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	line := string(out)
	for _, part := range []string{
		"level=warn",
		`message="division by zero"`,
		"logger=executor",
		`id="runtime.division_by_zero" line=3`,
		`error="x / 0"`,
	} {
		if !strings.Contains(line, part) {
			t.Errorf("Format() = %q, missing %q", line, part)
		}
	}
}

func TestConsoleFormatter(t *testing.T) {
	f := NewConsoleFormatter()
	out, _ := f.Format(testEntry())
	if !strings.HasPrefix(string(out), LevelWarn.Color()) {
		t.Errorf("console output should start with the level color: %q", out)
	}

	f.DisableColors = true
	out, _ = f.Format(testEntry())
	if strings.Contains(string(out), "\033[") {
		t.Errorf("DisableColors output contains escape codes: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DBG", LevelDebug, false},
		{"warning", LevelWarn, false},
		{"audit", LevelAudit, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}
