// File: vmel_test.go
// Title: vmel Engine Tests
// Description: Tests for the engine pipeline, option handling, source
//              limits and diagnostic rendering.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test suite

package vmel

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/parser"
)

func quietLogger() *mdwlog.Logger {
	return mdwlog.NewWithConfig(mdwlog.Config{Level: mdwlog.LevelError, Output: io.Discard})
}

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	opts.Logger = quietLogger()
	engine, err := NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestNewEngine_Defaults(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	opts := engine.Options()
	if opts.ErrorCapacity != diag.DefaultCapacity {
		t.Errorf("ErrorCapacity = %d, want %d", opts.ErrorCapacity, diag.DefaultCapacity)
	}
	if opts.MaxSourceLength != DefaultMaxSourceLength {
		t.Errorf("MaxSourceLength = %d, want %d", opts.MaxSourceLength, DefaultMaxSourceLength)
	}
	if opts.MaxDepth != parser.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", opts.MaxDepth, parser.DefaultMaxDepth)
	}
	if engine.Locale() != "en" {
		t.Errorf("Locale() = %q, want en", engine.Locale())
	}
}

func TestNewEngine_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code mdwerror.Code
	}{
		{"negative capacity", Options{ErrorCapacity: -1}, mdwerror.CodeInvalidConfig},
		{"unknown locale", Options{Locale: "xx"}, mdwerror.CodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = quietLogger()
			_, err := NewEngine(tt.opts)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("NewEngine() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestEngine_Run(t *testing.T) {
	engine := newTestEngine(t, Options{})
	src := "# demo\n$name = \"Sam\"\n$n = (2 + 3) * 4\n{deploy} \"build\" \"push\"\nprint `Hello $name, `\nprintln $n\n"

	result, err := engine.Run(context.Background(), src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if got := result.Text(); got != "Hello Sam, 20\n" {
		t.Errorf("Text() = %q", got)
	}
	if len(result.Roots) != 5 {
		t.Errorf("got %d roots, want 5", len(result.Roots))
	}
	if len(result.Symbols) != 3 {
		t.Errorf("got %d symbols, want 3", len(result.Symbols))
	}
	if result.Tokens[len(result.Tokens)-1].Type != parser.TokenEOF {
		t.Error("token stream does not end with EOF")
	}
	if result.RunID.String() == "" || result.Duration <= 0 {
		t.Errorf("RunID = %v, Duration = %v", result.RunID, result.Duration)
	}
}

func TestEngine_RunsAreIndependent(t *testing.T) {
	engine := newTestEngine(t, Options{})
	ctx := context.Background()

	first, err := engine.Run(ctx, "$a = 1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := engine.Run(ctx, "println $a")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if first.RunID == second.RunID {
		t.Error("runs share an id")
	}
	if second.Count(diag.CategoryRuntime) != 1 {
		t.Errorf("diagnostics = %v, want one undefined variable", second.Diagnostics)
	}
}

func TestEngine_LexicalErrorStopsRun(t *testing.T) {
	engine := newTestEngine(t, Options{})

	result, err := engine.Run(context.Background(), "println 1\n$a = \"abc\nprintln 2")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := diag.New(diag.LexUnterminatedString, "abc", 2)
	if len(result.Diagnostics) != 1 || result.Diagnostics[0] != want {
		t.Fatalf("diagnostics = %v, want [%v]", result.Diagnostics, want)
	}
	if len(result.Roots) != 0 || len(result.Output) != 0 {
		t.Errorf("roots = %v, output = %v, want none after a lexical error", result.Roots, result.Output)
	}
}

func TestEngine_ErrorCapacity(t *testing.T) {
	engine := newTestEngine(t, Options{ErrorCapacity: 2})

	result, err := engine.Run(context.Background(), "println $a\nprintln $b\nprintln $c\nprintln $d")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Diagnostics) != 2 || result.Dropped != 2 {
		t.Errorf("kept %d, dropped %d, want 2 and 2", len(result.Diagnostics), result.Dropped)
	}
	if !result.HasErrors() {
		t.Error("HasErrors() = false")
	}
}

func TestEngine_SourceLimit(t *testing.T) {
	engine := newTestEngine(t, Options{MaxSourceLength: 8})
	src := strings.Repeat("x", 9)

	if _, err := engine.Run(context.Background(), src); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Run() error = %v, want INVALID_INPUT", err)
	}
	if _, err := engine.Parse(src); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Parse() error = %v, want INVALID_INPUT", err)
	}
	if _, err := engine.Tokenize(src); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Tokenize() error = %v, want INVALID_INPUT", err)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	engine := newTestEngine(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Run(ctx, "$a = 1\nprintln $a")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if result == nil || len(result.Roots) != 2 || len(result.Output) != 0 {
		t.Errorf("partial result = %+v", result)
	}
}

func TestEngine_StrictCoercion(t *testing.T) {
	tests := []struct {
		name   string
		strict bool
		output string
		diags  int
	}{
		{"legacy", false, "98\n", 0},
		{"strict", true, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, Options{StrictCoercion: tt.strict})
			result, err := engine.Run(context.Background(), "println \"a\" + 1")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if result.Text() != tt.output || len(result.Diagnostics) != tt.diags {
				t.Errorf("output = %q, diagnostics = %v", result.Text(), result.Diagnostics)
			}
		})
	}
}

func TestEngine_MaxDepth(t *testing.T) {
	engine := newTestEngine(t, Options{MaxDepth: 3})

	result, err := engine.Run(context.Background(), "println ((((1))))")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].ID != diag.SynNestingTooDeep {
		t.Errorf("diagnostics = %v, want nesting_too_deep", result.Diagnostics)
	}
}

func TestEngine_Parse(t *testing.T) {
	engine := newTestEngine(t, Options{})

	result, err := engine.Parse("$a = 1\n$b\n{g} \"x\"")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Roots) != 2 {
		t.Errorf("got %d roots, want 2", len(result.Roots))
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].ID != diag.SynNakedDeclaration {
		t.Errorf("diagnostics = %v", result.Diagnostics)
	}
	for _, sym := range result.Symbols {
		if sym.HasValue {
			t.Errorf("symbol %q has a value without evaluation", sym.Name)
		}
	}

	lexical, err := engine.Parse("print @")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lexical.Roots) != 0 || len(lexical.Diagnostics) != 1 || lexical.Diagnostics[0].Category != diag.CategoryLexical {
		t.Errorf("lexical parse result = %+v", lexical)
	}
}

func TestEngine_Tokenize(t *testing.T) {
	engine := newTestEngine(t, Options{})

	tokens, err := engine.Tokenize("print 1")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 3 {
		t.Errorf("got %d tokens, want 3", len(tokens))
	}

	_, err = engine.Tokenize("print `x")
	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) || lexErr.Diagnostic.ID != diag.LexUnterminatedMixString {
		t.Errorf("Tokenize() error = %v, want unterminated mix string", err)
	}
}

func TestEngine_Messages(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en", "undefined variable '$x' on line 1"},
		{"de", "$x"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			engine := newTestEngine(t, Options{Locale: tt.locale})
			result, err := engine.Run(context.Background(), "println $x")
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			messages := engine.Messages(result)
			if len(messages) != 1 || !strings.Contains(messages[0], tt.want) {
				t.Errorf("Messages() = %v, want one containing %q", messages, tt.want)
			}
		})
	}

	engine := newTestEngine(t, Options{})
	if engine.Messages(nil) != nil {
		t.Error("Messages(nil) returned messages")
	}
	if got := engine.Render(diag.New("custom.unknown", "x", 3)); got != "custom.unknown: 'x' on line 3" {
		t.Errorf("Render() = %q", got)
	}
}
