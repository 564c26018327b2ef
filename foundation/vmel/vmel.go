// File: vmel.go
// Title: vmel Engine
// Description: Coordinates lexer, parser and evaluator for one run and
//              renders diagnostics through the message catalogs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package vmel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/executor"
	"github.com/msto63/vmel/foundation/vmel/parser"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

// DefaultMaxSourceLength is the default input limit in bytes
const DefaultMaxSourceLength = 1 << 20

// Engine runs vmel source. It keeps no state between runs and is safe for
// concurrent use.
type Engine struct {
	parser   *parser.Parser
	executor *executor.Evaluator
	renderer *diag.Renderer
	logger   *mdwlog.Logger
	options  Options
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *mdwlog.Logger

	// ErrorCapacity bounds the diagnostics kept per run (default: 20)
	ErrorCapacity int

	// MaxSourceLength limits the input size in bytes (default: 1 MiB)
	MaxSourceLength int

	// MaxDepth limits parenthesis and array nesting (default: 128)
	MaxDepth int

	// StrictCoercion reports non-numeric text in arithmetic
	StrictCoercion bool

	// Locale selects the diagnostic message catalog (default: en)
	Locale string

	// LocalesDir holds catalogs that override the embedded ones (optional)
	LocalesDir string
}

// Result is the outcome of one run
type Result struct {
	RunID       uuid.UUID             `json:"run_id"`
	Tokens      []parser.Token        `json:"-"`
	Roots       []ast.Node            `json:"-"`
	Symbols     []symtab.Symbol       `json:"symbols"`
	Output      []executor.OutputItem `json:"output"`
	Diagnostics []diag.Diagnostic     `json:"diagnostics"`
	Dropped     int                   `json:"dropped"`
	Duration    time.Duration         `json:"duration"`
}

// Text returns the rendered program output
func (r *Result) Text() string {
	return executor.Render(r.Output)
}

// HasErrors reports whether any diagnostic was recorded or dropped
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0 || r.Dropped > 0
}

// Count returns the number of kept diagnostics of category c
func (r *Result) Count(c diag.Category) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Category == c {
			n++
		}
	}
	return n
}

// ParseResult is the outcome of lexing and parsing without evaluation
type ParseResult struct {
	Tokens      []parser.Token
	Roots       []ast.Node
	Symbols     []symtab.Symbol
	Diagnostics []diag.Diagnostic
	Dropped     int
}

// NewEngine creates an engine with the specified options
func NewEngine(opts ...Options) (*Engine, error) {
	options := Options{
		Logger:          mdwlog.GetDefault(),
		ErrorCapacity:   diag.DefaultCapacity,
		MaxSourceLength: DefaultMaxSourceLength,
		MaxDepth:        parser.DefaultMaxDepth,
		Locale:          diag.DefaultLocale,
	}

	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.ErrorCapacity < 0 {
			return nil, mdwerror.Newf("error capacity must not be negative, got %d", provided.ErrorCapacity).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("vmel.NewEngine")
		}
		if provided.ErrorCapacity > 0 {
			options.ErrorCapacity = provided.ErrorCapacity
		}
		if provided.MaxSourceLength > 0 {
			options.MaxSourceLength = provided.MaxSourceLength
		}
		if provided.MaxDepth > 0 {
			options.MaxDepth = provided.MaxDepth
		}
		if provided.Locale != "" {
			options.Locale = provided.Locale
		}
		options.StrictCoercion = provided.StrictCoercion
		options.LocalesDir = provided.LocalesDir
	}

	logger := options.Logger.WithField("component", "vmel-engine")

	renderer, err := diag.NewRenderer(options.Locale, options.LocalesDir)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to load diagnostic catalogs").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("vmel.NewEngine").
			WithDetail("locale", options.Locale)
	}

	return &Engine{
		parser: parser.New(parser.Options{
			Logger:   options.Logger,
			MaxDepth: options.MaxDepth,
		}),
		executor: executor.New(executor.Options{
			Logger:         options.Logger,
			StrictCoercion: options.StrictCoercion,
		}),
		renderer: renderer,
		logger:   logger,
		options:  options,
	}, nil
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// Run lexes, parses and evaluates src in a fresh symbol table. Program
// diagnostics are part of the result. A lexical error stops the run
// before parsing. When ctx is done during evaluation, the partial result
// is returned together with ctx.Err().
func (e *Engine) Run(ctx context.Context, src string) (*Result, error) {
	if err := e.checkSource(src, "vmel.Run"); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.New()}
	symbols := symtab.New()
	errs := diag.NewList(e.options.ErrorCapacity)

	timer := e.logger.WithField("run_id", result.RunID.String()).StartTimer("vmel run")
	timer.WithField("source_bytes", len(src))

	err := e.pipeline(ctx, src, symbols, errs, result, timer)

	result.Symbols = symbols.Symbols()
	result.Diagnostics = errs.Items()
	result.Dropped = errs.Dropped()
	timer.WithField("diagnostics", len(result.Diagnostics)).
		WithField("output_items", len(result.Output))
	result.Duration = timer.StopWithError(err)
	return result, err
}

// pipeline runs the three stages and fills result.Tokens, Roots and Output
func (e *Engine) pipeline(ctx context.Context, src string, symbols *symtab.Table, errs *diag.List, result *Result, timer *mdwlog.Timer) error {
	tokens, err := parser.Tokenize(src)
	result.Tokens = tokens
	if err != nil {
		var lexErr *parser.LexError
		if !errors.As(err, &lexErr) {
			return err
		}
		_ = errs.Add(lexErr.Diagnostic)
		timer.Checkpoint("lexed", mdwlog.Fields{"failed": true})
		return nil
	}
	timer.Checkpoint("lexed", mdwlog.Fields{"tokens": len(tokens)})

	result.Roots = e.parser.Parse(tokens, symbols, errs)
	timer.Checkpoint("parsed", mdwlog.Fields{"roots": len(result.Roots)})

	output, err := e.executor.Run(ctx, result.Roots, symbols, errs)
	result.Output = output
	timer.Checkpoint("evaluated")
	return err
}

// Tokenize returns the tokens of src. On a lexical error the tokens read
// so far are returned with a *parser.LexError.
func (e *Engine) Tokenize(src string) ([]parser.Token, error) {
	if err := e.checkSource(src, "vmel.Tokenize"); err != nil {
		return nil, err
	}
	return parser.Tokenize(src)
}

// Parse lexes and parses src without evaluating it
func (e *Engine) Parse(src string) (*ParseResult, error) {
	if err := e.checkSource(src, "vmel.Parse"); err != nil {
		return nil, err
	}

	symbols := symtab.New()
	errs := diag.NewList(e.options.ErrorCapacity)
	result := &ParseResult{}

	tokens, err := parser.Tokenize(src)
	result.Tokens = tokens
	var lexErr *parser.LexError
	switch {
	case errors.As(err, &lexErr):
		_ = errs.Add(lexErr.Diagnostic)
	case err != nil:
		return nil, err
	default:
		result.Roots = e.parser.Parse(tokens, symbols, errs)
	}

	result.Symbols = symbols.Symbols()
	result.Diagnostics = errs.Items()
	result.Dropped = errs.Dropped()
	return result, nil
}

// Render returns the localized message for d
func (e *Engine) Render(d diag.Diagnostic) string {
	return e.renderer.Render(d)
}

// Messages renders the diagnostics of result in order
func (e *Engine) Messages(result *Result) []string {
	if result == nil {
		return nil
	}
	return e.renderer.RenderAll(result.Diagnostics)
}

// Locale returns the active message catalog locale
func (e *Engine) Locale() string {
	return e.renderer.Locale()
}

func (e *Engine) checkSource(src, operation string) error {
	if len(src) <= e.options.MaxSourceLength {
		return nil
	}
	return mdwerror.Newf("source is %d bytes, limit is %d", len(src), e.options.MaxSourceLength).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation(operation).
		WithDetail("length", len(src)).
		WithDetail("max_length", e.options.MaxSourceLength)
}
