// File: executor.go
// Title: vmel Evaluator
// Description: Runs root statements in order against a symbol table and
//              records runtime diagnostics. A failing statement is skipped
//              and evaluation continues with the next root.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
// - 2026-10-18 v0.1.1: Integer literal arguments are emitted as written

package executor

import (
	"context"
	"errors"
	"strconv"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

// Options configures evaluator behavior
type Options struct {
	Logger *mdwlog.Logger

	// StrictCoercion reports non-numeric text in arithmetic as
	// runtime.not_a_number instead of using its byte sum
	StrictCoercion bool
}

// Evaluator executes parsed statements. It holds no per-run state.
type Evaluator struct {
	logger  *mdwlog.Logger
	options Options
}

// New creates an evaluator with the given options
func New(opts Options) *Evaluator {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Evaluator{
		logger:  opts.Logger.WithField("component", "vmel-executor"),
		options: opts,
	}
}

// fault is a runtime diagnostic that aborts the current statement
type fault struct {
	diag diag.Diagnostic
}

func (f *fault) Error() string {
	return f.diag.String()
}

func newFault(id diag.ID, text string, line int) error {
	return &fault{diag: diag.New(id, text, line)}
}

// runState is the state of one Run call
type runState struct {
	symbols *symtab.Table
	errs    *diag.List
	strict  bool
	output  []OutputItem
	scratch *mdwstringx.Buffer
}

// Run executes roots in order. Values are read from and written to symbols,
// runtime diagnostics go to errs. ctx is checked before every root; when it
// is done Run returns the output produced so far together with ctx.Err().
func (e *Evaluator) Run(ctx context.Context, roots []ast.Node, symbols *symtab.Table, errs *diag.List) ([]OutputItem, error) {
	s := &runState{
		symbols: symbols,
		errs:    errs,
		strict:  e.options.StrictCoercion,
		scratch: mdwstringx.NewBuffer(""),
	}
	before := errs.Len() + errs.Dropped()

	for i, root := range roots {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("evaluation cancelled", mdwlog.Fields{
				"executed": i,
				"roots":    len(roots),
			})
			return s.output, err
		}
		s.execute(root)
	}

	e.logger.Debug("evaluation completed", mdwlog.Fields{
		"roots":          len(roots),
		"output_items":   len(s.output),
		"runtime_errors": errs.Len() + errs.Dropped() - before,
	})
	return s.output, nil
}

func (s *runState) execute(root ast.Node) {
	switch n := root.(type) {
	case *ast.Assignment:
		s.assign(n)
	case *ast.KeywordCall:
		s.call(n)
	case *ast.Group, *ast.Array:
		// declarations only
	default:
		s.report(diag.RunInvalidOperand, root.String(), root.Pos().Line)
	}
}

func (s *runState) assign(n *ast.Assignment) {
	value, err := s.textOf(n.Value)
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.symbols.Assign(n.Target, value); err != nil {
		s.report(diag.RunInvalidOperand, "$"+n.Target, n.Position.Line)
	}
}

// textOf returns the text stored by an assignment of node
func (s *runState) textOf(node ast.Node) (string, error) {
	switch v := node.(type) {
	case *ast.Literal:
		switch v.Kind {
		case ast.LiteralInteger, ast.LiteralString:
			return v.Value, nil
		case ast.LiteralIdentifier:
			return s.resolve(v.Value, v.Position.Line)
		case ast.LiteralMixString:
			return s.interpolate(v.Value, v.Position.Line), nil
		}
	case *ast.Array:
		return v.String(), nil
	}

	i, err := s.evalInt(node)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(i, 10), nil
}

func (s *runState) call(n *ast.KeywordCall) {
	var value Value

	switch arg := n.Arg.(type) {
	case *ast.Group:
		return
	case *ast.Literal:
		switch arg.Kind {
		case ast.LiteralInteger:
			// emitted as written, leading zeros and all
			value = TextValue(arg.Value)
			if i, err := strconv.ParseInt(arg.Value, 10, 64); err == nil && strconv.FormatInt(i, 10) == arg.Value {
				value = IntValue(i)
			}
		case ast.LiteralString:
			value = TextValue(arg.Value)
		case ast.LiteralIdentifier:
			text, err := s.resolve(arg.Value, arg.Position.Line)
			if err != nil {
				s.fail(err)
				return
			}
			value = TextValue(text)
		case ast.LiteralMixString:
			value = TextValue(s.interpolate(arg.Value, arg.Position.Line))
		}
	default:
		i, err := s.evalInt(arg)
		if err != nil {
			s.fail(err)
			return
		}
		value = IntValue(i)
	}

	s.output = append(s.output, OutputItem{
		Keyword: n.Keyword,
		Value:   value,
		Line:    n.Position.Line,
		Newline: n.Keyword != "print",
	})
}

// resolve returns the current value of a variable
func (s *runState) resolve(name string, line int) (string, error) {
	sym, ok := s.symbols.Lookup(name)
	switch {
	case !ok:
		return "", newFault(diag.RunUndefinedVariable, "$"+name, line)
	case sym.Kind == symtab.KindGroup:
		return "", newFault(diag.RunInvalidOperand, "$"+name, line)
	case !sym.HasValue:
		return "", newFault(diag.RunUndefinedVariable, "$"+name, line)
	}
	return sym.Value, nil
}

func (s *runState) fail(err error) {
	var f *fault
	if errors.As(err, &f) {
		_ = s.errs.Add(f.diag)
		return
	}
	s.report(diag.RunInvalidOperand, err.Error(), 0)
}

func (s *runState) report(id diag.ID, text string, line int) {
	_ = s.errs.Report(id, text, line)
}
