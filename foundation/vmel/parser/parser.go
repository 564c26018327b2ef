// File: parser.go
// Title: vmel Recursive Descent Parser
// Description: Builds AST nodes from tokens with one token of lookahead,
//              declares names in the symbol table and records syntax
//              diagnostics. After a failed statement it skips to the next
//              statement starter.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel/ast"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

// DefaultMaxDepth bounds parenthesis and array nesting
const DefaultMaxDepth = 128

// Options configures parser behavior
type Options struct {
	Logger   *mdwlog.Logger
	MaxDepth int
}

// Parser implements recursive descent parsing for vmel. A Parser holds no
// per-parse state and can be reused.
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// New creates a parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Parser{
		logger:  opts.Logger.WithField("component", "vmel-parser"),
		options: opts,
	}
}

// parseState is the cursor of one Parse call
type parseState struct {
	tokens   []Token
	pos      int
	symbols  *symtab.Table
	errs     *diag.List
	depth    int
	maxDepth int
}

// Parse turns tokens into root statements. Declarations go into symbols,
// syntax diagnostics into errs. The token slice must end with EOF.
func (p *Parser) Parse(tokens []Token, symbols *symtab.Table, errs *diag.List) []ast.Node {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: TokenEOF, Line: line})
	}

	s := &parseState{
		tokens:   tokens,
		symbols:  symbols,
		errs:     errs,
		maxDepth: p.options.MaxDepth,
	}
	before := errs.Len() + errs.Dropped()

	store := ast.NewStore()
	for s.cur().Type != TokenEOF {
		start := s.pos
		node := s.statement()
		if node != nil {
			store.Add(node)
			continue
		}
		if s.pos == start {
			s.advance()
		}
		s.skipTo()
	}

	p.logger.Debug("parse completed", mdwlog.Fields{
		"tokens":        len(tokens),
		"roots":         store.Len(),
		"syntax_errors": errs.Len() + errs.Dropped() - before,
	})
	return store.Roots()
}

func (s *parseState) cur() Token {
	return s.tokens[s.pos]
}

func (s *parseState) advance() {
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
}

func (s *parseState) report(id diag.ID, text string, line int) {
	// a full list counts the drop itself
	_ = s.errs.Report(id, text, line)
}

func (s *parseState) reportAt(id diag.ID, tok Token) {
	s.report(id, tok.Text(), tok.Line)
}

// skipTo advances to the next token that can start a statement
func (s *parseState) skipTo() {
	for {
		switch s.cur().Type {
		case TokenEOF, TokenIdentifier, TokenKeyword, TokenGroup:
			return
		}
		s.advance()
	}
}

// skipBalanced skips an opener and everything up to its matching closer
func (s *parseState) skipBalanced(open, close TokenType) {
	level := 0
	for s.cur().Type != TokenEOF {
		switch s.cur().Type {
		case open:
			level++
		case close:
			level--
		}
		s.advance()
		if level == 0 {
			return
		}
	}
}

func (s *parseState) statement() ast.Node {
	switch s.cur().Type {
	case TokenIdentifier:
		return s.parseAssignment()
	case TokenKeyword:
		return s.parseKeyword()
	case TokenGroup:
		if g := s.parseGroupBlock(); g != nil {
			return g
		}
		return nil
	default:
		s.reportAt(diag.SynUnexpectedToken, s.cur())
		s.advance()
		return nil
	}
}

func (s *parseState) parseAssignment() ast.Node {
	target := s.cur()
	s.advance()

	if s.cur().Type != TokenAssign {
		s.reportAt(diag.SynNakedDeclaration, target)
		return nil
	}
	s.advance()

	conflict := false
	if sym, ok := s.symbols.Lookup(target.Value); ok && sym.Kind == symtab.KindGroup {
		s.reportAt(diag.SynNameConflict, target)
		conflict = true
	}

	var value ast.Node
	if s.cur().Type == TokenLBracket {
		value = s.parseArray()
	} else {
		value = s.parseExpr()
	}
	if value == nil || conflict {
		return nil
	}

	if err := s.symbols.Declare(target.Value, symtab.KindVariable, target.Line); err != nil {
		s.reportAt(diag.SynNameConflict, target)
		return nil
	}
	return &ast.Assignment{
		Target:   target.Value,
		Value:    value,
		Position: position(target),
	}
}

func (s *parseState) parseKeyword() ast.Node {
	kw := s.cur()
	s.advance()

	var arg ast.Node
	switch s.cur().Type {
	case TokenEOF, TokenKeyword:
		s.report(diag.SynMissingArgument, kw.Value, kw.Line)
		return nil
	case TokenGroup:
		if g := s.parseGroupBlock(); g != nil {
			arg = g
		}
	default:
		arg = s.parseExpr()
	}
	if arg == nil {
		return nil
	}

	return &ast.KeywordCall{
		Keyword:  kw.Value,
		Arg:      arg,
		Position: position(kw),
	}
}

// parseGroupBlock returns nil for duplicate and empty groups. The command
// strings are consumed either way.
func (s *parseState) parseGroupBlock() *ast.Group {
	head := s.cur()
	s.advance()

	var commands []string
	for s.cur().Type == TokenString {
		commands = append(commands, s.cur().Value)
		s.advance()
	}

	if _, exists := s.symbols.Lookup(head.Value); exists {
		s.report(diag.SynDuplicateGroup, head.Value, head.Line)
		return nil
	}
	if len(commands) == 0 {
		s.report(diag.SynEmptyGroup, head.Value, head.Line)
		return nil
	}

	if err := s.symbols.Declare(head.Value, symtab.KindGroup, head.Line); err != nil {
		s.report(diag.SynDuplicateGroup, head.Value, head.Line)
		return nil
	}
	return &ast.Group{
		Name:     head.Value,
		Commands: commands,
		Position: position(head),
	}
}

func (s *parseState) parseArray() ast.Node {
	open := s.cur()
	if s.depth >= s.maxDepth {
		s.reportAt(diag.SynNestingTooDeep, open)
		s.skipBalanced(TokenLBracket, TokenRBracket)
		return nil
	}
	s.depth++
	defer func() { s.depth-- }()
	s.advance()

	arr := &ast.Array{Position: position(open)}
	if s.cur().Type == TokenRBracket {
		s.advance()
		return arr
	}

	for {
		var item ast.Node
		if s.cur().Type == TokenLBracket {
			item = s.parseArray()
		} else {
			item = s.parseExpr()
		}
		if item == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, item)

		switch s.cur().Type {
		case TokenComma:
			s.advance()
		case TokenRBracket:
			s.advance()
			return arr
		default:
			s.reportAt(diag.SynMissingBracket, s.cur())
			return nil
		}
	}
}

func (s *parseState) parseExpr() ast.Node {
	left := s.parseTerm()
	if left == nil {
		return nil
	}

	for {
		op := s.cur()
		if op.Type != TokenPlus && op.Type != TokenMinus && !op.Type.IsCompare() {
			return left
		}
		s.advance()
		if !canStartFactor(s.cur().Type) {
			s.report(diag.SynInvalidOperand, op.Value, op.Line)
			return nil
		}
		right := s.parseTerm()
		if right == nil {
			return nil
		}

		switch op.Type {
		case TokenPlus:
			left = &ast.BinaryOp{Op: ast.OpAdd, Left: left, Right: right, Position: position(op)}
		case TokenMinus:
			left = &ast.BinaryOp{Op: ast.OpSub, Left: left, Right: right, Position: position(op)}
		default:
			left = &ast.CompareOp{Op: compareKinds[op.Type], Left: left, Right: right, Position: position(op)}
		}
	}
}

func (s *parseState) parseTerm() ast.Node {
	left := s.parseFactor()
	if left == nil {
		return nil
	}

	for s.cur().Type == TokenStar || s.cur().Type == TokenSlash {
		op := s.cur()
		s.advance()
		if !canStartFactor(s.cur().Type) {
			s.report(diag.SynInvalidOperand, op.Value, op.Line)
			return nil
		}
		right := s.parseFactor()
		if right == nil {
			return nil
		}

		kind := ast.OpMul
		if op.Type == TokenSlash {
			kind = ast.OpDiv
		}
		left = &ast.BinaryOp{Op: kind, Left: left, Right: right, Position: position(op)}
	}
	return left
}

func (s *parseState) parseFactor() ast.Node {
	tok := s.cur()
	switch tok.Type {
	case TokenInteger, TokenIdentifier, TokenString, TokenMixString:
		s.advance()
		return &ast.Literal{Kind: literalKinds[tok.Type], Value: tok.Value, Position: position(tok)}
	case TokenLParen:
		if s.depth >= s.maxDepth {
			s.reportAt(diag.SynNestingTooDeep, tok)
			s.skipBalanced(TokenLParen, TokenRParen)
			return nil
		}
		s.depth++
		s.advance()
		inner := s.parseExpr()
		s.depth--
		if inner == nil {
			return nil
		}
		if s.cur().Type != TokenRParen {
			s.reportAt(diag.SynMissingParen, s.cur())
			return nil
		}
		s.advance()
		return inner
	default:
		s.reportAt(diag.SynUnexpectedToken, tok)
		return nil
	}
}

func canStartFactor(tt TokenType) bool {
	switch tt {
	case TokenInteger, TokenIdentifier, TokenString, TokenMixString, TokenLParen:
		return true
	}
	return false
}

var literalKinds = map[TokenType]ast.LiteralKind{
	TokenInteger:    ast.LiteralInteger,
	TokenIdentifier: ast.LiteralIdentifier,
	TokenString:     ast.LiteralString,
	TokenMixString:  ast.LiteralMixString,
}

var compareKinds = map[TokenType]ast.CompareKind{
	TokenEq:      ast.OpEq,
	TokenNeq:     ast.OpNeq,
	TokenLt:      ast.OpLt,
	TokenLte:     ast.OpLte,
	TokenGt:      ast.OpGt,
	TokenGte:     ast.OpGte,
	TokenBetween: ast.OpBetween,
}

func position(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}
