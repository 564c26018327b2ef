// File: lexer.go
// Title: vmel Lexical Analyzer
// Description: Single left to right scan that converts source text into
//              tokens. Scanning stops at the first lexical error; an EOF
//              token is always appended.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package parser

import (
	"fmt"

	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
	"github.com/msto63/vmel/foundation/vmel/diag"
)

// LexError reports the lexical diagnostic that stopped tokenization
type LexError struct {
	Diagnostic diag.Diagnostic
}

// Error implements the error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error: %s", e.Diagnostic)
}

// Lexer performs lexical analysis of vmel source
type Lexer struct {
	input   string
	pos     int  // index of ch
	readPos int  // index after ch
	ch      byte // current char, 0 at end of input
	line    int
	column  int

	scratch mdwstringx.Buffer
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Tokenize scans the whole input. On a lexical error it returns the tokens
// read so far, terminated by EOF, and a *LexError.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, d := l.NextToken()
		if d != nil {
			tokens = append(tokens, Token{Type: TokenEOF, Line: l.line, Column: l.column})
			return tokens, &LexError{Diagnostic: *d}
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token, or a diagnostic if the input at the
// current position is not a valid token
func (l *Lexer) NextToken() (Token, *diag.Diagnostic) {
	l.skipWhitespaceAndComments()

	line, column := l.line, l.column
	tok := func(tt TokenType, value string) (Token, *diag.Diagnostic) {
		return Token{Type: tt, Value: value, Line: line, Column: column}, nil
	}

	switch l.ch {
	case 0:
		return tok(TokenEOF, "")
	case '(', ')', '[', ']', ',', '+', '-', '*', '/':
		ch := l.ch
		l.readChar()
		return tok(singleCharTokens[ch], string(ch))
	case '=':
		return l.twoChar(line, column, TokenAssign, '=', TokenEq)
	case '!':
		return l.twoChar(line, column, TokenBang, '=', TokenNeq)
	case '<':
		return l.twoChar(line, column, TokenLt, '=', TokenLte)
	case '>':
		if l.peekChar() == '<' {
			l.readChar()
			l.readChar()
			return tok(TokenBetween, "><")
		}
		return l.twoChar(line, column, TokenGt, '=', TokenGte)
	case '"':
		return l.readQuoted('"', TokenString, diag.LexUnterminatedString, line, column)
	case '`':
		return l.readQuoted('`', TokenMixString, diag.LexUnterminatedMixString, line, column)
	case '$':
		l.readChar()
		name := l.readName()
		if !IsValidName(name) {
			return Token{}, lexDiag(diag.LexIllegalVariable, "$"+name, line)
		}
		return tok(TokenIdentifier, name)
	case '{':
		l.readChar()
		name := l.readName()
		if !IsValidName(name) || l.ch != '}' {
			return Token{}, lexDiag(diag.LexMalformedGroup, "{"+name, line)
		}
		l.readChar()
		return tok(TokenGroup, name)
	}

	switch {
	case isDigit(l.ch):
		l.scratch.Reset()
		for isDigit(l.ch) {
			l.scratch.PushByte(l.ch)
			l.readChar()
		}
		return tok(TokenInteger, l.scratch.String())
	case isLetter(l.ch):
		l.scratch.Reset()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.scratch.PushByte(l.ch)
			l.readChar()
		}
		word := l.scratch.String()
		if !IsKeyword(word) {
			return Token{}, lexDiag(diag.LexUnknownToken, word, line)
		}
		return tok(TokenKeyword, word)
	default:
		l.scratch.Reset()
		for l.ch != 0 && !isSpace(l.ch) && !isDelimiter(l.ch) {
			l.scratch.PushByte(l.ch)
			l.readChar()
		}
		if l.scratch.Len() == 0 {
			l.scratch.PushByte(l.ch)
			l.readChar()
		}
		return Token{}, lexDiag(diag.LexUnknownToken, l.scratch.String(), line)
	}
}

var singleCharTokens = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
}

// twoChar commits to long when the next char is next, otherwise to short
func (l *Lexer) twoChar(line, column int, short TokenType, next byte, long TokenType) (Token, *diag.Diagnostic) {
	first := l.ch
	if l.peekChar() == next {
		l.readChar()
		l.readChar()
		return Token{Type: long, Value: string([]byte{first, next}), Line: line, Column: column}, nil
	}
	l.readChar()
	return Token{Type: short, Value: string(first), Line: line, Column: column}, nil
}

// readQuoted reads up to the closing quote. Strings cannot span lines.
func (l *Lexer) readQuoted(quote byte, tt TokenType, id diag.ID, line, column int) (Token, *diag.Diagnostic) {
	l.readChar()
	l.scratch.Reset()
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return Token{}, lexDiag(id, l.scratch.String(), line)
		}
		l.scratch.PushByte(l.ch)
		l.readChar()
	}
	l.readChar()
	return Token{Type: tt, Value: l.scratch.String(), Line: line, Column: column}, nil
}

// readName reads a run of name characters without validating it
func (l *Lexer) readName() string {
	l.scratch.Reset()
	for IsNameChar(l.ch) {
		l.scratch.PushByte(l.ch)
		l.readChar()
	}
	return l.scratch.String()
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isSpace(l.ch):
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func lexDiag(id diag.ID, text string, line int) *diag.Diagnostic {
	d := diag.New(id, text, line)
	return &d
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case '(', ')', '[', ']', ',', '+', '*', '/', '=', '!', '<', '>', '"', '`', '$', '{', '#':
		return true
	}
	return false
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// IsNameChar reports whether ch may appear in a variable or group name
func IsNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '-'
}

// IsValidName reports whether name is a legal variable or group name: name
// characters only, not empty, not starting with a digit or '-'
func IsValidName(name string) bool {
	if name == "" || isDigit(name[0]) || name[0] == '-' {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !IsNameChar(name[i]) {
			return false
		}
	}
	return true
}

// Tokenize is a convenience wrapper around NewLexer(input).Tokenize()
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}
