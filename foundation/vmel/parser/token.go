// File: token.go
// Title: vmel Tokens
// Description: Token types, the Token record and the keyword set.
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
	"sort"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota

	// Literals and names
	TokenKeyword    // print
	TokenIdentifier // $name
	TokenString     // "text"
	TokenInteger    // 42
	TokenMixString  // `Hello $name`
	TokenGroup      // {deploy}

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenComma    // ,

	// Arithmetic
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Assignment and comparison
	TokenAssign  // =
	TokenEq      // ==
	TokenBang    // !
	TokenNeq     // !=
	TokenLt      // <
	TokenLte     // <=
	TokenGt      // >
	TokenGte     // >=
	TokenBetween // ><
)

var tokenNames = [...]string{
	TokenEOF:        "EOF",
	TokenKeyword:    "KEYWORD",
	TokenIdentifier: "IDENTIFIER",
	TokenString:     "STRING",
	TokenInteger:    "INTEGER",
	TokenMixString:  "MIXSTRING",
	TokenGroup:      "GROUP",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
	TokenLBracket:   "LBRACKET",
	TokenRBracket:   "RBRACKET",
	TokenComma:      "COMMA",
	TokenPlus:       "PLUS",
	TokenMinus:      "MINUS",
	TokenStar:       "STAR",
	TokenSlash:      "SLASH",
	TokenAssign:     "ASSIGN",
	TokenEq:         "EQ",
	TokenBang:       "BANG",
	TokenNeq:        "NEQ",
	TokenLt:         "LT",
	TokenLte:        "LTE",
	TokenGt:         "GT",
	TokenGte:        "GTE",
	TokenBetween:    "BETWEEN",
}

// String returns the upper case name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// MarshalText implements encoding.TextMarshaler
func (tt TokenType) MarshalText() ([]byte, error) {
	return []byte(tt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (tt *TokenType) UnmarshalText(text []byte) error {
	for i, name := range tokenNames {
		if name == string(text) {
			*tt = TokenType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown token type %q", text)
}

// IsCompare reports whether tt is one of the comparison operators
func (tt TokenType) IsCompare() bool {
	switch tt {
	case TokenEq, TokenNeq, TokenLt, TokenLte, TokenGt, TokenGte, TokenBetween:
		return true
	}
	return false
}

// Token is one lexeme. Value holds the literal without delimiters: the
// variable name without '$', the group name without braces, string content
// without quotes.
type Token struct {
	Type   TokenType `json:"type"`
	Value  string    `json:"value"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
}

// Text returns the token as it appears in source. It is the offending text
// reported in diagnostics.
func (t Token) Text() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdentifier:
		return "$" + t.Value
	case TokenString:
		return `"` + t.Value + `"`
	case TokenMixString:
		return "`" + t.Value + "`"
	case TokenGroup:
		return "{" + t.Value + "}"
	default:
		return t.Value
	}
}

// String returns a debug representation of the token
func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

var keywords = map[string]bool{
	"print":   true,
	"println": true,
	"echo":    true,
	"run":     true,
	"exec":    true,
}

// IsKeyword reports whether word is a reserved keyword
func IsKeyword(word string) bool {
	return keywords[word]
}

// Keywords returns the reserved keywords in sorted order
func Keywords() []string {
	result := make([]string, 0, len(keywords))
	for k := range keywords {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
