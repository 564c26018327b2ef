// File: diag.go
// Title: Diagnostic Types
// Description: Categories, message ids and the Diagnostic record.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package diag

import (
	"fmt"
	"strings"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
)

// Category groups diagnostics by the pipeline stage that produced them
type Category int

const (
	// CategoryLexical diagnostics stop tokenization
	CategoryLexical Category = iota
	// CategorySyntax diagnostics are recovered from by the parser
	CategorySyntax
	// CategoryRuntime diagnostics skip the offending statement
	CategoryRuntime
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategoryRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	switch string(text) {
	case "lexical":
		*c = CategoryLexical
	case "syntax":
		*c = CategorySyntax
	case "runtime":
		*c = CategoryRuntime
	default:
		return fmt.Errorf("unknown diagnostic category %q", text)
	}
	return nil
}

// Code returns the foundation error code for the category
func (c Category) Code() mdwerror.Code {
	switch c {
	case CategoryLexical:
		return mdwerror.CodeVMELLexical
	case CategorySyntax:
		return mdwerror.CodeVMELSyntax
	default:
		return mdwerror.CodeVMELRuntime
	}
}

// ID names a message template in the catalogs
type ID string

// Lexical message ids
const (
	LexUnterminatedString    ID = "lexical.unterminated_string"
	LexUnterminatedMixString ID = "lexical.unterminated_mixstring"
	LexIllegalVariable       ID = "lexical.illegal_variable"
	LexMalformedGroup        ID = "lexical.malformed_group"
	LexUnknownToken          ID = "lexical.unknown_token"
)

// Syntax message ids
const (
	SynUnexpectedToken  ID = "syntax.unexpected_token"
	SynNakedDeclaration ID = "syntax.naked_declaration"
	SynDuplicateGroup   ID = "syntax.duplicate_group"
	SynEmptyGroup       ID = "syntax.empty_group"
	SynMissingBracket   ID = "syntax.missing_bracket"
	SynMissingParen     ID = "syntax.missing_paren"
	SynInvalidOperand   ID = "syntax.invalid_operand"
	SynMissingArgument  ID = "syntax.missing_argument"
	SynNameConflict     ID = "syntax.name_conflict"
	SynNestingTooDeep   ID = "syntax.nesting_too_deep"
)

// Runtime message ids
const (
	RunUndefinedVariable ID = "runtime.undefined_variable"
	RunDivisionByZero    ID = "runtime.division_by_zero"
	RunNotANumber        ID = "runtime.not_a_number"
	RunInvalidOperand    ID = "runtime.invalid_operand"
	RunIntegerOverflow   ID = "runtime.integer_overflow"
)

// Category derives the category from the id prefix
func (id ID) Category() Category {
	switch {
	case strings.HasPrefix(string(id), "lexical."):
		return CategoryLexical
	case strings.HasPrefix(string(id), "syntax."):
		return CategorySyntax
	default:
		return CategoryRuntime
	}
}

// Diagnostic is one reported problem: a message id, the offending text and
// the source line
type Diagnostic struct {
	Category Category `json:"category"`
	ID       ID       `json:"id"`
	Text     string   `json:"text"`
	Line     int      `json:"line"`
}

// New builds a diagnostic with the category taken from id
func New(id ID, text string, line int) Diagnostic {
	return Diagnostic{Category: id.Category(), ID: id, Text: text, Line: line}
}

// String returns the catalog independent form used in logs and dumps
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: '%s' on line %d", d.ID, d.Text, d.Line)
}
