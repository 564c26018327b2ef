// ============================================================================
// vmel - Script Engine
// ============================================================================
//
// Package:     theme
// Description: Colors and styles shared by the REPL and the CLI output
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

// Color Palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted   = lipgloss.Color("#6B7280") // Gray

	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800
	ColorText    = lipgloss.Color("#F8FAFC") // Slate 50
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	EchoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	OutputStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Diagnostic styles per category
var (
	LexicalStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	SyntaxStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	RuntimeStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)
)

// Symbol table styles
var (
	SymbolNameStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	SymbolKindStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// CategoryStyle returns the label style for a diagnostic category
func CategoryStyle(c diag.Category) lipgloss.Style {
	switch c {
	case diag.CategoryLexical:
		return LexicalStyle
	case diag.CategorySyntax:
		return SyntaxStyle
	default:
		return RuntimeStyle
	}
}

// RenderDiagnostic renders a rendered message with its category label
func RenderDiagnostic(d diag.Diagnostic, message string) string {
	label := CategoryStyle(d.Category).Render(fmt.Sprintf("[%s]", d.Category))
	return label + " " + ErrorStyle.Render(message)
}

// RenderSymbol renders one symbol table row
func RenderSymbol(sym symtab.Symbol) string {
	var b strings.Builder
	b.WriteString(SymbolNameStyle.Render(sym.Name))
	b.WriteString(" ")
	b.WriteString(SymbolKindStyle.Render(fmt.Sprintf("(%s, line %d)", sym.Kind, sym.Line)))
	if sym.HasValue {
		b.WriteString(" = ")
		b.WriteString(OutputStyle.Render(sym.Value))
	}
	return b.String()
}

// RenderKeyHint renders a key binding hint
func RenderKeyHint(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
