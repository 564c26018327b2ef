// File: interpolate.go
// Title: vmel Mix String Interpolation
// Description: Replaces $name placeholders in mix strings with variable
//              values using in-place buffer replacement.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package executor

import (
	"github.com/msto63/vmel/foundation/vmel/parser"
)

// interpolate expands the placeholders of text. Undefined placeholders are
// reported and stay in the result.
func (s *runState) interpolate(text string, line int) string {
	s.scratch.Set(text)
	cursor := 0

	for _, name := range Placeholders(text) {
		placeholder := "$" + name

		value, err := s.resolve(name, line)
		if err != nil {
			s.fail(err)
			if idx := s.scratch.IndexFrom(cursor, placeholder); idx >= 0 {
				cursor = idx + len(placeholder)
			}
			continue
		}

		idx, err := s.scratch.ReplaceFirstFrom(cursor, placeholder, value)
		if err != nil {
			continue
		}
		cursor = idx + len(value)
	}
	return s.scratch.String()
}

// Placeholders returns the variable names referenced by $name runs in text,
// in order of appearance. A '$' not followed by a valid name is plain text.
func Placeholders(text string) []string {
	var names []string
	for i := 0; i < len(text); {
		if text[i] != '$' {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && parser.IsNameChar(text[j]) {
			j++
		}
		if name := text[i+1 : j]; parser.IsValidName(name) {
			names = append(names, name)
		}
		i = j
	}
	return names
}
