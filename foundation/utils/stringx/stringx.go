// File: stringx.go
// Title: Core String Utility Functions
// Description: Small string helpers used by the command line and the
//              servers for input checks and display.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Reduced to the helpers in use

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether s is empty or contains only whitespace
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Truncate shortens s to at most maxLen runes including ellipsis
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(ellipsis)[:maxLen])
	}
	runes := []rune(s)
	return string(runes[:maxLen-ellipsisLen]) + ellipsis
}

// FirstLine returns s up to the first line break
func FirstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// FirstNonBlank returns the first argument that is not blank
func FirstNonBlank(values ...string) string {
	for _, v := range values {
		if !IsBlank(v) {
			return v
		}
	}
	return ""
}
