// File: locale.go
// Title: Locale Helpers
// Description: Normalization of locale identifiers such as de_DE or en-us.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with Accept-Language parsing
// - 2026-10-18 v0.2.0: Reduced to normalization and splitting

package i18n

import (
	"strings"

	mdwstringx "github.com/msto63/vmel/foundation/utils/stringx"
)

// NormalizeLocale normalizes a locale string to the form "de" or "de-DE".
// Invalid input yields "".
func NormalizeLocale(locale string) string {
	if mdwstringx.IsBlank(locale) {
		return ""
	}

	locale = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
	parts := strings.Split(locale, "-")

	language := parts[0]
	if len(language) != 2 && len(language) != 3 {
		return ""
	}
	for _, r := range language {
		if r < 'a' || r > 'z' {
			return ""
		}
	}

	if len(parts) > 1 && len(parts[1]) == 2 {
		return language + "-" + strings.ToUpper(parts[1])
	}
	return language
}

// SplitLocale splits a locale into language and country parts
func SplitLocale(locale string) (language, country string) {
	normalized := NormalizeLocale(locale)
	if normalized == "" {
		return "", ""
	}
	parts := strings.SplitN(normalized, "-", 2)
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
