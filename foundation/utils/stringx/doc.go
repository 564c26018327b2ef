// Package stringx provides a growable string buffer and a few string helpers.
//
// Package: stringx
// Title: String Buffer and Helpers
// Description: Buffer is an amortized mutable string with in-place
//              replacement. The engine uses it to build lexemes and to
//              expand interpolated strings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Added Buffer, removed case and random helpers
//
// Usage:
//
//	buf := stringx.NewBuffer("Hello $name")
//	if err := buf.ReplaceFirst("$name", "Sam"); err != nil {
//		// needle missing
//	}
//	fmt.Println(buf.String()) // Hello Sam
package stringx
