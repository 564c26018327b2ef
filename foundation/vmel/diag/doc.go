// Package diag collects and renders vmel diagnostics.
//
// Package: diag
// Title: vmel Diagnostics
// Description: Lexical, syntax and runtime diagnostics are data, not Go
//              errors. A List holds them up to a fixed capacity and counts
//              what it had to drop. A Renderer turns them into localized
//              messages from the embedded catalogs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
package diag
