// Package error provides structured error handling for the vmel foundation.
//
// Package: error
// Title: vmel Error Handling Framework
// Description: Structured errors with codes, severities, details and a
//              captured stack. Used by the engine for API-level failures
//              (oversized input, unknown symbols, storage problems) and by
//              the application layer to map failures to HTTP and gRPC codes.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Code set reduced to the engine and application domains
//
// Usage:
//
//	import mdwerror "github.com/msto63/vmel/foundation/core/error"
//
//	err := mdwerror.New("group already declared").
//		WithCode(mdwerror.CodeDuplicateEntry).
//		WithDetail("name", "deploy")
//
//	if mdwerror.HasCode(err, mdwerror.CodeDuplicateEntry) {
//		// handle duplicates
//	}
//
// Language diagnostics (lexical, syntax and runtime problems in a script)
// are not Go errors. They live in the diag package of the engine.
package error
