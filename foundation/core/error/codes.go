// File: codes.go
// Title: Error Code Definitions
// Description: Defines the structured error codes used across the vmel
//              foundation and application, with category, severity and
//              HTTP status mappings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard error codes
// - 2026-10-18 v0.2.0: Added VMEL_* language codes, removed unused domains

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"
	CodeCanceled     Code = "CANCELED"

	// Storage codes
	CodeDatabaseError  Code = "DATABASE_ERROR"
	CodeDuplicateEntry Code = "DUPLICATE_ENTRY"

	// Operation codes
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeQuotaExceeded    Code = "QUOTA_EXCEEDED"

	// Language codes
	CodeVMELLexical Code = "VMEL_LEXICAL"
	CodeVMELSyntax  Code = "VMEL_SYNTAX"
	CodeVMELRuntime Code = "VMEL_RUNTIME"

	// Configuration codes
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout, CodeCanceled,
		CodeDatabaseError, CodeDuplicateEntry,
		CodeInvalidOperation, CodeQuotaExceeded,
		CodeVMELLexical, CodeVMELSyntax, CodeVMELRuntime,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDatabaseError, CodeDuplicateEntry:
		return "storage"
	case CodeInvalidOperation, CodeQuotaExceeded:
		return "operation"
	case CodeVMELLexical, CodeVMELSyntax, CodeVMELRuntime:
		return "language"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// HTTPStatus returns the appropriate HTTP status code for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return 404
	case CodeInvalidInput, CodeVMELLexical, CodeVMELSyntax, CodeInvalidConfig:
		return 400
	case CodeDuplicateEntry, CodeInvalidOperation:
		return 409
	case CodeQuotaExceeded:
		return 429
	case CodeTimeout:
		return 408
	case CodeCanceled:
		return 499
	case CodeVMELRuntime:
		return 422
	case CodeDatabaseError:
		return 503
	default:
		return 500
	}
}
