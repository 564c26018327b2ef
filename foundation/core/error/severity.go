// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors and the default severity
//              derived from an error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with four severity levels
// - 2026-10-18 v0.2.0: Severity mapping for language codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in user input, e.g. a script diagnostic
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed operation that the caller can retry
	SeverityMedium

	// SeverityHigh indicates a broken dependency such as the journal database
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeDatabaseError, CodeConfigError, CodeMissingConfig:
		return SeverityHigh
	case CodeInvalidInput, CodeNotFound, CodeInvalidConfig,
		CodeVMELLexical, CodeVMELSyntax, CodeVMELRuntime:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
