// Package log provides structured logging for the vmel foundation.
//
// Package: log
// Title: vmel Structured Logging
// Description: Structured logging with contextual fields, levels, several
//              output formats, timers for pipeline stages and integration
//              with the foundation error type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Removed async mode and user context, added logfmt field ordering
//
// Usage:
//
//	import mdwlog "github.com/msto63/vmel/foundation/core/log"
//
//	logger := mdwlog.GetDefault().WithField("component", "vmel-parser")
//	logger.Debug("parse started", mdwlog.Fields{"tokens": 42})
//
//	timer := logger.StartTimer("vmel_run")
//	timer.Checkpoint("lexed")
//	timer.Stop()
package log
