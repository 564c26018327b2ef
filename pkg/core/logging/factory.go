// ============================================================================
// vmel - Script Engine
// ============================================================================
//
// Package:     logging
// Description: Factory functions that build foundation loggers from config
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service or command name
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: json, text, console or logfmt (default: text)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs, e.g. a log file
	AdditionalOutputs []io.Writer

	// Record file:line of the caller
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// NewLogger creates a foundation logger. Unknown level or format names
// fall back to info and text.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		level = mdwlog.LevelInfo
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatText
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// Install creates a logger and makes it the process default, so that
// engine components without an explicit logger use it
func Install(cfg LoggerConfig) *mdwlog.Logger {
	logger := NewLogger(cfg)
	mdwlog.SetDefault(logger)
	return logger
}
