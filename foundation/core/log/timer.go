// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it with
//              optional checkpoints. Used to time pipeline stages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-18 v0.2.0: Checkpoints are kept and reported on Stop

package log

import (
	"time"
)

// Checkpoint is a named point in time recorded by a Timer
type Checkpoint struct {
	Name    string
	Elapsed time.Duration
}

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger      *Logger
	operation   string
	startTime   time.Time
	fields      Fields
	level       Level
	checkpoints []Checkpoint
	stopped     bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Checkpoint records an intermediate point and logs it at trace level
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	if t.stopped {
		return
	}
	elapsed := t.Elapsed()
	t.checkpoints = append(t.checkpoints, Checkpoint{Name: name, Elapsed: elapsed})

	if t.logger != nil {
		f := Fields{
			"operation":   t.operation,
			"checkpoint":  name,
			"duration_ms": float64(elapsed.Nanoseconds()) / 1e6,
		}
		for _, set := range fields {
			f = f.Merge(set)
		}
		t.logger.Trace(t.operation+" checkpoint", f)
	}
}

// Checkpoints returns the recorded checkpoints in order
func (t *Timer) Checkpoints() []Checkpoint {
	result := make([]Checkpoint, len(t.checkpoints))
	copy(result, t.checkpoints)
	return result
}

// Stop stops the timer and logs the elapsed time. A second call returns 0.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil, nil)
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	if err == nil {
		return t.Stop()
	}
	return t.finish(LevelError, t.operation+" failed", err, nil)
}

// StopWithResult stops the timer and logs the outcome
func (t *Timer) StopWithResult(success bool, result interface{}) time.Duration {
	level := t.level
	message := t.operation + " completed"
	if !success {
		level = LevelWarn
		message = t.operation + " completed unsuccessfully"
	}
	return t.finish(level, message, nil, Fields{"success": success, "result": result})
}

// Cancel stops the timer without logging
func (t *Timer) Cancel() {
	t.stopped = true
}

// IsRunning reports whether the timer has not been stopped
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) finish(level Level, message string, err error, extra Fields) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed := t.Elapsed()
	t.stopped = true

	if t.logger == nil {
		return elapsed
	}

	fields := t.fields.Merge(extra)
	fields["operation"] = t.operation
	fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	if len(t.checkpoints) > 0 {
		names := make([]string, len(t.checkpoints))
		for i, cp := range t.checkpoints {
			names[i] = cp.Name
		}
		fields["checkpoints"] = names
	}

	t.logger.log(level, message, err, fields)
	return elapsed
}
