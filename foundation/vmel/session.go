// File: session.go
// Title: vmel Interactive Session
// Description: Incremental execution for interactive use. Each Exec runs
//              one chunk of source against a symbol table and diagnostic
//              list that live as long as the session.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package vmel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/vmel/foundation/core/log"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/symtab"
)

// Session executes source incrementally. Variables and groups declared by
// one Exec are visible to the next.
type Session struct {
	engine  *Engine
	id      uuid.UUID
	symbols *symtab.Table
	errs    *diag.List
	logger  *mdwlog.Logger
	mutex   sync.Mutex
}

// NewSession creates an empty session
func (e *Engine) NewSession() *Session {
	id := uuid.New()
	return &Session{
		engine:  e,
		id:      id,
		symbols: symtab.New(),
		errs:    diag.NewList(e.options.ErrorCapacity),
		logger:  e.logger.WithField("session_id", id.String()),
	}
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Exec runs src against the session state. The result holds the output of
// this call and only the diagnostics it added. A lexical error leaves the
// symbol table untouched.
func (s *Session) Exec(ctx context.Context, src string) (*Result, error) {
	if err := s.engine.checkSource(src, "vmel.Session.Exec"); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := &Result{RunID: uuid.New()}
	start := s.errs.Len()
	dropped := s.errs.Dropped()

	timer := s.logger.WithField("run_id", result.RunID.String()).StartTimer("vmel exec")
	err := s.engine.pipeline(ctx, src, s.symbols, s.errs, result, timer)

	result.Symbols = s.symbols.Symbols()
	result.Diagnostics = s.errs.Since(start)
	result.Dropped = s.errs.Dropped() - dropped
	result.Duration = timer.StopWithError(err)
	return result, err
}

// Symbols returns the session symbols in declaration order
func (s *Session) Symbols() []symtab.Symbol {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.symbols.Symbols()
}

// Diagnostics returns every diagnostic kept by the session
func (s *Session) Diagnostics() []diag.Diagnostic {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.errs.Items()
}

// Dropped returns the number of diagnostics the session could not keep
func (s *Session) Dropped() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.errs.Dropped()
}

// Reset clears symbols and diagnostics
func (s *Session) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.symbols.Reset()
	s.errs.Reset()
	s.logger.Debug("session reset")
}

// Engine returns the engine the session runs on
func (s *Session) Engine() *Engine {
	return s.engine
}
