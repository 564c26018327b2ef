package evalsvc

import (
	"context"
	"errors"
	"time"

	mdwerror "github.com/msto63/vmel/foundation/core/error"
	"github.com/msto63/vmel/foundation/vmel"
	"github.com/msto63/vmel/foundation/vmel/diag"
	"github.com/msto63/vmel/foundation/vmel/executor"
	"github.com/msto63/vmel/foundation/vmel/parser"
	"github.com/msto63/vmel/foundation/vmel/symtab"
	"github.com/msto63/vmel/internal/journal"
	"github.com/msto63/vmel/pkg/core/cache"
	"github.com/msto63/vmel/pkg/core/logging"
)

// Config holds service configuration
type Config struct {
	// RunTimeout bounds a single evaluation, 0 disables it
	RunTimeout time.Duration

	// TokenCacheSize bounds the cached tokenize responses, 0 disables the cache
	TokenCacheSize int

	// TokenCacheTTL limits how long a tokenize response stays cached
	TokenCacheTTL time.Duration
}

// Service evaluates submitted sources with a shared engine and records
// every run in the journal when one is attached
type Service struct {
	engine  *vmel.Engine
	journal journal.Store
	tokens  *cache.Cache[*TokenResponse]
	config  Config
	logger  *logging.Logger
}

// NewService creates a service. store may be nil.
func NewService(engine *vmel.Engine, store journal.Store, cfg Config) (*Service, error) {
	if engine == nil {
		return nil, mdwerror.New("engine is required").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("evalsvc.NewService")
	}
	svc := &Service{
		engine:  engine,
		journal: store,
		config:  cfg,
		logger:  logging.New("evalsvc"),
	}
	if cfg.TokenCacheSize > 0 {
		svc.tokens = cache.New[*TokenResponse](cache.Config{
			MaxItems: cfg.TokenCacheSize,
			TTL:      cfg.TokenCacheTTL,
		})
	}
	return svc, nil
}

// Engine returns the engine used for evaluation
func (s *Service) Engine() *vmel.Engine {
	return s.engine
}

// Journal returns the attached journal or nil
func (s *Service) Journal() journal.Store {
	return s.journal
}

// Diagnostic is a diagnostic together with its rendered message
type Diagnostic struct {
	diag.Diagnostic
	Message string `json:"message"`
}

// Response is the wire form of a run shared by the HTTP, websocket and
// gRPC surfaces
type Response struct {
	RunID       string                `json:"run_id"`
	Text        string                `json:"text"`
	Output      []executor.OutputItem `json:"output"`
	Symbols     []symtab.Symbol       `json:"symbols"`
	Diagnostics []Diagnostic          `json:"diagnostics"`
	Dropped     int                   `json:"dropped"`
	DurationMS  float64               `json:"duration_ms"`
	Canceled    bool                  `json:"canceled,omitempty"`
}

// TokenResponse is the wire form of a tokenization
type TokenResponse struct {
	Tokens     []parser.Token `json:"tokens"`
	Diagnostic *Diagnostic    `json:"diagnostic,omitempty"`
}

// Run evaluates src in a fresh engine run. A run cut short by the run
// timeout or by ctx still returns its partial response with Canceled set;
// the error is only non-nil when no run took place.
func (s *Service) Run(ctx context.Context, origin journal.Origin, src string) (*Response, error) {
	if s.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RunTimeout)
		defer cancel()
	}

	result, err := s.engine.Run(ctx, src)
	if result == nil {
		return nil, err
	}

	resp := s.respond(result)
	if err != nil {
		resp.Canceled = true
		s.logger.Warn("run interrupted", "run_id", resp.RunID, "origin", string(origin), "error", err)
	}

	s.record(origin, src, result, resp)
	return resp, nil
}

// Tokenize returns the tokens of src. A lexical error is part of the
// response, not an error. Responses are shared through the token cache and
// must not be modified.
func (s *Service) Tokenize(src string) (*TokenResponse, error) {
	if s.tokens == nil {
		return s.tokenize(src)
	}
	return s.tokens.GetOrSet(cache.Key(src), func() (*TokenResponse, error) {
		return s.tokenize(src)
	})
}

// TokenCacheStats returns the token cache counters, zero without a cache
func (s *Service) TokenCacheStats() cache.Stats {
	if s.tokens == nil {
		return cache.Stats{}
	}
	return s.tokens.Stats()
}

func (s *Service) tokenize(src string) (*TokenResponse, error) {
	tokens, err := s.engine.Tokenize(src)
	resp := &TokenResponse{Tokens: tokens}
	if err == nil {
		return resp, nil
	}

	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) {
		return nil, err
	}
	resp.Diagnostic = &Diagnostic{
		Diagnostic: lexErr.Diagnostic,
		Message:    s.engine.Render(lexErr.Diagnostic),
	}
	return resp, nil
}

func (s *Service) respond(result *vmel.Result) *Response {
	messages := s.engine.Messages(result)
	diagnostics := make([]Diagnostic, len(result.Diagnostics))
	for i, d := range result.Diagnostics {
		diagnostics[i] = Diagnostic{Diagnostic: d, Message: messages[i]}
	}

	return &Response{
		RunID:       result.RunID.String(),
		Text:        result.Text(),
		Output:      result.Output,
		Symbols:     result.Symbols,
		Diagnostics: diagnostics,
		Dropped:     result.Dropped,
		DurationMS:  float64(result.Duration.Nanoseconds()) / 1e6,
	}
}

// record writes the run to the journal. A journal failure is logged and
// does not fail the run.
func (s *Service) record(origin journal.Origin, src string, result *vmel.Result, resp *Response) {
	if s.journal == nil {
		return
	}

	entry := &journal.Entry{
		ID:          resp.RunID,
		Origin:      origin,
		Source:      src,
		Output:      resp.Text,
		Diagnostics: result.Diagnostics,
		ErrorCount:  len(result.Diagnostics) + result.Dropped,
		Dropped:     result.Dropped,
		Duration:    result.Duration,
	}

	// the caller's context may already be done
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Error("failed to record run", "run_id", resp.RunID, "error", err)
	}
}

// Ping checks the journal, if any
func (s *Service) Ping(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Ping(ctx)
}
