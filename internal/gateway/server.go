package gateway

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/pkg/core/health"
	"github.com/msto63/vmel/pkg/core/logging"
)

// Config holds gateway configuration
type Config struct {
	Host           string
	HTTPPort       int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DefaultConfig returns default gateway configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		HTTPPort:     8480,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Server is the HTTP gateway in front of the evaluation service
type Server struct {
	httpServer *http.Server
	health     *health.Registry
	logger     *logging.Logger
	config     Config
	listener   net.Listener
}

// New creates a gateway server. registry receives the checks of the
// caller and is served on /healthz.
func New(cfg Config, svc *evalsvc.Service, registry *health.Registry) *Server {
	logger := logging.New("gateway-server")

	mux := http.NewServeMux()
	NewHandler(svc, registry).Register(mux)
	mux.Handle("GET /api/v1/ws", NewWebSocketHandler(svc, cfg.AllowedOrigins))

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.HTTPPort),
			Handler:      loggingMiddleware(logger, mux),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		health: registry,
		logger: logger,
		config: cfg,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the websocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

// Unwrap returns the original writer for http.ResponseController
func (w *responseWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// StartAsync listens on the configured address and serves in a goroutine
func (s *Server) StartAsync() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener

	s.logger.Info("Starting vmel gateway", "address", listener.Addr().String())
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping vmel gateway")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}
