package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/msto63/vmel/pkg/core/logging"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string
	Port              int
	MaxRecvMsgSize    int
	MaxSendMsgSize    int
	EnableReflection  bool
	KeepaliveInterval time.Duration
	KeepaliveTimeout  time.Duration
}

// DefaultServerConfig returns a default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:              "127.0.0.1",
		Port:              9480,
		MaxRecvMsgSize:    4 * 1024 * 1024, // 4MB, above the engine source limit
		MaxSendMsgSize:    16 * 1024 * 1024,
		EnableReflection:  false,
		KeepaliveInterval: 30 * time.Second,
		KeepaliveTimeout:  10 * time.Second,
	}
}

// Server wraps a gRPC server with interceptors, the standard health
// service and optional reflection
type Server struct {
	server   *grpc.Server
	health   *grpchealth.Server
	config   ServerConfig
	listener net.Listener
	logger   *logging.Logger
}

// NewServer creates a new gRPC server
func NewServer(cfg ServerConfig, opts ...grpc.ServerOption) *Server {
	logger := logging.New("grpc-server")
	interceptorLogger := logging.New("grpc")

	serverOpts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    cfg.KeepaliveInterval,
			Timeout: cfg.KeepaliveTimeout,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		// request id first so that recovery and logging can see it
		grpc.ChainUnaryInterceptor(
			RequestIDInterceptor(),
			RecoveryInterceptor(interceptorLogger),
			LoggingInterceptor(interceptorLogger),
			ErrorInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			StreamRecoveryInterceptor(interceptorLogger),
			StreamLoggingInterceptor(interceptorLogger),
		),
	}
	serverOpts = append(serverOpts, opts...)

	server := grpc.NewServer(serverOpts...)

	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	if cfg.EnableReflection {
		reflection.Register(server)
	}

	return &Server{
		server: server,
		health: hs,
		config: cfg,
		logger: logger,
	}
}

// GRPCServer returns the underlying gRPC server for service registration
func (s *Server) GRPCServer() *grpc.Server {
	return s.server
}

// SetServing updates the health status reported for service. The empty
// name is the overall server status.
func (s *Server) SetServing(service string, serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(service, st)
}

// Serve serves on an existing listener and blocks until the server stops
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("gRPC server listening", "address", listener.Addr().String())
	return s.server.Serve(listener)
}

// Start listens on the configured address and serves until stopped
func (s *Server) Start() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// StartAsync starts the gRPC server in a goroutine
func (s *Server) StartAsync() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}

	s.listener = listener
	s.logger.Info("gRPC server listening", "address", listener.Addr().String())
	go func() {
		if err := s.server.Serve(listener); err != nil {
			// the server may be shutting down
			s.logger.Error("gRPC server error", "error", err)
		}
	}()
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return listener, nil
}

// Stop gracefully stops the gRPC server
func (s *Server) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}

// StopWithTimeout stops the server gracefully, forcing it when ctx ends
func (s *Server) StopWithTimeout(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
	}
}

// Address returns the server address
func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
