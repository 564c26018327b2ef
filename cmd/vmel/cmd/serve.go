package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/vmel/internal/evalsvc"
	"github.com/msto63/vmel/internal/gateway"
	"github.com/msto63/vmel/internal/journal"
	coregrpc "github.com/msto63/vmel/pkg/core/grpc"
	"github.com/msto63/vmel/pkg/core/health"
	"github.com/msto63/vmel/pkg/core/logging"
	"github.com/msto63/vmel/pkg/core/version"
)

var (
	serveHost       string
	serveHTTPPort   int
	serveGRPCPort   int
	serveReflection bool
	serveOrigins    []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway and the gRPC evaluator",
	Long: `Serves remote evaluation. Every request runs in a fresh engine run.

Endpoints:
  POST /api/v1/run        run {"source": "..."}
  POST /api/v1/tokenize   tokens of {"source": "..."}
  GET  /api/v1/runs       journal entries (with --journal)
  GET  /api/v1/runs/{id}  one journal entry
  GET  /api/v1/ws         websocket (run, tokenize, ping)
  GET  /healthz           health report
  gRPC vmel.v1.Evaluator  Run, Tokenize

Examples:
  vmel serve
  vmel serve --journal --http-port 8080 --grpc-port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP gateway port (default from config)")
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC evaluator port (default from config)")
	serveCmd.Flags().BoolVar(&serveReflection, "reflection", false, "enable gRPC server reflection")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allowed-origin", nil, "websocket origins to accept (default: same host)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Server
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if serveHTTPPort != 0 {
		cfg.HTTPPort = serveHTTPPort
	}
	if serveGRPCPort != 0 {
		cfg.GRPCPort = serveGRPCPort
	}
	if serveReflection {
		cfg.EnableReflection = true
	}

	logger := logging.New("vmel-serve")
	out := cmd.OutOrStdout()

	engine, err := newEngine()
	if err != nil {
		return err
	}
	store, err := openJournal()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		pruneJournal(store, logger)
	}

	svc, err := evalsvc.NewService(engine, store, evalsvc.Config{
		RunTimeout:     cfg.RunTimeout.Duration,
		TokenCacheSize: cfg.TokenCacheSize,
		TokenCacheTTL:  cfg.TokenCacheTTL.Duration,
	})
	if err != nil {
		return err
	}

	// gRPC evaluator
	grpcCfg := coregrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.GRPCPort
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcServer := coregrpc.NewServer(grpcCfg)
	evalsvc.RegisterEvaluatorServer(grpcServer.GRPCServer(), evalsvc.NewGRPCServer(svc))
	if err := grpcServer.StartAsync(); err != nil {
		return err
	}
	grpcServer.SetServing(evalsvc.ServiceName, true)

	// Health checks served by the gateway
	registry := health.NewRegistry("vmel", version.Version)
	registry.Register(health.ErrorCheck("evaluator", svc.Ping))
	registry.Register(health.TCPCheck("grpc", grpcServer.Address(), 2*time.Second))
	if store != nil {
		registry.Register(health.ErrorCheck("journal", store.Ping))
	}
	registry.RegisterFunc("token_cache", func(ctx context.Context) health.CheckResult {
		stats := svc.TokenCacheStats()
		return health.CheckResult{
			Status: health.StatusHealthy,
			Details: map[string]interface{}{
				"size":     stats.Size,
				"hits":     stats.Hits,
				"misses":   stats.Misses,
				"hit_rate": stats.HitRate,
			},
		}
	})

	httpServer := gateway.New(gateway.Config{
		Host:           cfg.Host,
		HTTPPort:       cfg.HTTPPort,
		ReadTimeout:    cfg.ReadTimeout.Duration,
		WriteTimeout:   cfg.WriteTimeout.Duration,
		AllowedOrigins: serveOrigins,
	}, svc, registry)
	if err := httpServer.StartAsync(); err != nil {
		grpcServer.Stop()
		return err
	}

	fmt.Fprintln(out, "vmel serve")
	fmt.Fprintln(out, "==========")
	fmt.Fprintf(out, "  [+] HTTP gateway  http://%s\n", httpServer.Address())
	fmt.Fprintf(out, "  [+] gRPC evaluator %s\n", grpcServer.Address())
	if store != nil {
		fmt.Fprintf(out, "  [+] Journal       %s\n", appConfig.Journal.Path)
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	<-sigCh

	fmt.Fprintln(out, "\nStopping...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		logger.Warn("HTTP gateway shutdown incomplete", "error", err)
	}
	grpcServer.StopWithTimeout(ctx)
	return nil
}

// pruneJournal drops entries older than the configured retention
func pruneJournal(store journal.Store, logger *logging.Logger) {
	retention := appConfig.Journal.Retention.Duration
	if retention <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	removed, err := store.Prune(ctx, retention)
	if err != nil {
		logger.Warn("journal prune failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("journal pruned", "removed", removed, "retention", retention.String())
	}
}
