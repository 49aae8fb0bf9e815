package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/docpush/gdocs/internal/instrumentation"
	"github.com/docpush/gdocs/internal/resources"
	"github.com/docpush/gdocs/internal/server"
	"github.com/docpush/gdocs/internal/tools/docs_tools"
	"github.com/docpush/gdocs/internal/tools/drive_tools"
	"github.com/docpush/gdocs/internal/tools/google_tools"
)

// MetricsConfig holds the metrics server settings from flags.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// applyEnv fills in settings from METRICS_ENABLED and METRICS_ADDR when
// the flags were left at their defaults.
func (mc *MetricsConfig) applyEnv() {
	if !mc.Enabled && os.Getenv("METRICS_ENABLED") == "true" {
		mc.Enabled = true
	}
	if mc.Addr == "" || mc.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			mc.Addr = addr
		}
	}
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		transport      string
		yolo           bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide Google Docs
and Drive tools for AI assistants.

The server communicates over stdio. Prometheus metrics and health
endpoints are served on a dedicated port while the server runs.

Safety Mode:
  By default, the server operates in read-only mode, providing only safe
  operations. Use --yolo to enable write operations (document creation,
  file deletion, sharing, etc.)

Authentication:
  Tools use the OAuth tokens stored by 'gdocs auth'. Authorize each
  account you want the server to act on before starting it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(transport, debugMode, yolo, MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			})
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (document creation, file deletion, sharing, etc.). Default is read-only mode.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport string, debugMode bool, yolo bool, metricsConfig MetricsConfig) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logs go to stderr, so this is safe alongside the stdio transport.
	if debugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	metricsConfig.applyEnv()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Warn("error during instrumentation shutdown", "error", err)
		}
	}()

	var contextOpts []server.Option
	if provider.Enabled() {
		contextOpts = append(contextOpts,
			server.WithMetrics(provider.Metrics()),
			server.WithAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging)))
	}
	serverContext, err := server.NewServerContext(shutdownCtx, contextOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// The metrics server shuts down before the server context it reports
	// on.
	var metricsServer *server.MetricsServer
	defer func() {
		if metricsServer != nil {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			if err := metricsServer.Shutdown(stopCtx); err != nil {
				slog.Warn("error during metrics server shutdown", "error", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			slog.Warn("error during server context shutdown", "error", err)
		}
	}()

	healthChecker := server.NewHealthChecker(serverContext)

	if metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = startMetricsServer(metricsConfig.Addr, provider, healthChecker)
		if err != nil {
			return err
		}
	}

	mcpSrv := mcpserver.NewMCPServer("gdocs", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	readOnly := !yolo
	if readOnly {
		slog.Info("starting in read-only mode, use --yolo to enable write operations")
	} else {
		slog.Info("starting with write operations enabled")
	}

	if err := registerAllTools(mcpSrv, serverContext, readOnly); err != nil {
		return err
	}
	healthChecker.SetReady(true)

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio)", transport)
	}
}

// startMetricsServer starts the metrics HTTP server and blocks until it
// is accepting connections, so a bad listen address fails the command
// instead of surfacing later.
func startMetricsServer(addr string, provider *instrumentation.Provider, healthChecker *server.HealthChecker) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		Enabled:                 true,
		InstrumentationProvider: provider,
		HealthChecker:           healthChecker,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ready:
		slog.Info("metrics server started", "addr", metricsServer.Addr())
		return metricsServer, nil
	case err := <-errCh:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	if err := <-serverDone; err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers the MCP tool groups and document resources.
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	if err := docs_tools.RegisterDocsTools(mcpSrv, ctx, readOnly); err != nil {
		return fmt.Errorf("failed to register Docs tools: %w", err)
	}
	if err := drive_tools.RegisterDriveTools(mcpSrv, ctx, readOnly); err != nil {
		return fmt.Errorf("failed to register Drive tools: %w", err)
	}
	if err := google_tools.RegisterGoogleTools(mcpSrv, ctx); err != nil {
		return fmt.Errorf("failed to register auth tools: %w", err)
	}
	if err := resources.RegisterDocumentResources(mcpSrv, ctx); err != nil {
		return fmt.Errorf("failed to register document resources: %w", err)
	}
	return nil
}
