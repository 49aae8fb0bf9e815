package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/docpush/gdocs/internal/docs"
	"github.com/docpush/gdocs/internal/drive"
	"github.com/docpush/gdocs/internal/instrumentation"
	"github.com/docpush/gdocs/internal/logging"
)

// ServerContext holds the shared state of the MCP server: per-account
// Docs and Drive clients plus the instrumentation handed to them.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.RWMutex
	docsClients  map[string]*docs.Client
	driveClients map[string]*drive.Client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	logger       *slog.Logger
	shutdown     bool
}

// Option configures a ServerContext.
type Option func(*ServerContext)

// WithMetrics sets the metrics recorder shared by all clients created
// through this context.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(sc *ServerContext) { sc.metrics = m }
}

// WithAuditLogger sets the audit logger used for tool invocation logging.
func WithAuditLogger(al *instrumentation.AuditLogger) Option {
	return func(sc *ServerContext) { sc.auditLogger = al }
}

// WithLogger sets the logger used by the context and its clients.
func WithLogger(logger *slog.Logger) Option {
	return func(sc *ServerContext) { sc.logger = logger }
}

// NewServerContext creates a server context. A Docs client for the
// default account is created eagerly when its token is already stored;
// everything else is built on first use.
func NewServerContext(ctx context.Context, opts ...Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		docsClients:  make(map[string]*docs.Client),
		driveClients: make(map[string]*drive.Client),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}

	if docs.HasToken() {
		client, err := docs.NewClient(shutdownCtx, docs.WithLogger(sc.logger), docs.WithMetrics(sc.metrics))
		if err != nil {
			sc.logger.Warn("failed to create Docs client for default account", logging.Err(err))
		} else {
			sc.docsClients["default"] = client
		}
	}

	return sc, nil
}

// Context returns the context cancelled at shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Metrics returns the metrics recorder. May be nil when instrumentation is disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger. May be nil when audit logging is disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// Logger returns the context logger.
func (sc *ServerContext) Logger() *slog.Logger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.logger
}

// DocsClientForAccount returns the cached Docs client for an account,
// building one when the account's token is stored. Accounts without a
// token yield nil; the tools surface that as an auth hint.
func (sc *ServerContext) DocsClientForAccount(account string) *docs.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.docsClients[account]; ok {
		return client
	}
	if !docs.HasTokenForAccount(account) {
		return nil
	}

	client, err := docs.NewClientForAccount(sc.ctx, account, docs.WithLogger(sc.logger), docs.WithMetrics(sc.metrics))
	if err != nil {
		sc.logger.Warn("failed to create Docs client", logging.Account(account), logging.Err(err))
		return nil
	}
	sc.docsClients[account] = client
	return client
}

// DocsClient returns the Docs client for the default account.
func (sc *ServerContext) DocsClient() *docs.Client {
	return sc.DocsClientForAccount("default")
}

// SetDocsClientForAccount replaces the cached Docs client of an account.
func (sc *ServerContext) SetDocsClientForAccount(account string, client *docs.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.docsClients[account] = client
}

// SetDocsClient replaces the Docs client of the default account.
func (sc *ServerContext) SetDocsClient(client *docs.Client) {
	sc.SetDocsClientForAccount("default", client)
}

// DriveClientForAccount returns the cached Drive client for an account,
// building one when the account's token is stored. Accounts without a
// token yield nil.
func (sc *ServerContext) DriveClientForAccount(account string) *drive.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if client, ok := sc.driveClients[account]; ok {
		return client
	}
	if !drive.HasTokenForAccount(account) {
		return nil
	}

	client, err := drive.NewClientForAccount(sc.ctx, account)
	if err != nil {
		sc.logger.Warn("failed to create Drive client", logging.Account(account), logging.Err(err))
		return nil
	}
	sc.driveClients[account] = client
	return client
}

// DriveClient returns the Drive client for the default account.
func (sc *ServerContext) DriveClient() *drive.Client {
	return sc.DriveClientForAccount("default")
}

// SetDriveClientForAccount replaces the cached Drive client of an account.
func (sc *ServerContext) SetDriveClientForAccount(account string, client *drive.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.driveClients[account] = client
}

// SetDriveClient replaces the Drive client of the default account.
func (sc *ServerContext) SetDriveClient(client *drive.Client) {
	sc.SetDriveClientForAccount("default", client)
}

// IsShutdown reports whether Shutdown has run.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.shutdown {
		sc.shutdown = true
		sc.cancel()
	}
	return nil
}
