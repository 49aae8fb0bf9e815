// Package server provides the MCP server context, health checks, and the
// dedicated Prometheus metrics server for the gdocs application.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and
// caching. It supports multiple accounts: clients are created on first use
// for any account that has a stored OAuth token.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, isolated
// from the MCP stdio transport. HealthChecker provides liveness and
// readiness endpoints suitable for Kubernetes probes; the readiness check
// reports failure once the server context begins shutting down.
package server
