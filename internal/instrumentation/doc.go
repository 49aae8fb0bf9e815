// Package instrumentation wires OpenTelemetry metrics and tracing into the
// gdocs CLI and MCP server, with Prometheus, OTLP, and stdout exporters.
//
// # Metrics
//
// Docs batch updates:
//   - docs_batch_updates_total: batchUpdate calls by status
//   - docs_batch_update_requests: requests per batchUpdate call
//   - docs_batch_update_duration_seconds: batchUpdate call durations
//
// Google API calls:
//   - google_api_operations_total: operations by service, operation, status
//   - google_api_operation_duration_seconds: operation durations
//
// OAuth:
//   - oauth_auth_total: authentication events by result
//   - oauth_token_refresh_total: token refresh attempts by result
//
// MCP tools:
//   - mcp_tool_invocations_total: invocations by tool name and status
//   - mcp_tool_duration_seconds: execution durations
//
// # Tracing
//
// Spans cover MCP tool invocations (tool.<name>), Google API calls
// (google.<service>.<operation>), and OAuth token operations.
//
// # Configuration
//
// Environment variables:
//   - INSTRUMENTATION_ENABLED: enable/disable (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, or stdout (default: prometheus)
//   - TRACING_EXPORTER: otlp, stdout, or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: sampling rate 0.0-1.0 (default: 0.1)
//   - OTEL_SERVICE_NAME: service name (default: gdocs)
//
// # Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "gdocs",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordBatchUpdate(ctx, len(requests), "success", time.Since(start))
//	recorder.RecordToolInvocation(ctx, "docs_create_from_markdown", "success", time.Since(start))
package instrumentation
