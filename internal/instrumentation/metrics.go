package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrTool      = "tool"
	attrAccount   = "account"
	attrResult    = "result"
)

// Histogram bucket boundaries, in seconds, sized for Google API latency.
var durationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0}

// Metrics records the telemetry this system emits: Docs batchUpdate calls,
// Google API operations and MCP tool invocations. A zero Metrics drops
// every recording, which is what a disabled provider hands out.
type Metrics struct {
	batchUpdatesTotal   metric.Int64Counter
	batchUpdateRequests metric.Int64Histogram
	batchUpdateDuration metric.Float64Histogram

	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	// detailedLabels admits high-cardinality labels such as account names.
	detailedLabels bool
}

// NewMetrics registers all instruments on the meter.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{detailedLabels: detailedLabels}

	// Instrument constructors share an error accumulator so the happy
	// path reads as a flat list.
	var err error
	counter := func(name, description, unit string) metric.Int64Counter {
		if err != nil {
			return nil
		}
		c, cerr := meter.Int64Counter(name,
			metric.WithDescription(description),
			metric.WithUnit(unit))
		if cerr != nil {
			err = fmt.Errorf("failed to create %s counter: %w", name, cerr)
		}
		return c
	}
	durations := func(name, description string) metric.Float64Histogram {
		if err != nil {
			return nil
		}
		h, herr := meter.Float64Histogram(name,
			metric.WithDescription(description),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(durationBuckets...))
		if herr != nil {
			err = fmt.Errorf("failed to create %s histogram: %w", name, herr)
		}
		return h
	}
	sizes := func(name, description, unit string, bounds ...float64) metric.Int64Histogram {
		if err != nil {
			return nil
		}
		h, herr := meter.Int64Histogram(name,
			metric.WithDescription(description),
			metric.WithUnit(unit),
			metric.WithExplicitBucketBoundaries(bounds...))
		if herr != nil {
			err = fmt.Errorf("failed to create %s histogram: %w", name, herr)
		}
		return h
	}

	m.batchUpdatesTotal = counter("docs_batch_updates_total",
		"Total number of Docs batchUpdate calls", "{batch}")
	m.batchUpdateRequests = sizes("docs_batch_update_requests",
		"Number of requests per Docs batchUpdate call", "{request}",
		1, 5, 10, 20, 35, 50, 100)
	m.batchUpdateDuration = durations("docs_batch_update_duration_seconds",
		"Docs batchUpdate call duration in seconds")

	m.apiOperationsTotal = counter("google_api_operations_total",
		"Total number of Google API operations", "{operation}")
	m.apiOperationDuration = durations("google_api_operation_duration_seconds",
		"Google API operation duration in seconds")

	m.toolInvocationsTotal = counter("mcp_tool_invocations_total",
		"Total number of MCP tool invocations", "{invocation}")
	m.toolDuration = durations("mcp_tool_duration_seconds",
		"MCP tool execution duration in seconds")

	m.oauthAuthTotal = counter("oauth_auth_total",
		"Total number of OAuth authentication attempts", "{attempt}")
	m.oauthTokenRefreshTotal = counter("oauth_token_refresh_total",
		"Total number of OAuth token refresh attempts", "{attempt}")

	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordBatchUpdate records one Docs batchUpdate call: how many requests
// it carried, whether it succeeded, and how long it took.
func (m *Metrics) RecordBatchUpdate(ctx context.Context, requests int, status string, duration time.Duration) {
	if m.batchUpdatesTotal == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.batchUpdatesTotal.Add(ctx, 1, attrs)
	m.batchUpdateRequests.Record(ctx, int64(requests), attrs)
	m.batchUpdateDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGoogleAPIOperation records one Google API call, attributed to a
// service ("docs", "drive") and operation ("list", "create", "share", ...).
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.apiOperationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.apiOperationsTotal.Add(ctx, 1, attrs)
	m.apiOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordOAuthAuth records one OAuth authentication attempt. The result is
// OAuthResultSuccess or OAuthResultFailure.
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m.oauthAuthTotal == nil {
		return
	}
	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records one token refresh attempt. The result is
// OAuthResultSuccess, OAuthResultFailure or OAuthResultExpired.
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordToolInvocation records one MCP tool invocation.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	m.RecordToolInvocationWithAccount(ctx, toolName, status, "", duration)
}

// RecordToolInvocationWithAccount is RecordToolInvocation with the invoking
// account attached. The account label is recorded only when detailed labels
// are enabled, since account names are unbounded.
func (m *Metrics) RecordToolInvocationWithAccount(ctx context.Context, toolName, status, account string, duration time.Duration) {
	if m.toolInvocationsTotal == nil {
		return
	}

	kvs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && account != "" {
		kvs = append(kvs, attribute.String(attrAccount, account))
	}

	attrs := metric.WithAttributes(kvs...)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}
