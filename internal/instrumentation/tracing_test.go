package instrumentation

import (
	"context"
	"errors"
	"testing"
)

// setupTracing installs a provider so the global tracer is live, and
// tears it down with the test.
func setupTracing(t *testing.T) context.Context {
	t.Helper()
	ctx := context.Background()
	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return ctx
}

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("drive_list_files").
		WithService("drive").
		WithOperation("list").
		WithAccount("work").
		WithResource("folder", "12345").
		WithReadOnly(true).
		Build()

	got := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		got[string(attr.Key)] = attr.Value.AsInterface()
	}

	want := map[string]interface{}{
		SpanAttrTool:         "drive_list_files",
		SpanAttrService:      "drive",
		SpanAttrOperation:    "list",
		SpanAttrAccount:      "work",
		SpanAttrResourceType: "folder",
		SpanAttrResourceID:   "12345",
		SpanAttrReadOnly:     true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(got), len(want))
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("attribute %s = %v, want %v", key, got[key], value)
		}
	}
}

func TestSpanAttributeBuilderSkipsEmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("test_tool").
		WithAccount("").
		WithResource("", "").
		Build()

	if len(attrs) != 1 {
		t.Errorf("got %d attributes, want 1 (tool only)", len(attrs))
	}
}

func TestStartSpanVariants(t *testing.T) {
	ctx := setupTracing(t)

	spanCtx, span := StartSpan(ctx, "test-span")
	if spanCtx == nil || span == nil {
		t.Fatal("StartSpan returned nil context or span")
	}
	span.End()

	spanCtx, span = StartToolSpan(ctx, "docs_create_from_markdown")
	if spanCtx == nil || span == nil {
		t.Fatal("StartToolSpan returned nil context or span")
	}
	span.End()

	spanCtx, span = StartGoogleAPISpan(ctx, "drive", "list")
	if spanCtx == nil || span == nil {
		t.Fatal("StartGoogleAPISpan returned nil context or span")
	}
	span.End()
}

func TestSpanStatusHelpers(t *testing.T) {
	ctx := setupTracing(t)

	_, span := StartSpan(ctx, "test-span")
	SetSpanError(span, errors.New("test error"))
	SetSpanError(span, nil) // nil must be a no-op
	SetSpanSuccess(span)
	AddSpanEvent(span, "retrying")
	span.End()
}

func TestSpanIdentityWithoutSpan(t *testing.T) {
	ctx := context.Background()
	if got := GetTraceID(ctx); got != "" {
		t.Errorf("GetTraceID = %q, want empty without a span", got)
	}
	if got := GetSpanID(ctx); got != "" {
		t.Errorf("GetSpanID = %q, want empty without a span", got)
	}
	if got := SpanContextString(ctx); got != "" {
		t.Errorf("SpanContextString = %q, want empty without a span", got)
	}
}

func TestSpanIdentityWithSpan(t *testing.T) {
	ctx := setupTracing(t)

	spanCtx, span := StartSpan(ctx, "identity-span")
	defer span.End()

	traceID := GetTraceID(spanCtx)
	spanID := GetSpanID(spanCtx)
	if traceID == "" || spanID == "" {
		t.Fatalf("trace/span IDs empty inside a recording span: %q / %q", traceID, spanID)
	}
	want := "trace_id=" + traceID + " span_id=" + spanID
	if got := SpanContextString(spanCtx); got != want {
		t.Errorf("SpanContextString = %q, want %q", got, want)
	}
}
