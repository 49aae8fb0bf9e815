package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docpush/gdocs/internal/instrumentation"
)

func newTestProvider(t *testing.T, enabled bool) *instrumentation.Provider {
	t.Helper()
	ctx := context.Background()
	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         enabled,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	return provider
}

func TestNewMetricsServer(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			Addr:                    ":9090",
			Enabled:                 true,
			InstrumentationProvider: newTestProvider(t, true),
		})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("empty addr falls back to default", func(t *testing.T) {
		srv, err := NewMetricsServer(MetricsServerConfig{
			Enabled:                 true,
			InstrumentationProvider: newTestProvider(t, true),
		})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewMetricsServer(MetricsServerConfig{
			Addr:    ":9090",
			Enabled: true,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instrumentation provider is required")
	})

	t.Run("disabled provider", func(t *testing.T) {
		_, err := NewMetricsServer(MetricsServerConfig{
			Addr:                    ":9090",
			Enabled:                 true,
			InstrumentationProvider: newTestProvider(t, false),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "instrumentation provider is not enabled")
	})
}

func TestMetricsServerStartAndShutdown(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    "localhost:0",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	ready := make(chan struct{})
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.StartWithReadySignal(ready); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ready:
	case err := <-serverErr:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for listener")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after Shutdown")
	}
}

func TestMetricsServerShutdownWithoutStart(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestMetricsServerAddr(t *testing.T) {
	srv, err := NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9091",
		Enabled:                 true,
		InstrumentationProvider: newTestProvider(t, true),
	})
	require.NoError(t, err)
	assert.Equal(t, ":9091", srv.Addr())
}
