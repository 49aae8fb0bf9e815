package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	for _, key := range []string{
		"OTEL_SERVICE_NAME", "INSTRUMENTATION_ENABLED",
		"METRICS_EXPORTER", "TRACING_EXPORTER", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(key, "")
	}

	config := DefaultConfig()

	assert.Equal(t, "gdocs", config.ServiceName)
	assert.True(t, config.Enabled)
	assert.Equal(t, ExporterPrometheus, config.MetricsExporter)
	assert.Equal(t, ExporterNone, config.TracingExporter)
	assert.Equal(t, 0.1, config.TraceSamplingRate)
	assert.True(t, config.AuditLogging.Enabled)
	assert.False(t, config.AuditLogging.IncludePII, "PII logging must be opt-in")
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "test-service")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")
	t.Setenv("METRICS_DETAILED_LABELS", "true")

	config := DefaultConfig()

	assert.Equal(t, "test-service", config.ServiceName)
	assert.False(t, config.Enabled)
	assert.Equal(t, ExporterStdout, config.MetricsExporter)
	assert.Equal(t, ExporterStdout, config.TracingExporter)
	assert.Equal(t, 0.5, config.TraceSamplingRate)
	assert.True(t, config.DetailedLabels)
}

func TestDefaultConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "not_a_bool")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "not_a_float")

	config := DefaultConfig()

	assert.True(t, config.Enabled, "malformed INSTRUMENTATION_ENABLED falls back to the default")
	assert.Equal(t, 0.1, config.TraceSamplingRate, "malformed OTEL_TRACES_SAMPLER_ARG falls back to the default")
}

func TestConfigValidate(t *testing.T) {
	valid := map[string]Config{
		"prometheus metrics, no tracing": {
			MetricsExporter: ExporterPrometheus,
			TracingExporter: ExporterNone,
		},
		"otlp tracing with endpoint": {
			MetricsExporter: ExporterPrometheus,
			TracingExporter: ExporterOTLP,
			OTLPEndpoint:    "localhost:4318",
		},
		"empty exporters allowed": {},
	}
	for name, config := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, config.Validate())
		})
	}

	invalid := []struct {
		name        string
		config      Config
		errContains string
	}{
		{"negative sampling rate", Config{TraceSamplingRate: -0.5}, "sampling rate"},
		{"sampling rate above one", Config{TraceSamplingRate: 1.5}, "sampling rate"},
		{"unknown metrics exporter", Config{MetricsExporter: "graphite"}, "invalid metrics exporter"},
		{"unknown tracing exporter", Config{TracingExporter: "jaeger"}, "invalid tracing exporter"},
		{"otlp tracing without endpoint", Config{TracingExporter: ExporterOTLP}, "OTLP endpoint is required"},
		{"otlp metrics without endpoint", Config{MetricsExporter: ExporterOTLP}, "OTLP endpoint is required"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_BOOL", "false")
	t.Setenv("TEST_FLOAT", "0.75")

	assert.Equal(t, "value", envString("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", envString("TEST_UNSET_STRING", "fallback"))
	assert.False(t, envBool("TEST_BOOL", true))
	assert.True(t, envBool("TEST_UNSET_BOOL", true))
	assert.Equal(t, 0.75, envFloat("TEST_FLOAT", 0.5))
	assert.Equal(t, 0.5, envFloat("TEST_UNSET_FLOAT", 0.5))
}
