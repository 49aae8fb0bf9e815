package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter names accepted by Config.
const (
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)

// Status label values shared by metrics and audit logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OAuth result label values.
const (
	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"
	OAuthResultExpired = "expired"
)

// Google service names used as metric labels.
const (
	ServiceDocs  = "docs"
	ServiceDrive = "drive"
)

// Config controls metrics, tracing and audit logging.
type Config struct {
	// ServiceName identifies the service in exported telemetry (default: gdocs).
	ServiceName string

	// ServiceVersion is stamped onto the telemetry resource. The caller sets
	// it from the build version; it has no environment fallback.
	ServiceVersion string

	// Enabled turns the whole provider on or off. When false, NewProvider
	// returns a no-op provider that never touches global state.
	Enabled bool

	// MetricsExporter selects prometheus (default), otlp or stdout.
	MetricsExporter string

	// TracingExporter selects otlp, stdout or none (default).
	TracingExporter string

	// OTLPEndpoint is the collector endpoint, host:port without a scheme.
	// Required when either exporter is set to otlp.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for OTLP export. Local development only;
	// traces carry document and account metadata.
	OTLPInsecure bool

	// TraceSamplingRate is the parent-based sampling ratio, 0.0 to 1.0.
	TraceSamplingRate float64

	// DetailedLabels adds high-cardinality labels (account names) to
	// metrics. Keep off in production.
	DetailedLabels bool

	// AuditLogging configures the audit trail for MCP tool calls.
	AuditLogging AuditConfig
}

// AuditConfig controls the audit log stream.
type AuditConfig struct {
	// Enabled turns audit logging on (default: true).
	Enabled bool

	// IncludePII logs full email addresses instead of anonymized domains.
	// Route audit logs to access-controlled storage before enabling.
	IncludePII bool
}

// DefaultConfig builds a Config from the environment.
//
// Recognized variables: OTEL_SERVICE_NAME, INSTRUMENTATION_ENABLED,
// METRICS_EXPORTER, TRACING_EXPORTER, OTEL_EXPORTER_OTLP_ENDPOINT,
// OTEL_EXPORTER_OTLP_INSECURE, OTEL_TRACES_SAMPLER_ARG,
// METRICS_DETAILED_LABELS, AUDIT_LOGGING_ENABLED, AUDIT_LOGGING_INCLUDE_PII.
func DefaultConfig() Config {
	return Config{
		ServiceName:       envString("OTEL_SERVICE_NAME", "gdocs"),
		ServiceVersion:    "unknown",
		Enabled:           envBool("INSTRUMENTATION_ENABLED", true),
		MetricsExporter:   envString("METRICS_EXPORTER", ExporterPrometheus),
		TracingExporter:   envString("TRACING_EXPORTER", ExporterNone),
		OTLPEndpoint:      envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:      envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TraceSamplingRate: envFloat("OTEL_TRACES_SAMPLER_ARG", 0.1),
		DetailedLabels:    envBool("METRICS_DETAILED_LABELS", false),
		AuditLogging: AuditConfig{
			Enabled:    envBool("AUDIT_LOGGING_ENABLED", true),
			IncludePII: envBool("AUDIT_LOGGING_INCLUDE_PII", false),
		},
	}
}

// Validate rejects exporter names and sampling rates the provider cannot
// honor, before any global state is touched.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	switch c.MetricsExporter {
	case "", ExporterPrometheus, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
		}
	default:
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	switch c.TracingExporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.OTLPEndpoint == "" {
			return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
		}
	default:
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
