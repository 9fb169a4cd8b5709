package observability

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Config holds the OpenTelemetry export settings
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TracingEnabled bool
	MetricsEnabled bool
	OTLPEndpoint   string // host:port of an OTLP/HTTP collector
	OTLPHeaders    map[string]string
	Insecure       bool
	SamplingRate   float64 // 0.0 - 1.0

	TraceBatchTimeout time.Duration
	MetricInterval    time.Duration
	ResourceAttrs     []attribute.KeyValue
}

// DefaultConfig returns the settings used when only the enable flags are set
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "unknown",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4318",
		Insecure:          true,
		SamplingRate:      1.0,
		TraceBatchTimeout: 5 * time.Second,
		MetricInterval:    15 * time.Second,
	}
}
