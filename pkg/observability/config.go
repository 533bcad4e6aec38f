package observability

import (
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Config holds the OpenTelemetry settings of one service.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string // development, staging, production
	TracingEnabled bool
	MetricsEnabled bool
	OTLPEndpoint   string // host:port or http(s)://host:port
	OTLPInsecure   bool
	OTLPHeaders    map[string]string
	SamplingRate   float64 // 0.0 - 1.0
	PIILevel       string  // none|hashed|full

	TraceBatchTimeout time.Duration
	MetricInterval    time.Duration
	ResourceAttrs     []attribute.KeyValue
}

// DefaultConfig returns defaults with tracing and metrics export turned off.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4318",
		OTLPInsecure:      true,
		SamplingRate:      1.0,
		PIILevel:          "hashed",
		TraceBatchTimeout: 5 * time.Second,
		MetricInterval:    15 * time.Second,
	}
}

// endpoint strips a URL scheme from OTLPEndpoint. An http:// scheme forces an
// insecure exporter.
func (c Config) endpoint() (string, bool) {
	raw := strings.TrimSpace(c.OTLPEndpoint)
	insecure := c.OTLPInsecure
	switch {
	case strings.HasPrefix(raw, "http://"):
		raw = strings.TrimPrefix(raw, "http://")
		insecure = true
	case strings.HasPrefix(raw, "https://"):
		raw = strings.TrimPrefix(raw, "https://")
	}
	return strings.TrimRight(raw, "/"), insecure
}
