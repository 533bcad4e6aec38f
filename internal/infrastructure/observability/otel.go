package observability

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/roomcraft/roomcraft-server/internal/config"
	pkgobs "github.com/roomcraft/roomcraft-server/pkg/observability"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Setup initialises OpenTelemetry from the service config. The returned
// provider must be shut down on exit.
func Setup(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pkgobs.Provider, error) {
	obsCfg := pkgobs.DefaultConfig(cfg.ServiceName)
	obsCfg.ServiceVersion = Version
	obsCfg.Environment = cfg.Environment
	obsCfg.TracingEnabled = cfg.EnableTracing && cfg.OTLPEndpoint != ""
	obsCfg.MetricsEnabled = cfg.EnableMetrics && cfg.OTLPEndpoint != ""
	obsCfg.OTLPEndpoint = cfg.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.OTLPInsecure
	obsCfg.PIILevel = cfg.PIILevel
	obsCfg.ResourceAttrs = []attribute.KeyValue{
		attribute.String("telemetry.scope", cfg.TelemetryScope),
	}

	provider, err := pkgobs.Init(ctx, obsCfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Bool("tracing", obsCfg.TracingEnabled).
		Bool("metrics", obsCfg.MetricsEnabled).
		Str("endpoint", obsCfg.OTLPEndpoint).
		Str("pii_level", string(provider.Sanitizer.Level())).
		Msg("observability initialised")
	return provider, nil
}
