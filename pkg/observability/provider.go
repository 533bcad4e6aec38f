package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/roomcraft/roomcraft-server/pkg/telemetry"
)

// Provider bundles the tracer, meter and payload sanitizer handed to the
// service. Tracer and Meter are the global no-op ones unless export is on.
type Provider struct {
	Tracer         trace.Tracer
	Meter          metric.Meter
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Sanitizer      *telemetry.Sanitizer

	stops []func(context.Context) error
}

// Init builds a Provider. W3C trace context is always propagated so
// incoming trace ids reach the logs even with export disabled.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	p := &Provider{
		Tracer:    otel.Tracer(cfg.ServiceName),
		Meter:     otel.Meter(cfg.ServiceName),
		Sanitizer: telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.PIILevel), cfg.ServiceName),
	}
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if !cfg.TracingEnabled && !cfg.MetricsEnabled {
		return p, nil
	}

	attrs := append([]resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	}, resource.WithAttributes(cfg.ResourceAttrs...))
	res, err := resource.New(ctx, attrs...)
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	if cfg.TracingEnabled {
		if err := p.enableTracing(ctx, cfg, res); err != nil {
			return nil, fmt.Errorf("otel tracing: %w", err)
		}
	}
	if cfg.MetricsEnabled {
		if err := p.enableMetrics(ctx, cfg, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("otel metrics: %w", err)
		}
	}
	return p, nil
}

// Shutdown stops the providers in reverse start order and joins the errors.
// It is safe to call more than once.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(p.stops) - 1; i >= 0; i-- {
		if err := p.stops[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	p.stops = nil
	return errors.Join(errs...)
}

func (p *Provider) enableTracing(ctx context.Context, cfg Config, res *resource.Resource) error {
	endpoint, insecure := cfg.endpoint()
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithHeaders(cfg.OTLPHeaders)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(cfg.TraceBatchTimeout)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))),
	)
	otel.SetTracerProvider(tp)

	p.TracerProvider = tp
	p.Tracer = tp.Tracer(cfg.ServiceName)
	p.stops = append(p.stops, tp.Shutdown)
	return nil
}

func (p *Provider) enableMetrics(ctx context.Context, cfg Config, res *resource.Resource) error {
	endpoint, insecure := cfg.endpoint()
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithHeaders(cfg.OTLPHeaders)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricInterval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	otel.SetMeterProvider(mp)

	p.MeterProvider = mp
	p.Meter = mp.Meter(cfg.ServiceName)
	p.stops = append(p.stops, mp.Shutdown)
	return nil
}
