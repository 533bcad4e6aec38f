package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// GinMiddleware starts a server span per request and records OTEL request
// metrics labelled by the matched route template.
func GinMiddleware(tracer trace.Tracer, meter metric.Meter, serviceName string) gin.HandlerFunc {
	requestDuration, _ := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", serviceName),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)

	requestsTotal, _ := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", serviceName),
		metric.WithDescription("Total HTTP requests"),
	)

	return func(c *gin.Context) {
		start := time.Now()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethod(c.Request.Method),
				semconv.HTTPRoute(route),
				attribute.String("url.path", c.Request.URL.Path),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
			attribute.Int("status", status),
		)
		requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		requestsTotal.Add(ctx, 1, attrs)

		span.SetAttributes(semconv.HTTPStatusCode(status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last())
		}
	}
}
