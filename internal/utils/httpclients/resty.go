package httpclients

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"
)

type requestIDKey struct{}
type httpClientStartsAt struct{}

// WithRequestID tags outgoing calls made with ctx so their log lines correlate.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// NewClient returns a resty client that logs every exchange at debug level.
// Retries are left to callers.
func NewClient(clientName string, log zerolog.Logger) *resty.Client {
	logger := log.With().Str("client", clientName).Logger()
	client := resty.New().SetRetryCount(0)
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), httpClientStartsAt{}, time.Now()))
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(httpClientStartsAt{}).(time.Time)

		event := logger.Debug().
			Str("request_id", RequestIDFromContext(ctx)).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("host", raw.URL.Host).Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
