package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/metrics"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/responses"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// RateLimiter hands out per-bucket middlewares backed by one limiter.
// A nil limiter disables limiting.
type RateLimiter struct {
	limiter *ratelimit.Limiter
	log     zerolog.Logger
}

func NewRateLimiter(limiter *ratelimit.Limiter, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{limiter: limiter, log: log.With().Str("component", "rate-limiter").Logger()}
}

// Bucket limits requests per user (or client IP before auth) in the named bucket.
// Counter failures let the request through.
func (r *RateLimiter) Bucket(bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r == nil || r.limiter == nil {
			c.Next()
			return
		}

		decision, err := r.limiter.Allow(c.Request.Context(), bucket, rateKey(c))
		if err != nil {
			r.log.Warn().Err(err).Str("bucket", bucket).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}
		if decision.Allowed {
			c.Next()
			return
		}

		metrics.RecordRateLimited(bucket)
		retryAfter := int(time.Until(decision.ResetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		responses.Error(c, http.StatusTooManyRequests, platformerrors.CodeRateLimited,
			"Too many requests. Please try again later.",
			map[string]any{
				"limit":         decision.Limit,
				"windowSeconds": int(r.limiter.Window().Seconds()),
			})
	}
}

func rateKey(c *gin.Context) string {
	if userID := UserIDFromContext(c); userID != "" {
		return "uid:" + userID
	}
	raw := c.ClientIP()
	if ip := net.ParseIP(raw); ip != nil {
		return "ip:" + ip.String()
	}
	if raw != "" {
		return "ip:" + raw
	}
	return "anonymous"
}
