package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/roomcraft/roomcraft-server/internal/config"
)

// Bucket names group endpoints that share a per-user allowance.
const (
	BucketGenerate = "generate"
	BucketUpload   = "upload"
	BucketGeneral  = "general"
)

// Counter increments a key that expires after window.
type Counter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window counter per user and bucket. A nil *Limiter
// allows everything.
type Limiter struct {
	counter Counter
	window  time.Duration
	limits  map[string]int
	now     func() time.Time
}

func NewLimiter(counter Counter, window time.Duration, limits map[string]int) *Limiter {
	if window <= 0 {
		window = time.Hour
	}
	return &Limiter{counter: counter, window: window, limits: limits, now: time.Now}
}

// LimitsFromConfig returns the per-bucket allowances.
func LimitsFromConfig(cfg *config.Config) map[string]int {
	return map[string]int{
		BucketGenerate: cfg.RateLimitGenerate,
		BucketUpload:   cfg.RateLimitUpload,
		BucketGeneral:  cfg.RateLimitGeneral,
	}
}

// Window returns the length of one counting window.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Allow counts one request for userID in bucket.
func (l *Limiter) Allow(ctx context.Context, bucket, userID string) (Decision, error) {
	if l == nil {
		return Decision{Allowed: true}, nil
	}
	limit, ok := l.limits[bucket]
	if !ok || limit <= 0 {
		return Decision{Allowed: true}, nil
	}

	windowStart := l.now().UTC().Truncate(l.window)
	key := fmt.Sprintf("ratelimit:%s:%s:%d", bucket, userID, windowStart.Unix())
	count, err := l.counter.IncrWindow(ctx, key, l.window)
	if err != nil {
		return Decision{Allowed: true, Limit: limit}, err
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   windowStart.Add(l.window),
	}, nil
}
