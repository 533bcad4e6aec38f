package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const KeyPrefix = "roomcraft:"

// RedisCache backs the rate limiter counters and the sweeper lock.
type RedisCache struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
	log    zerolog.Logger
}

// NewRedisCache connects to one or more comma separated redis URLs or
// host:port addresses. Several addresses select cluster mode.
func NewRedisCache(ctx context.Context, redisURL string, log zerolog.Logger) (*RedisCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if len(opts.Addrs) > 1 && opts.DB != 0 {
		log.Warn().Msg("ignoring non-zero DB when using redis cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Int("addrs", len(opts.Addrs)).Msg("connected to redis")
	return &RedisCache{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
		log:    log.With().Str("component", "redis-cache").Logger(),
	}, nil
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no redis addresses provided")
	}
	return opts, nil
}

// IncrWindow increments key and starts its expiry on the first hit of a window.
func (r *RedisCache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, KeyPrefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if n == 1 {
		if err := r.client.Expire(ctx, KeyPrefix+key, window).Err(); err != nil {
			return n, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return n, nil
}

func (r *RedisCache) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// WithLock runs fn while holding a cluster-wide lock. It makes a single
// attempt, so a lock held elsewhere returns an error without running fn.
func (r *RedisCache) WithLock(ctx context.Context, lockName string, ttl time.Duration, fn func(context.Context) error) error {
	mutex := r.rs.NewMutex(KeyPrefix+"lock:"+lockName, redsync.WithExpiry(ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("acquire lock %s: %w", lockName, err)
	}
	defer func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			r.log.Error().Err(err).Str("lock", lockName).Msg("failed to unlock mutex")
		}
	}()
	return fn(ctx)
}
