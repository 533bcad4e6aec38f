package httpserver

import (
	"context"

	"gorm.io/gorm"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/cache"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/storage"
)

// NewReadinessChecks probes the database, the object store and, when
// configured, redis.
func NewReadinessChecks(db *gorm.DB, redisCache *cache.RedisCache, store *storage.S3Storage) ReadinessChecks {
	checks := ReadinessChecks{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
		"storage":  store.Health,
	}
	if redisCache != nil {
		checks["redis"] = redisCache.HealthCheck
	}
	return checks
}
