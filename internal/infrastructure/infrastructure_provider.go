package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/auth"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/cache"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/crontab"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/analyticsrepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/photorepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/roomrepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/roomtyperepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/openrouter"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/storage"
	pkgobs "github.com/roomcraft/roomcraft-server/pkg/observability"
)

// DatabaseConfig maps the service config onto the connection settings.
func DatabaseConfig(cfg *config.Config) database.Config {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}
	return database.Config{
		DSN:             cfg.DatabaseURL,
		ReadDSN:         cfg.DatabaseReadURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        level,
	}
}

// ProvideDatabase connects and, when DB_AUTO_MIGRATE is set, migrates and
// seeds the room type dictionary.
func ProvideDatabase(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(DatabaseConfig(cfg), log)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(ctx, db, log); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		if err := database.SeedRoomTypes(ctx, db, log); err != nil {
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideRedisCache returns nil when REDIS_URL is unset.
func ProvideRedisCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*cache.RedisCache, error) {
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set; rate limiting and sweeper locks disabled")
		return nil, nil
	}
	return cache.NewRedisCache(ctx, cfg.RedisURL, log)
}

// ProvideRateLimiter returns nil, which allows every request, without redis.
func ProvideRateLimiter(cfg *config.Config, redisCache *cache.RedisCache) *ratelimit.Limiter {
	if redisCache == nil {
		return nil
	}
	return ratelimit.NewLimiter(redisCache, cfg.RateLimitWindow, ratelimit.LimitsFromConfig(cfg))
}

// ProvideSweepLocker returns a nil interface without redis so the sweeper
// runs unlocked.
func ProvideSweepLocker(redisCache *cache.RedisCache) crontab.Locker {
	if redisCache == nil {
		return nil
	}
	return redisCache
}

// ProvideRoomTypeRepository fronts the dictionary table with the in-process cache.
func ProvideRoomTypeRepository(db *gorm.DB, cfg *config.Config) (roomtype.RoomTypeRepository, error) {
	return cache.NewRoomTypeMemoryCache(roomtyperepo.NewRoomTypeGormRepository(db), cfg.RoomTypeCacheTTL)
}

// ProvideGenerator builds the OpenRouter client behind the domain interface.
func ProvideGenerator(cfg *config.Config, telemetry *pkgobs.Provider, log zerolog.Logger) inspiration.Generator {
	return openrouter.NewClient(openrouter.ConfigFromService(cfg), telemetry.Sanitizer, log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	ProvideDatabase,
	ProvideRedisCache,
	ProvideRateLimiter,
	ProvideSweepLocker,
	ProvideGenerator,

	auth.NewValidator,
	storage.NewS3Storage,
	wire.Bind(new(photo.ObjectStore), new(*storage.S3Storage)),

	ProvideRoomTypeRepository,
	roomrepo.NewRoomGormRepository,
	photorepo.NewPhotoGormRepository,
	analyticsrepo.NewAnalyticsGormRepository,

	crontab.SweeperConfigFromService,
	crontab.NewCrontab,
)
