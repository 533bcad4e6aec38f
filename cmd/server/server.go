package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain"
	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/auth"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/crontab"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/analyticsrepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/photorepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/roomrepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/logger"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/observability"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/storage"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/inspirationhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/photohandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/roomhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api"
	analyticsroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/analytics"
	inspirationroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/inspiration"
	photoroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/photo"
	roomroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/room"
)

// @title Roomcraft API
// @version 1.0
// @description Interior design backend: rooms, presigned photo uploads and AI generated inspirations.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, crontab *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    crontab,
		log:        log,
	}
}

// Start runs the HTTP server and the cron jobs until ctx is cancelled or one
// of them fails.
func (a *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := infrastructure.ProvideDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	redisCache, err := infrastructure.ProvideRedisCache(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	objectStore, err := storage.NewS3Storage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize object storage")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}
	defer authValidator.Close()

	roomTypeRepo, err := infrastructure.ProvideRoomTypeRepository(db, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize room type cache")
	}
	roomTypeService := roomtype.NewRoomTypeService(roomTypeRepo)
	roomService := room.NewRoomService(roomrepo.NewRoomGormRepository(db), log)
	photoService := photo.NewPhotoService(photorepo.NewPhotoGormRepository(db), objectStore, domain.ProvidePhotoConfig(cfg), log)
	analyticsService := analytics.NewAnalyticsService(analyticsrepo.NewAnalyticsGormRepository(db), log)
	generator := infrastructure.ProvideGenerator(cfg, telemetry, log)

	binder := requests.NewBinder(cfg)
	rateLimiter := middlewares.NewRateLimiter(infrastructure.ProvideRateLimiter(cfg, redisCache), log)

	apiRoute := api.NewApiRoute(
		roomroute.NewRoomRoute(roomhandler.NewRoomHandler(roomTypeService, roomService, photoService, analyticsService, log), binder),
		photoroute.NewPhotoRoute(photohandler.NewPhotoHandler(roomService, photoService, analyticsService, log), binder, rateLimiter),
		inspirationroute.NewInspirationRoute(inspirationhandler.NewInspirationHandler(
			roomService,
			photoService,
			analyticsService,
			generator,
			inspirationhandler.RequirementsFromConfig(cfg),
			log,
		), binder, rateLimiter),
		analyticsroute.NewAnalyticsRoute(analyticshandler.NewAnalyticsHandler(analyticsService, log), binder),
		rateLimiter,
	)

	httpServer := httpserver.New(
		cfg,
		log,
		apiRoute,
		authValidator,
		telemetry,
		httpserver.NewReadinessChecks(db, redisCache, objectStore),
	)
	sweeper := crontab.NewCrontab(
		photoService,
		infrastructure.ProvideSweepLocker(redisCache),
		crontab.SweeperConfigFromService(cfg),
		log,
	)

	app := NewApplication(httpServer, sweeper, log)
	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
