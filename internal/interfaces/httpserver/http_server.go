package httpserver

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	roomcraftdocs "github.com/roomcraft/roomcraft-server/docs/swagger"
	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/auth"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/observability"
	middleware "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api"
	pkgobs "github.com/roomcraft/roomcraft-server/pkg/observability"
	otelmiddleware "github.com/roomcraft/roomcraft-server/pkg/observability/middleware"
)

const readinessTimeout = 3 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// ReadinessChecks are run by /readyz, keyed by dependency name.
type ReadinessChecks map[string]HealthCheck

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
	checks ReadinessChecks
}

// New constructs the HTTP server with the middleware chain and every route.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	apiRoute *api.ApiRoute,
	authValidator *auth.Validator,
	telemetry *pkgobs.Provider,
	checks ReadinessChecks,
) *HttpServer {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	roomcraftdocs.SwaggerInfo.BasePath = "/"
	roomcraftdocs.SwaggerInfo.Version = observability.Version

	server := &HttpServer{
		cfg:    cfg,
		engine: gin.New(),
		log:    log.With().Str("component", "http-server").Logger(),
		checks: checks,
	}

	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	if telemetry != nil {
		server.engine.Use(otelmiddleware.GinMiddleware(telemetry.Tracer, telemetry.Meter, cfg.ServiceName))
	}
	server.engine.Use(middleware.LoggingMiddleware(log))
	server.engine.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	if cfg.EnableMetrics {
		server.engine.Use(middleware.MetricsMiddleware())
	}

	server.registerCoreRoutes()

	protected := server.engine.Group("/")
	protected.Use(middleware.AuthMiddleware(authValidator, log))
	apiRoute.RegisterRouter(protected)

	return server
}

// Handler exposes the engine, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

func (s *HttpServer) registerCoreRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": s.cfg.ServiceName,
			"version": observability.Version,
			"status":  "ok",
		})
	})

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s.engine.GET("/readyz", s.readyz)

	if s.cfg.EnableMetrics {
		s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *HttpServer) readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	ready := true
	for _, name := range names {
		if err := s.checks[name](ctx); err != nil {
			ready = false
			results[name] = err.Error()
			s.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			continue
		}
		results[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
