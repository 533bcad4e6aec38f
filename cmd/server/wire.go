//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/observability"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes"
	pkgobs "github.com/roomcraft/roomcraft-server/pkg/observability"
)

// BuildApplication assembles the same graph as main with Wire.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(
		newTelemetry,
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		httpserver.NewReadinessChecks,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newTelemetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pkgobs.Provider, error) {
	return observability.Setup(ctx, cfg, log)
}
