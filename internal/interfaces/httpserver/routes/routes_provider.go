package routes

import (
	"github.com/google/wire"

	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/analytics"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/photo"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/room"
)

var RouteProvider = wire.NewSet(
	// Request binding and route middlewares
	requests.NewBinder,
	middlewares.NewRateLimiter,

	// Routes
	api.NewApiRoute,
	room.NewRoomRoute,
	photo.NewPhotoRoute,
	inspiration.NewInspirationRoute,
	analytics.NewAnalyticsRoute,
)
