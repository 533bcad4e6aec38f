package api

import (
	"github.com/gin-gonic/gin"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/analytics"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/photo"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/room"
)

type ApiRoute struct {
	room        *room.RoomRoute
	photo       *photo.PhotoRoute
	inspiration *inspiration.InspirationRoute
	analytics   *analytics.AnalyticsRoute
	rateLimiter *middlewares.RateLimiter
}

func NewApiRoute(
	room *room.RoomRoute,
	photo *photo.PhotoRoute,
	inspiration *inspiration.InspirationRoute,
	analytics *analytics.AnalyticsRoute,
	rateLimiter *middlewares.RateLimiter,
) *ApiRoute {
	return &ApiRoute{
		room,
		photo,
		inspiration,
		analytics,
		rateLimiter,
	}
}

// RegisterRouter mounts every resource under /api. The router is expected to
// carry the auth middleware already.
func (apiRoute *ApiRoute) RegisterRouter(router gin.IRouter) {
	apiRouter := router.Group("/api", apiRoute.rateLimiter.Bucket(ratelimit.BucketGeneral))

	apiRoute.room.RegisterRouter(apiRouter)
	apiRoute.photo.RegisterRouter(apiRouter)
	apiRoute.inspiration.RegisterRouter(apiRouter)
	apiRoute.analytics.RegisterRouter(apiRouter)
}
