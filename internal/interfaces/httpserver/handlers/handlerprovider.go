package handlers

import (
	"github.com/google/wire"

	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/inspirationhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/photohandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/roomhandler"
)

var HandlerProvider = wire.NewSet(
	roomhandler.NewRoomHandler,
	photohandler.NewPhotoHandler,
	inspirationhandler.RequirementsFromConfig,
	inspirationhandler.NewInspirationHandler,
	analyticshandler.NewAnalyticsHandler,
)
