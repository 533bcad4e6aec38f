package domain

import (
	"github.com/google/wire"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	roomtype.NewRoomTypeService,
	room.NewRoomService,
	analytics.NewAnalyticsService,

	ProvidePhotoConfig,
	photo.NewPhotoService,
)

func ProvidePhotoConfig(cfg *config.Config) photo.Config {
	return photo.Config{
		MaxPhotosPerRoom: cfg.MaxPhotosPerRoom,
		UploadURLExpiry:  cfg.S3PresignTTL,
	}
}
