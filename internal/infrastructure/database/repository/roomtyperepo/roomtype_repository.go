package roomtyperepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/dbschema"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

type RoomTypeGormRepository struct {
	db *gorm.DB
}

var _ roomtype.RoomTypeRepository = (*RoomTypeGormRepository)(nil)

func NewRoomTypeGormRepository(db *gorm.DB) roomtype.RoomTypeRepository {
	return &RoomTypeGormRepository{db: db}
}

// List implements roomtype.RoomTypeRepository.
func (repo *RoomTypeGormRepository) List(ctx context.Context) ([]*roomtype.RoomType, error) {
	var rows []dbschema.RoomType
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list room types", err, "")
	}

	out := make([]*roomtype.RoomType, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}
