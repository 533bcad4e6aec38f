package roomrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/dbschema"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// pgInsufficientPrivilege is SQLSTATE 42501.
const pgInsufficientPrivilege = "42501"

type RoomGormRepository struct {
	db *gorm.DB
}

var _ room.RoomRepository = (*RoomGormRepository)(nil)

func NewRoomGormRepository(db *gorm.DB) room.RoomRepository {
	return &RoomGormRepository{db: db}
}

// Create implements room.RoomRepository.
func (repo *RoomGormRepository) Create(ctx context.Context, r *room.Room) error {
	entity := dbschema.NewSchemaRoom(r)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
			return err
		}
		return tx.Preload("RoomType").First(entity, "id = ?", entity.ID).Error
	})
	if err != nil {
		return translateCreateError(ctx, err)
	}

	*r = *entity.EtoD()
	return nil
}

func translateCreateError(ctx context.Context, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return room.ErrRoomTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return room.ErrRoomTypeNotFound
		case pgInsufficientPrivilege:
			return errors.Join(room.ErrInsufficientPrivilege, err)
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to create room", err, "")
}

// FindByID implements room.RoomRepository.
func (repo *RoomGormRepository) FindByID(ctx context.Context, roomID string) (*room.Room, error) {
	var entity dbschema.Room
	err := repo.db.WithContext(ctx).
		Preload("RoomType").
		Where("id = ? AND deleted_at IS NULL", roomID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find room", err, "")
	}
	return entity.EtoD(), nil
}

// ListByOwner implements room.RoomRepository.
func (repo *RoomGormRepository) ListByOwner(ctx context.Context, userID string) ([]*room.Room, error) {
	var entities []dbschema.Room
	err := repo.db.WithContext(ctx).
		Preload("RoomType").
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC").
		Find(&entities).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list rooms", err, "")
	}

	out := make([]*room.Room, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].EtoD())
	}
	return out, nil
}

// ExistsForOwner implements room.RoomRepository.
func (repo *RoomGormRepository) ExistsForOwner(ctx context.Context, roomID, userID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Room{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", roomID, userID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to verify room ownership", err, "")
	}
	return count > 0, nil
}

// CountPhotosByRoomIDs implements room.RoomRepository.
func (repo *RoomGormRepository) CountPhotosByRoomIDs(ctx context.Context, roomIDs []string) (map[string]room.PhotoCount, error) {
	out := make(map[string]room.PhotoCount, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}

	var rows []dbschema.RoomPhotoCountRow
	err := repo.db.WithContext(ctx).
		Model(&dbschema.RoomPhoto{}).
		Select("room_id, photo_type, COUNT(*) AS count").
		Where("room_id IN ? AND deleted_at IS NULL", roomIDs).
		Group("room_id, photo_type").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count room photos", err, "")
	}

	for _, row := range rows {
		c := out[row.RoomID]
		switch photo.PhotoType(row.PhotoType) {
		case photo.PhotoTypeRoom:
			c.Room += row.Count
		case photo.PhotoTypeInspiration:
			c.Inspiration += row.Count
		}
		out[row.RoomID] = c
	}
	return out, nil
}
