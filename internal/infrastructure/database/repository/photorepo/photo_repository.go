package photorepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/dbschema"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

type PhotoGormRepository struct {
	db *gorm.DB
}

var _ photo.PhotoRepository = (*PhotoGormRepository)(nil)

func NewPhotoGormRepository(db *gorm.DB) photo.PhotoRepository {
	return &PhotoGormRepository{db: db}
}

func dbError(ctx context.Context, err error, message string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, message, err, "")
}

// Create implements photo.PhotoRepository.
func (repo *PhotoGormRepository) Create(ctx context.Context, p *photo.Photo) error {
	entity := dbschema.NewSchemaRoomPhoto(p)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return dbError(ctx, err, "failed to create photo")
	}
	p.CreatedAt = entity.CreatedAt
	return nil
}

// CountByRoomID implements photo.PhotoRepository.
func (repo *PhotoGormRepository) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&dbschema.RoomPhoto{}).
		Where("room_id = ? AND deleted_at IS NULL", roomID).
		Count(&count).Error
	if err != nil {
		return 0, dbError(ctx, err, "failed to count photos")
	}
	return count, nil
}

// FindByTuple implements photo.PhotoRepository.
func (repo *PhotoGormRepository) FindByTuple(ctx context.Context, photoID, roomID string, photoType photo.PhotoType, storagePath string) (*photo.Photo, error) {
	var entity dbschema.RoomPhoto
	err := repo.db.WithContext(ctx).
		Where("id = ? AND room_id = ? AND photo_type = ? AND storage_path = ? AND deleted_at IS NULL",
			photoID, roomID, string(photoType), storagePath).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError(ctx, err, "failed to find photo")
	}
	return entity.EtoD(), nil
}

// Confirm implements photo.PhotoRepository.
func (repo *PhotoGormRepository) Confirm(ctx context.Context, photoID string, description *string, confirmedAt time.Time) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.RoomPhoto{}).
		Where("id = ?", photoID).
		Updates(map[string]any{
			"description":  description,
			"confirmed_at": confirmedAt,
		}).Error
	if err != nil {
		return dbError(ctx, err, "failed to confirm photo")
	}
	return nil
}

// ListByRoomID implements photo.PhotoRepository.
func (repo *PhotoGormRepository) ListByRoomID(ctx context.Context, roomID string, photoType *photo.PhotoType) ([]*photo.Photo, error) {
	query := repo.db.WithContext(ctx).
		Where("room_id = ? AND deleted_at IS NULL", roomID)
	if photoType != nil {
		query = query.Where("photo_type = ?", string(*photoType))
	}

	var entities []dbschema.RoomPhoto
	if err := query.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, dbError(ctx, err, "failed to list photos")
	}
	return toDomain(entities), nil
}

// ListTypesByRoomID implements photo.PhotoRepository.
func (repo *PhotoGormRepository) ListTypesByRoomID(ctx context.Context, roomID string) ([]photo.PhotoType, error) {
	var types []string
	err := repo.db.WithContext(ctx).
		Model(&dbschema.RoomPhoto{}).
		Where("room_id = ? AND deleted_at IS NULL", roomID).
		Pluck("photo_type", &types).Error
	if err != nil {
		return nil, dbError(ctx, err, "failed to list photo types")
	}

	out := make([]photo.PhotoType, 0, len(types))
	for _, t := range types {
		out = append(out, photo.PhotoType(t))
	}
	return out, nil
}

// ListUnconfirmedBefore implements photo.PhotoRepository.
func (repo *PhotoGormRepository) ListUnconfirmedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*photo.Photo, error) {
	query := repo.db.WithContext(ctx).
		Where("confirmed_at IS NULL AND deleted_at IS NULL AND created_at < ?", cutoff).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entities []dbschema.RoomPhoto
	if err := query.Find(&entities).Error; err != nil {
		return nil, dbError(ctx, err, "failed to list pending photos")
	}
	return toDomain(entities), nil
}

// SoftDelete implements photo.PhotoRepository.
func (repo *PhotoGormRepository) SoftDelete(ctx context.Context, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}
	err := repo.db.WithContext(ctx).
		Model(&dbschema.RoomPhoto{}).
		Where("id IN ? AND deleted_at IS NULL", photoIDs).
		Update("deleted_at", time.Now().UTC()).Error
	if err != nil {
		return dbError(ctx, err, "failed to delete photos")
	}
	return nil
}

func toDomain(entities []dbschema.RoomPhoto) []*photo.Photo {
	out := make([]*photo.Photo, 0, len(entities))
	for i := range entities {
		out = append(out, entities[i].EtoD())
	}
	return out
}
