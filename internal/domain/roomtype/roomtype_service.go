package roomtype

import (
	"context"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// RoomTypeService exposes the read-only room type dictionary.
type RoomTypeService struct {
	repo RoomTypeRepository
}

// NewRoomTypeService creates a new room type service
func NewRoomTypeService(repo RoomTypeRepository) *RoomTypeService {
	return &RoomTypeService{repo: repo}
}

// ListRoomTypes returns every room type ordered by id.
func (s *RoomTypeService) ListRoomTypes(ctx context.Context) ([]*RoomType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list room types")
	}
	if types == nil {
		types = []*RoomType{}
	}
	return types, nil
}
