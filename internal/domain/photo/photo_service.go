package photo

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

// Config carries the photo business limits.
type Config struct {
	MaxPhotosPerRoom int
	UploadURLExpiry  time.Duration
}

// SweepResult summarizes one pass over stale pending photos.
type SweepResult struct {
	Scanned   int
	Confirmed int
	Deleted   int
}

// PhotoService handles business logic for room photos
type PhotoService struct {
	repo  PhotoRepository
	store ObjectStore
	cfg   Config
	log   zerolog.Logger
	now   func() time.Time
}

// NewPhotoService creates a new photo service
func NewPhotoService(repo PhotoRepository, store ObjectStore, cfg Config, log zerolog.Logger) *PhotoService {
	if cfg.UploadURLExpiry <= 0 {
		cfg.UploadURLExpiry = time.Hour
	}
	return &PhotoService{
		repo:  repo,
		store: store,
		cfg:   cfg,
		log:   log.With().Str("component", "photo-service").Logger(),
		now:   time.Now,
	}
}

// MaxPhotosPerRoom returns the configured per-room cap.
func (s *PhotoService) MaxPhotosPerRoom() int {
	return s.cfg.MaxPhotosPerRoom
}

// ===============================================
// Pending upload lifecycle
// ===============================================

// CountByRoomID counts the room's non-deleted photos, pending ones included.
func (s *PhotoService) CountByRoomID(ctx context.Context, roomID string) (int64, error) {
	count, err := s.repo.CountByRoomID(ctx, roomID)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count photos")
	}
	return count, nil
}

// CreatePendingPhoto inserts a photo row before its object exists in storage.
func (s *PhotoService) CreatePendingPhoto(ctx context.Context, photoID, roomID string, photoType PhotoType, storagePath string) (string, error) {
	p := &Photo{
		ID:          photoID,
		RoomID:      roomID,
		PhotoType:   photoType,
		StoragePath: storagePath,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create pending photo")
	}
	return p.ID, nil
}

// DiscardPending soft-deletes a pending row whose upload URL could not be issued.
func (s *PhotoService) DiscardPending(ctx context.Context, photoID string) error {
	if err := s.repo.SoftDelete(ctx, []string{photoID}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to discard pending photo")
	}
	return nil
}

// PresignUpload signs a PUT URL bound to contentType and returns its expiry.
func (s *PhotoService) PresignUpload(ctx context.Context, storagePath, contentType string) (string, time.Time, error) {
	url, err := s.store.PresignUpload(ctx, storagePath, contentType)
	if err != nil {
		return "", time.Time{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to sign upload url")
	}
	return url, s.now().UTC().Add(s.cfg.UploadURLExpiry), nil
}

// PresignDownload signs a GET URL for the stored object.
func (s *PhotoService) PresignDownload(ctx context.Context, storagePath string) (string, error) {
	url, err := s.store.PresignDownload(ctx, storagePath)
	if err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to sign download url")
	}
	return url, nil
}

// ConfirmPhotoUpload confirms a pending photo matched by the exact tuple in input.
// It returns nil, nil on a mismatch. The download URL is signed before the row
// is updated, so a signing failure leaves the row untouched. Confirming the same
// tuple again succeeds again and rewrites the description.
func (s *PhotoService) ConfirmPhotoUpload(ctx context.Context, input ConfirmInput) (*Photo, error) {
	p, err := s.repo.FindByTuple(ctx, input.PhotoID, input.RoomID, input.PhotoType, input.StoragePath)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to find pending photo")
	}
	if p == nil {
		return nil, nil
	}

	url, err := s.PresignDownload(ctx, p.StoragePath)
	if err != nil {
		return nil, err
	}

	description := p.Description
	if input.Description != nil {
		description = input.Description
	}
	confirmedAt := s.now().UTC()
	if err := s.repo.Confirm(ctx, p.ID, description, confirmedAt); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to confirm photo")
	}

	p.Description = description
	p.ConfirmedAt = &confirmedAt
	p.URL = url
	return p, nil
}

// ===============================================
// Queries
// ===============================================

// GetRoomPhotos lists the room's photos newest first, each with a signed URL.
func (s *PhotoService) GetRoomPhotos(ctx context.Context, roomID string, photoType *PhotoType) ([]*Photo, error) {
	photos, err := s.repo.ListByRoomID(ctx, roomID, photoType)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list photos")
	}
	for _, p := range photos {
		url, err := s.PresignDownload(ctx, p.StoragePath)
		if err != nil {
			return nil, err
		}
		p.URL = url
	}
	if photos == nil {
		photos = []*Photo{}
	}
	return photos, nil
}

// GetPhotoCountsByType tallies photo types from a single query.
func (s *PhotoService) GetPhotoCountsByType(ctx context.Context, roomID string) (Counts, error) {
	types, err := s.repo.ListTypesByRoomID(ctx, roomID)
	if err != nil {
		return Counts{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count photos by type")
	}
	var counts Counts
	for _, t := range types {
		switch t {
		case PhotoTypeRoom:
			counts.Room++
		case PhotoTypeInspiration:
			counts.Inspiration++
		}
	}
	counts.Total = counts.Room + counts.Inspiration
	return counts, nil
}

// ===============================================
// Maintenance
// ===============================================

// SweepStalePending resolves pending rows older than olderThan. Rows whose
// object made it to storage are marked confirmed; the rest are soft-deleted.
func (s *PhotoService) SweepStalePending(ctx context.Context, olderThan time.Duration, limit int) (SweepResult, error) {
	cutoff := s.now().UTC().Add(-olderThan)
	stale, err := s.repo.ListUnconfirmedBefore(ctx, cutoff, limit)
	if err != nil {
		return SweepResult{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list stale pending photos")
	}

	result := SweepResult{Scanned: len(stale)}
	var orphaned []string
	for _, p := range stale {
		exists, err := s.store.Exists(ctx, p.StoragePath)
		if err != nil {
			s.log.Warn().Err(err).Str("photo_id", p.ID).Msg("sweeper could not check object, skipping")
			continue
		}
		if !exists {
			orphaned = append(orphaned, p.ID)
			continue
		}
		if err := s.repo.Confirm(ctx, p.ID, p.Description, s.now().UTC()); err != nil {
			return result, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to mark photo confirmed")
		}
		result.Confirmed++
	}

	if len(orphaned) > 0 {
		if err := s.repo.SoftDelete(ctx, orphaned); err != nil {
			return result, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to delete orphaned photos")
		}
		result.Deleted = len(orphaned)
	}
	return result, nil
}
