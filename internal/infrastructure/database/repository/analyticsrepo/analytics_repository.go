package analyticsrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/dbschema"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

var _ analytics.AnalyticsRepository = (*AnalyticsGormRepository)(nil)

func NewAnalyticsGormRepository(db *gorm.DB) analytics.AnalyticsRepository {
	return &AnalyticsGormRepository{db: db}
}

// Create implements analytics.AnalyticsRepository.
func (repo *AnalyticsGormRepository) Create(ctx context.Context, event *analytics.Event) error {
	if err := repo.db.WithContext(ctx).Create(dbschema.NewSchemaAnalyticsEvent(event)).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to insert analytics event", err, "")
	}
	return nil
}
