package dbschema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
)

// ===============================================
// AnalyticsEvent Schema
// ===============================================

// AnalyticsEvent represents the append-only analytics log
type AnalyticsEvent struct {
	ID        string            `gorm:"type:uuid;primaryKey"`
	UserID    string            `gorm:"type:uuid;not null;index"`
	EventType string            `gorm:"size:100;not null"`
	EventData datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt time.Time         `gorm:"not null"`
}

// TableName specifies the table name for AnalyticsEvent
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// NewSchemaAnalyticsEvent creates a database schema from domain event
func NewSchemaAnalyticsEvent(e *analytics.Event) *AnalyticsEvent {
	data := datatypes.JSONMap{}
	for k, v := range e.EventData {
		data[k] = v
	}
	return &AnalyticsEvent{
		ID:        e.ID,
		UserID:    e.UserID,
		EventType: e.EventType,
		EventData: data,
		CreatedAt: e.CreatedAt,
	}
}
