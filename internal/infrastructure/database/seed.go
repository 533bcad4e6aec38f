package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/dbschema"
)

//go:embed seeds/room_types.yaml
var roomTypesYAML []byte

type roomTypeSeed struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
}

type seedFile struct {
	RoomTypes []roomTypeSeed `yaml:"room_types"`
}

// LoadRoomTypeSeeds parses the embedded room type dictionary.
func LoadRoomTypeSeeds() ([]dbschema.RoomType, error) {
	return parseRoomTypeSeeds(roomTypesYAML)
}

func parseRoomTypeSeeds(data []byte) ([]dbschema.RoomType, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse room type seeds: %w", err)
	}

	seen := make(map[int]struct{}, len(file.RoomTypes))
	out := make([]dbschema.RoomType, 0, len(file.RoomTypes))
	for _, s := range file.RoomTypes {
		if s.ID <= 0 || s.Name == "" || s.DisplayName == "" {
			return nil, fmt.Errorf("room type seed %+v is incomplete", s)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("room type seed id %d is duplicated", s.ID)
		}
		seen[s.ID] = struct{}{}
		out = append(out, dbschema.RoomType{ID: s.ID, Name: s.Name, DisplayName: s.DisplayName})
	}
	return out, nil
}

// SeedRoomTypes upserts the embedded room types by id.
func SeedRoomTypes(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	types, err := LoadRoomTypeSeeds()
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return nil
	}

	err = db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "display_name"}),
	}).Create(&types).Error
	if err != nil {
		return fmt.Errorf("seed room types: %w", err)
	}

	// Keep the serial in step with the explicit ids.
	if err := db.WithContext(ctx).Exec(
		"SELECT setval(pg_get_serial_sequence('room_types', 'id'), (SELECT MAX(id) FROM room_types))",
	).Error; err != nil {
		log.Warn().Err(err).Msg("failed to advance room_types sequence")
	}

	log.Info().Int("count", len(types)).Msg("seeded room types")
	return nil
}
