package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRoomTypeSeeds(t *testing.T) {
	types, err := LoadRoomTypeSeeds()
	require.NoError(t, err)

	require.NotEmpty(t, types)
	assert.Equal(t, 1, types[0].ID)
	assert.Equal(t, "living_room", types[0].Name)
	assert.Equal(t, "Living room", types[0].DisplayName)
}

func TestParseRoomTypeSeedsRejectsDuplicates(t *testing.T) {
	_, err := parseRoomTypeSeeds([]byte(`
room_types:
  - {id: 1, name: a, display_name: A}
  - {id: 1, name: b, display_name: B}
`))
	assert.ErrorContains(t, err, "duplicated")
}

func TestParseRoomTypeSeedsRejectsIncompleteRows(t *testing.T) {
	_, err := parseRoomTypeSeeds([]byte(`
room_types:
  - {id: 2, name: "", display_name: B}
`))
	assert.ErrorContains(t, err, "incomplete")
}
