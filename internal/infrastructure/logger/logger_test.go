package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/config"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{ServiceName: "roomcraft-api", Environment: "test", LogLevel: "debug", LogFormat: "json"}, &buf)

	log.Debug().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "roomcraft-api", entry["service"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNewWithWriterFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{LogLevel: "loud"}, &buf)

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}
