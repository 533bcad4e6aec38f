package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/pkg/telemetry"
)

func TestConfigEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		insecure     bool
		wantEndpoint string
		wantInsecure bool
	}{
		{"bare host keeps flag", "collector:4318", false, "collector:4318", false},
		{"http forces insecure", "http://collector:4318/", false, "collector:4318", true},
		{"https keeps flag", "https://otel.example.com", false, "otel.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{OTLPEndpoint: tt.raw, OTLPInsecure: tt.insecure}
			endpoint, insecure := cfg.endpoint()
			assert.Equal(t, tt.wantEndpoint, endpoint)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}

func TestInit_DisabledExportStillProvidesTracerAndMeter(t *testing.T) {
	cfg := DefaultConfig("roomcraft-api")
	cfg.PIILevel = "none"

	provider, err := Init(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)
	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)
	assert.Equal(t, telemetry.PIILevelNone, provider.Sanitizer.Level())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestShutdownRunsInReverseOrderAndJoinsErrors(t *testing.T) {
	var order []string
	p := &Provider{stops: []func(context.Context) error{
		func(context.Context) error { order = append(order, "tracer"); return assert.AnError },
		func(context.Context) error { order = append(order, "meter"); return nil },
	}}

	err := p.Shutdown(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"meter", "tracer"}, order)
	assert.NoError(t, p.Shutdown(context.Background()))
}
