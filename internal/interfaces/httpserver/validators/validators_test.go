package validators

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f", true},
		{"7D3C4B1E-2F1A-4C7D-9E3B-1A2B3C4D5E6F", true},
		{"7d3c4b1e2f1a4c7d9e3b1a2b3c4d5e6f", false},
		{"7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6", false},
		{"zd3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f", false},
		{" 7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidUUID(tt.value), tt.value)
	}
}

func TestValidateRoomID(t *testing.T) {
	ctx := context.Background()

	id, err := ValidateRoomID(ctx, "7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f")
	require.NoError(t, err)
	assert.Equal(t, "7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f", id)

	tests := []struct {
		raw     string
		message string
	}{
		{"", "roomId is required in the URL path."},
		{"not-a-uuid", "roomId must be a valid UUID."},
	}
	for _, tt := range tests {
		_, err := ValidateRoomID(ctx, tt.raw)
		var perr *platformerrors.PlatformError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
		assert.Equal(t, "VALIDATION_ERROR", perr.EnvelopeCode())
		assert.Equal(t, tt.message, perr.Message)
	}
}

func TestValidateRoomIDParam(t *testing.T) {
	_, err := ValidateRoomIDParam(context.Background(), "abc")

	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
	assert.Equal(t, "INVALID_PARAMS", perr.EnvelopeCode())
	assert.Equal(t, "Invalid roomId path parameter.", perr.Message)
	assert.Len(t, perr.Context["issues"], 1)
}

func TestValidateAuth(t *testing.T) {
	id, err := ValidateAuth(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = ValidateAuth(context.Background(), "")
	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.HTTPStatus())
	assert.Equal(t, "AUTHENTICATION_REQUIRED", perr.EnvelopeCode())
}
