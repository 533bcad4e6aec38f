// Package validators checks path parameters and the caller identity before a
// handler runs. Failures are PlatformErrors ready for responses.HandleError.
package validators

import (
	"context"
	"regexp"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsValidUUID reports whether value is an 8-4-4-4-12 hex UUID in any case.
func IsValidUUID(value string) bool {
	return uuidPattern.MatchString(value)
}

// ValidateRoomID returns roomID when it is present and a UUID.
func ValidateRoomID(ctx context.Context, roomID string) (string, error) {
	if roomID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
			"roomId is required in the URL path.", nil, "room-id-required").
			WithCode(platformerrors.CodeValidationError)
	}
	if !IsValidUUID(roomID) {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
			"roomId must be a valid UUID.", nil, "room-id-format").
			WithCode(platformerrors.CodeValidationError)
	}
	return roomID, nil
}

// ValidateRoomIDParam is the variant used by room detail and generation
// routes, which answer INVALID_PARAMS with the failing issue.
func ValidateRoomIDParam(ctx context.Context, roomID string) (string, error) {
	if IsValidUUID(roomID) {
		return roomID, nil
	}
	issue := map[string]any{
		"code":    "invalid_string",
		"path":    []string{"roomId"},
		"message": "Invalid uuid",
	}
	if roomID == "" {
		issue["code"] = "invalid_type"
		issue["message"] = "Required"
	}
	return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"Invalid roomId path parameter.", nil, "room-id-param",
		map[string]any{"issues": []map[string]any{issue}}).
		WithCode(platformerrors.CodeInvalidParams)
}

// ValidateAuth returns userID, or AUTHENTICATION_REQUIRED when it is empty.
func ValidateAuth(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeUnauthorized,
			"Authentication is required to access this resource.", nil, "auth-required").
			WithCode(platformerrors.CodeAuthenticationRequired)
	}
	return userID, nil
}
