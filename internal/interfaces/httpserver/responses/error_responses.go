package responses

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorResponse is the envelope every failed request is answered with.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine readable code and optional details.
type ErrorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// JSON writes payload with the given status.
func JSON(reqCtx *gin.Context, status int, payload any) {
	reqCtx.JSON(status, payload)
}

// Error aborts the request with the error envelope.
func Error(reqCtx *gin.Context, status int, code, message string, details map[string]any) {
	if len(details) == 0 {
		details = nil
	}
	reqCtx.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(timestampLayout),
		},
	})
}

// ===============================================
// Common errors
// ===============================================

func SupabaseNotConfigured(reqCtx *gin.Context) {
	Error(reqCtx, http.StatusInternalServerError, platformerrors.CodeSupabaseNotConfigured, "Supabase client is not configured.", nil)
}

func AuthenticationRequired(reqCtx *gin.Context) {
	Error(reqCtx, http.StatusUnauthorized, platformerrors.CodeAuthenticationRequired, "Authentication is required to access this resource.", nil)
}

func RoomNotFound(reqCtx *gin.Context) {
	Error(reqCtx, http.StatusNotFound, platformerrors.CodeNotFound, "Room not found.", nil)
}

// Forbidden defaults to the room ownership message when message is empty.
func Forbidden(reqCtx *gin.Context, message string) {
	if message == "" {
		message = "User does not own this room."
	}
	Error(reqCtx, http.StatusForbidden, platformerrors.CodeForbidden, message, nil)
}

func InvalidJSON(reqCtx *gin.Context, err error) {
	Error(reqCtx, http.StatusBadRequest, platformerrors.CodeInvalidJSON, "Request body must be valid JSON.", map[string]any{
		"message": messageOf(err, "Invalid JSON"),
	})
}

func InternalError(reqCtx *gin.Context, message string, err error) {
	Error(reqCtx, http.StatusInternalServerError, platformerrors.CodeInternalError, message, map[string]any{
		"message": messageOf(err, "Unknown error"),
	})
}

// HandleError renders err as the error envelope. A PlatformError carrying a
// code, or a client error, is rendered with its own status, code, message and
// details. Anything else becomes INTERNAL_ERROR with fallbackMessage and the
// underlying cause in details.message.
func HandleError(reqCtx *gin.Context, err error, fallbackMessage string) {
	_ = reqCtx.Error(err)

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		InternalError(reqCtx, fallbackMessage, err)
		return
	}

	status := platformErr.HTTPStatus()
	if platformErr.Code == "" && status >= http.StatusInternalServerError {
		Error(reqCtx, http.StatusInternalServerError, platformerrors.CodeInternalError, fallbackMessage, map[string]any{
			"message": causeMessage(platformErr),
		})
		return
	}

	message := platformErr.Message
	if message == "" {
		message = fallbackMessage
	}
	Error(reqCtx, status, platformErr.EnvelopeCode(), message, platformErr.Context)
}

// causeMessage returns the first non-platform error under a chain of
// PlatformErrors, or the innermost platform message when there is none.
func causeMessage(platformErr *platformerrors.PlatformError) string {
	current := platformErr
	for {
		if current.Err == nil {
			return current.Message
		}
		var next *platformerrors.PlatformError
		if !errors.As(current.Err, &next) {
			return current.Err.Error()
		}
		current = next
	}
}

func messageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}
