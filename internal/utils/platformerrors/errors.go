package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

// RequestIDContextKey is the context key the request id middleware stores the id under.
const RequestIDContextKey contextKey = "requestID"

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// getRequestIDFromContext extracts request ID from context
func getRequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	val := ctx.Value(RequestIDContextKey)
	if requestID, ok := val.(string); ok {
		return requestID
	}
	return ""
}

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeTooManyRecords ErrorType = "TOO_MANY_RECORDS"
	ErrorTypeValidation     ErrorType = "VALIDATION"
	ErrorTypeConflict       ErrorType = "CONFLICT"
	ErrorTypeUnauthorized   ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden      ErrorType = "FORBIDDEN"
	ErrorTypeRateLimited    ErrorType = "RATE_LIMITED"
	ErrorTypeTimeout        ErrorType = "TIMEOUT"
	ErrorTypeInternal       ErrorType = "INTERNAL"
	ErrorTypeExternal       ErrorType = "EXTERNAL"
	ErrorTypeDatabaseError  ErrorType = "DATABASE_ERROR"
	ErrorTypeNotConfigured  ErrorType = "NOT_CONFIGURED"
	ErrorTypeNotImplemented ErrorType = "NOT_IMPLEMENTED"
)

// Layer represents the application layer where the error occurred
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
	LayerCommon         Layer = "common"
)

// Envelope codes rendered in the "code" field of error responses.
const (
	CodeValidationError           = "VALIDATION_ERROR"
	CodeInvalidParams             = "INVALID_PARAMS"
	CodeInvalidBody               = "INVALID_BODY"
	CodeInvalidJSON               = "INVALID_JSON"
	CodeAuthenticationRequired    = "AUTHENTICATION_REQUIRED"
	CodeForbidden                 = "FORBIDDEN"
	CodeNotFound                  = "NOT_FOUND"
	CodePayloadTooLarge           = "PAYLOAD_TOO_LARGE"
	CodeRateLimited               = "RATE_LIMITED"
	CodeOpenRouterTimeout         = "OPENROUTER_TIMEOUT"
	CodeOpenRouterAuthError       = "OPENROUTER_AUTH_ERROR"
	CodeOpenRouterRateLimit       = "OPENROUTER_RATE_LIMIT"
	CodeOpenRouterResponseInvalid = "OPENROUTER_RESPONSE_INVALID"
	CodeOpenRouterNotConfigured   = "OPENROUTER_NOT_CONFIGURED"
	CodeSupabaseNotConfigured     = "SUPABASE_NOT_CONFIGURED"
	CodeInternalError             = "INTERNAL_ERROR"
)

// PlatformError represents an error with context and metadata.
// Code and Status are optional overrides of what Type implies; Context
// doubles as the "details" object of the error envelope.
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Code      string
	Status    int
	Message   string
	Err       error
	Context   map[string]any
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s][%s] %s: %v", e.Layer, e.Type, e.UUID, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s][%s] %s", e.Layer, e.Type, e.UUID, e.Message)
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the error type
func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

// GetRequestID returns the request ID
func (e *PlatformError) GetRequestID() string {
	return e.RequestID
}

// GetUUID returns the error UUID
func (e *PlatformError) GetUUID() string {
	return e.UUID
}

// HTTPStatus returns the explicit status when set, otherwise the status implied by Type.
func (e *PlatformError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	return ErrorTypeToHTTPStatus(e.Type)
}

// EnvelopeCode returns the explicit code when set, otherwise the code implied by Type.
func (e *PlatformError) EnvelopeCode() string {
	if e.Code != "" {
		return e.Code
	}
	return ErrorTypeToCode(e.Type)
}

// WithCode sets the envelope code.
func (e *PlatformError) WithCode(code string) *PlatformError {
	e.Code = code
	return e
}

// WithStatus overrides the HTTP status implied by the error type.
func (e *PlatformError) WithStatus(status int) *PlatformError {
	e.Status = status
	return e
}

// WithDetails merges fields into the error context.
func (e *PlatformError) WithDetails(details map[string]any) *PlatformError {
	if e.Context == nil {
		e.Context = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Context[k] = v
	}
	return e
}

// NewError creates a new PlatformError with the specified parameters
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string) *PlatformError {
	return NewErrorWithContext(ctx, layer, errorType, message, err, customUUID, nil)
}

// NewErrorWithContext creates a new PlatformError with additional context fields
func NewErrorWithContext(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string, contextFields map[string]any) *PlatformError {
	requestID := getRequestIDFromContext(ctx)

	errorUUID := customUUID
	if errorUUID == "" {
		errorUUID = "auto-generated-uuid"
	}

	errorContext := make(map[string]any)
	for k, v := range contextFields {
		errorContext[k] = v
	}

	return &PlatformError{
		UUID:      errorUUID,
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: requestID,
		Layer:     layer,
		Timestamp: time.Now().UTC(),
		Context:   errorContext,
	}
}

// AsError wraps an error with layer context. A wrapped PlatformError keeps its
// type, code, status and details. When it already carries an envelope code its
// message is kept as is, since that message is meant for the client.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		msg := fmt.Sprintf("%s: %s", message, platformErr.Message)
		if platformErr.Code != "" {
			msg = platformErr.Message
		}
		wrapped := NewErrorWithContext(ctx, layer, platformErr.Type, msg, platformErr, platformErr.UUID, platformErr.Context)
		wrapped.Code = platformErr.Code
		wrapped.Status = platformErr.Status
		return wrapped
	}

	return NewError(ctx, layer, ErrorTypeInternal, message, err, "")
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeForbidden:
		return http.StatusForbidden
	case ErrorTypeNotImplemented:
		return http.StatusNotImplemented
	case ErrorTypeTooManyRecords:
		return http.StatusRequestEntityTooLarge
	case ErrorTypeRateLimited:
		return http.StatusTooManyRequests
	case ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case ErrorTypeExternal:
		return http.StatusBadGateway
	case ErrorTypeDatabaseError, ErrorTypeNotConfigured:
		return http.StatusInternalServerError
	case ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// ErrorTypeToCode maps error types to the default envelope code.
func ErrorTypeToCode(errorType ErrorType) string {
	switch errorType {
	case ErrorTypeNotFound:
		return CodeNotFound
	case ErrorTypeValidation:
		return CodeValidationError
	case ErrorTypeUnauthorized:
		return CodeAuthenticationRequired
	case ErrorTypeForbidden:
		return CodeForbidden
	case ErrorTypeTooManyRecords:
		return CodePayloadTooLarge
	case ErrorTypeRateLimited:
		return CodeRateLimited
	case ErrorTypeConflict:
		return "CONFLICT"
	default:
		return CodeInternalError
	}
}

// IsErrorType checks if an error is a PlatformError with the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}

	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type == errorType
	}

	return false
}

// LogError logs a platform error with proper structure
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_uuid", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Time("timestamp_utc", err.Timestamp)

	if err.Code != "" {
		event = event.Str("error_code", err.Code)
	}

	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}

	for k, v := range err.Context {
		event = event.Interface(k, v)
	}

	if err.Err != nil {
		event = event.Err(err.Err)
	}

	event.Msg(err.Message)
}
