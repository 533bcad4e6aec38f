package requests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/validators"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

const maxBodyBytes = 1 << 20

// Limits parameterizes the custom validation tags.
type Limits struct {
	AllowedContentTypes  []string
	DescriptionMaxLength int
	PromptMaxLength      int
}

// LimitsFromConfig reads the request limits from the service configuration.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		AllowedContentTypes:  cfg.AllowedMIMETypes,
		DescriptionMaxLength: cfg.PhotoDescriptionMaxLength,
		PromptMaxLength:      cfg.InspirationPromptMaxLen,
	}
}

// Issue describes one failed field check.
type Issue struct {
	Code    string   `json:"code"`
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// Binder decodes JSON bodies and validates them with the custom tags
// photo_type, content_type, description_len, prompt_len, anyuuid and notblank.
type Binder struct {
	validate *validator.Validate
	limits   Limits
}

func NewBinder(cfg *config.Config) *Binder {
	return NewBinderWithLimits(LimitsFromConfig(cfg))
}

func NewBinderWithLimits(limits Limits) *Binder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "photo_type", func(fl validator.FieldLevel) bool {
		return photo.PhotoType(fl.Field().String()).IsValid()
	})
	mustRegister(v, "content_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(limits.AllowedContentTypes, fl.Field().String())
	})
	mustRegister(v, "description_len", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= limits.DescriptionMaxLength
	})
	mustRegister(v, "prompt_len", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= limits.PromptMaxLength
	})
	mustRegister(v, "anyuuid", func(fl validator.FieldLevel) bool {
		return validators.IsValidUUID(fl.Field().String())
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Binder{validate: v, limits: limits}
}

// mustRegister panics when a custom tag cannot be registered, so a bad tag
// fails at startup instead of silently skipping the check.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// BindJSON decodes and validates the body. A failed check is answered with
// VALIDATION_ERROR carrying the first issue's message, its field and all issues.
func (b *Binder) BindJSON(reqCtx *gin.Context, dst any) error {
	issues, err := b.decodeAndValidate(reqCtx, dst, false)
	if err != nil || len(issues) == 0 {
		return err
	}
	first := issues[0]
	return platformerrors.NewErrorWithContext(reqCtx.Request.Context(), platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		first.Message, nil, "request-validation",
		map[string]any{"field": strings.Join(first.Path, "."), "issues": issues}).
		WithCode(platformerrors.CodeValidationError)
}

// BindGenerationJSON is used by the generation routes, which answer a failed
// check with INVALID_BODY. An empty body decodes to the zero value when
// allowEmpty is set.
func (b *Binder) BindGenerationJSON(reqCtx *gin.Context, dst any, allowEmpty bool) error {
	issues, err := b.decodeAndValidate(reqCtx, dst, allowEmpty)
	if err != nil || len(issues) == 0 {
		return err
	}
	return platformerrors.NewErrorWithContext(reqCtx.Request.Context(), platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"Request body validation failed.", nil, "request-invalid-body",
		map[string]any{"issues": issues}).
		WithCode(platformerrors.CodeInvalidBody)
}

// ValidateStruct runs the tag checks on an already populated value.
func (b *Binder) ValidateStruct(value any) []Issue {
	err := b.validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Code: "custom", Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, Issue{
			Code:    fe.Tag(),
			Path:    fieldPath(fe),
			Message: b.issueMessage(fe),
		})
	}
	return issues
}

func (b *Binder) decodeAndValidate(reqCtx *gin.Context, dst any, allowEmpty bool) ([]Issue, error) {
	var raw []byte
	if reqCtx.Request.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(reqCtx.Writer, reqCtx.Request.Body, maxBodyBytes))
		if err != nil {
			return nil, invalidJSON(reqCtx, err)
		}
		raw = body
	}

	if len(bytes.TrimSpace(raw)) == 0 && allowEmpty {
		return b.ValidateStruct(dst), nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return []Issue{typeIssue(typeErr)}, nil
		}
		return nil, invalidJSON(reqCtx, err)
	}
	return b.ValidateStruct(dst), nil
}

func invalidJSON(reqCtx *gin.Context, err error) error {
	return platformerrors.NewErrorWithContext(reqCtx.Request.Context(), platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"Request body must be valid JSON.", err, "request-invalid-json",
		map[string]any{"message": err.Error()}).
		WithCode(platformerrors.CodeInvalidJSON)
}

func (b *Binder) issueMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "photo_type":
		return field + " must be 'room' or 'inspiration'"
	case "content_type":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(b.limits.AllowedContentTypes, ", "))
	case "description_len":
		return fmt.Sprintf("%s must not exceed %d characters", field, b.limits.DescriptionMaxLength)
	case "prompt_len":
		return fmt.Sprintf("%s must not exceed %d characters", field, b.limits.PromptMaxLength)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Map {
			return field + " must contain at least one property"
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return field + " must be a positive integer"
	case "anyuuid":
		return field + " must be a valid UUID"
	default:
		return field + " is invalid"
	}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) []string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return parts
}

func typeIssue(typeErr *json.UnmarshalTypeError) Issue {
	if typeErr.Field == "" {
		return Issue{Code: "invalid_type", Path: []string{}, Message: "Request body must be a JSON object"}
	}
	path := strings.Split(typeErr.Field, ".")
	return Issue{
		Code:    "invalid_type",
		Path:    path,
		Message: fmt.Sprintf("%s must be of type %s", path[len(path)-1], jsonTypeName(typeErr.Type)),
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}
