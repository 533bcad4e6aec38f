package requests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

func testBinder() *Binder {
	return NewBinderWithLimits(Limits{
		AllowedContentTypes:  []string{"image/jpeg", "image/png", "image/heic"},
		DescriptionMaxLength: 500,
		PromptMaxLength:      200,
	})
}

func testContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func platformErr(t *testing.T, err error) *platformerrors.PlatformError {
	t.Helper()
	var perr *platformerrors.PlatformError
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestBindJSONValid(t *testing.T) {
	var req UploadURLRequest
	err := testBinder().BindJSON(testContext(`{"photoType":"room","fileName":"kitchen.jpg","contentType":"image/png"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "room", req.PhotoType)
	assert.Equal(t, "kitchen.jpg", req.FileName)
}

func TestBindJSONMalformed(t *testing.T) {
	var req CreateRoomRequest
	err := testBinder().BindJSON(testContext(`{"roomTypeId":`), &req)

	perr := platformErr(t, err)
	assert.Equal(t, "INVALID_JSON", perr.EnvelopeCode())
	assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
	assert.Equal(t, "Request body must be valid JSON.", perr.Message)
	assert.NotEmpty(t, perr.Context["message"])
}

func TestBindJSONEmptyBodyIsInvalidJSON(t *testing.T) {
	var req CreateRoomRequest
	err := testBinder().BindJSON(testContext(""), &req)
	assert.Equal(t, "INVALID_JSON", platformErr(t, err).EnvelopeCode())
}

func TestBindJSONValidationIssues(t *testing.T) {
	tests := []struct {
		name    string
		dst     any
		body    string
		field   string
		message string
	}{
		{"missing room type", &CreateRoomRequest{}, `{}`, "roomTypeId", "roomTypeId is required"},
		{"negative room type", &CreateRoomRequest{}, `{"roomTypeId":-3}`, "roomTypeId", "roomTypeId must be a positive integer"},
		{"room type wrong type", &CreateRoomRequest{}, `{"roomTypeId":"abc"}`, "roomTypeId", "roomTypeId must be of type number"},
		{"bad photo type", &UploadURLRequest{}, `{"photoType":"garage","fileName":"a.jpg","contentType":"image/png"}`, "photoType", "photoType must be 'room' or 'inspiration'"},
		{"bad content type", &UploadURLRequest{}, `{"photoType":"room","fileName":"a.gif","contentType":"image/gif"}`, "contentType", "contentType must be one of: image/jpeg, image/png, image/heic"},
		{"file name too long", &UploadURLRequest{}, `{"photoType":"room","fileName":"` + strings.Repeat("a", 256) + `","contentType":"image/png"}`, "fileName", "fileName must not exceed 255 characters"},
		{"photo id not uuid", &ConfirmPhotoRequest{}, `{"photoId":"x","storagePath":"p","photoType":"room"}`, "photoId", "photoId must be a valid UUID"},
		{"blank storage path", &ConfirmPhotoRequest{}, `{"photoId":"7D3C4B1E-2F1A-4C7D-9E3B-1A2B3C4D5E6F","storagePath":"  ","photoType":"room"}`, "storagePath", "storagePath is required"},
		{"description too long", &ConfirmPhotoRequest{}, `{"photoId":"7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f","storagePath":"p","photoType":"room","description":"` + strings.Repeat("ą", 501) + `"}`, "description", "description must not exceed 500 characters"},
		{"empty event data", &TrackEventRequest{}, `{"eventType":"RoomCreated","eventData":{}}`, "eventData", "eventData must contain at least one property"},
		{"event data array", &TrackEventRequest{}, `{"eventType":"RoomCreated","eventData":[1]}`, "eventData", "eventData must be of type object"},
		{"event type too long", &TrackEventRequest{}, `{"eventType":"` + strings.Repeat("e", 101) + `","eventData":{"a":1}}`, "eventType", "eventType must not exceed 100 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testBinder().BindJSON(testContext(tt.body), tt.dst)

			perr := platformErr(t, err)
			assert.Equal(t, "VALIDATION_ERROR", perr.EnvelopeCode())
			assert.Equal(t, http.StatusBadRequest, perr.HTTPStatus())
			assert.Equal(t, tt.message, perr.Message)
			assert.Equal(t, tt.field, perr.Context["field"])
			assert.NotEmpty(t, perr.Context["issues"])
		})
	}
}

func TestBindJSONDescriptionCountsRunes(t *testing.T) {
	var req ConfirmPhotoRequest
	body := `{"photoId":"7d3c4b1e-2f1a-4c7d-9e3b-1a2b3c4d5e6f","storagePath":"p","photoType":"inspiration","description":"` + strings.Repeat("ą", 500) + `"}`
	require.NoError(t, testBinder().BindJSON(testContext(body), &req))
	require.NotNil(t, req.Description)
}

func TestBindGenerationJSON(t *testing.T) {
	t.Run("empty body accepted", func(t *testing.T) {
		var req GenerateInspirationRequest
		require.NoError(t, testBinder().BindGenerationJSON(testContext(""), &req, true))
		assert.Nil(t, req.Prompt)
	})

	t.Run("prompt too long", func(t *testing.T) {
		var req GenerateInspirationRequest
		err := testBinder().BindGenerationJSON(testContext(`{"prompt":"`+strings.Repeat("p", 201)+`"}`), &req, true)

		perr := platformErr(t, err)
		assert.Equal(t, "INVALID_BODY", perr.EnvelopeCode())
		assert.Equal(t, "Request body validation failed.", perr.Message)
		issues, ok := perr.Context["issues"].([]Issue)
		require.True(t, ok)
		require.Len(t, issues, 1)
		assert.Equal(t, []string{"prompt"}, issues[0].Path)
		assert.Equal(t, "prompt_len", issues[0].Code)
	})

	t.Run("blank description", func(t *testing.T) {
		var req GenerateSimpleAdviceRequest
		err := testBinder().BindGenerationJSON(testContext(`{"description":"   "}`), &req, false)
		assert.Equal(t, "INVALID_BODY", platformErr(t, err).EnvelopeCode())
	})

	t.Run("empty body rejected when required", func(t *testing.T) {
		var req GenerateSimpleAdviceRequest
		err := testBinder().BindGenerationJSON(testContext(""), &req, false)
		assert.Equal(t, "INVALID_JSON", platformErr(t, err).EnvelopeCode())
	})

	t.Run("malformed json", func(t *testing.T) {
		var req GenerateInspirationRequest
		err := testBinder().BindGenerationJSON(testContext(`{"prompt":`), &req, true)
		assert.Equal(t, "INVALID_JSON", platformErr(t, err).EnvelopeCode())
	})
}

func TestMustRegisterPanicsOnInvalidTag(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() {
		mustRegister(v, "", func(validator.FieldLevel) bool { return true })
	})
	assert.NotPanics(t, func() {
		mustRegister(v, "always", func(validator.FieldLevel) bool { return true })
	})
}
