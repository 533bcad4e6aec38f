package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/domain/analytics"
	"github.com/roomcraft/roomcraft-server/internal/domain/inspiration"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/domain/room"
	"github.com/roomcraft/roomcraft-server/internal/domain/roomtype"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/auth"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/ratelimit"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/analyticshandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/inspirationhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/photohandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/handlers/roomhandler"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/middlewares"
	"github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/requests"
	analyticsroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/analytics"
	inspirationroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/inspiration"
	photoroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/photo"
	roomroute "github.com/roomcraft/roomcraft-server/internal/interfaces/httpserver/routes/api/room"
	"github.com/roomcraft/roomcraft-server/pkg/testhelpers"
)

const (
	secret  = "route-test-secret"
	ownerID = "user-owner"
	otherID = "user-other"
	roomID  = "4f6b1c2e-8a3d-4e5f-9b7c-0d1e2f3a4b5c"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGenerator struct{}

func (stubGenerator) GenerateRoomInspiration(_ context.Context, input inspiration.RoomInspirationInput) (*inspiration.Result, error) {
	return &inspiration.Result{RoomID: input.RoomID, BulletPoints: []string{"Add plants"}}, nil
}

func (stubGenerator) GenerateSimpleAdvice(_ context.Context, input inspiration.SimpleAdviceInput) (*inspiration.AdviceResult, error) {
	return &inspiration.AdviceResult{RoomID: input.RoomID, Advice: "Use warmer bulbs."}, nil
}

type windowCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *windowCounter) IncrWindow(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int64{}
	}
	c.counts[key]++
	return c.counts[key], nil
}

type testServer struct {
	engine *gin.Engine
	db     *testhelpers.MemoryDB
}

func newTestServer(t *testing.T, limiter *ratelimit.Limiter) *testServer {
	t.Helper()
	log := zerolog.Nop()
	db := testhelpers.NewMemoryDB()
	db.AddRoom(roomID, ownerID, 1)

	roomTypeService := roomtype.NewRoomTypeService(db.RoomTypes())
	roomService := room.NewRoomService(db.Rooms(), log)
	photoService := photo.NewPhotoService(db.Photos(), testhelpers.NewMemoryObjectStore("https://storage.test"), photo.Config{MaxPhotosPerRoom: 10}, log)
	analyticsService := analytics.NewAnalyticsService(db.Analytics(), log)

	binder := requests.NewBinderWithLimits(requests.Limits{
		AllowedContentTypes:  []string{"image/jpeg", "image/png", "image/heic"},
		DescriptionMaxLength: 500,
		PromptMaxLength:      200,
	})
	rateLimiter := middlewares.NewRateLimiter(limiter, log)

	apiRoute := NewApiRoute(
		roomroute.NewRoomRoute(roomhandler.NewRoomHandler(roomTypeService, roomService, photoService, analyticsService, log), binder),
		photoroute.NewPhotoRoute(photohandler.NewPhotoHandler(roomService, photoService, analyticsService, log), binder, rateLimiter),
		inspirationroute.NewInspirationRoute(inspirationhandler.NewInspirationHandler(
			roomService, photoService, analyticsService, stubGenerator{},
			inspirationhandler.Requirements{MinRoomPhotos: 1, MinInspirationPhotos: 2}, log,
		), binder, rateLimiter),
		analyticsroute.NewAnalyticsRoute(analyticshandler.NewAnalyticsHandler(analyticsService, log), binder),
		rateLimiter,
	)

	engine := gin.New()
	engine.Use(middlewares.RequestID(), middlewares.AuthMiddleware(auth.NewHS256Validator(secret, log), log))
	apiRoute.RegisterRouter(engine)
	return &testServer{engine: engine, db: db}
}

func (s *testServer) do(t *testing.T, method, path, userID string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := testhelpers.SignHS256(secret, userID, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func errorOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return envelope
}

func TestRoomTypesArePublic(t *testing.T) {
	s := newTestServer(t, nil)

	rec, body := s.do(t, http.MethodGet, "/api/room-types", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["roomTypes"], 3)
}

func TestProtectedRoutesRequireAuthentication(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/rooms", nil},
		{http.MethodPost, "/api/rooms", map[string]any{"roomTypeId": 1}},
		{http.MethodGet, "/api/rooms/" + roomID, nil},
		{http.MethodGet, "/api/rooms/" + roomID + "/photos", nil},
		{http.MethodPost, "/api/rooms/" + roomID + "/photos/upload-url", map[string]any{"photoType": "room", "fileName": "a.png", "contentType": "image/png"}},
		{http.MethodPost, "/api/rooms/" + roomID + "/generate", nil},
		{http.MethodPost, "/api/rooms/" + roomID + "/generate-simple", map[string]any{"description": "small and dark"}},
		{http.MethodPost, "/api/analytics/events", map[string]any{"eventType": "RoomCreated", "eventData": map[string]any{"a": 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, body := s.do(t, tt.method, tt.path, "", tt.body)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "AUTHENTICATION_REQUIRED", errorOf(t, body)["code"])
		})
	}
}

func TestCreateAndGetRoom(t *testing.T) {
	s := newTestServer(t, nil)

	rec, created := s.do(t, http.MethodPost, "/api/rooms", ownerID, map[string]any{"roomTypeId": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	rec, detail := s.do(t, http.MethodGet, "/api/rooms/"+id, ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, detail["id"])

	rec, body := s.do(t, http.MethodGet, "/api/rooms/"+id, otherID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorOf(t, body)["code"])
	assert.Equal(t, "Room not found.", errorOf(t, body)["message"])

	rec, list := s.do(t, http.MethodGet, "/api/rooms", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list["rooms"], 2)
}

func TestCreateRoomBodyErrors(t *testing.T) {
	s := newTestServer(t, nil)

	rec, body := s.do(t, http.MethodPost, "/api/rooms", ownerID, `{"roomTypeId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", errorOf(t, body)["code"])

	rec, body = s.do(t, http.MethodPost, "/api/rooms", ownerID, map[string]any{"roomTypeId": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := errorOf(t, body)
	assert.Equal(t, "VALIDATION_ERROR", envelope["code"])
	assert.Equal(t, "roomTypeId", envelope["details"].(map[string]any)["field"])

	rec, body = s.do(t, http.MethodPost, "/api/rooms", ownerID, map[string]any{"roomTypeId": 99})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorOf(t, body)["code"])
}

func TestRoomIDValidationDiffersByFamily(t *testing.T) {
	s := newTestServer(t, nil)

	rec, body := s.do(t, http.MethodGet, "/api/rooms/not-a-uuid", ownerID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := errorOf(t, body)
	assert.Equal(t, "INVALID_PARAMS", envelope["code"])
	assert.Equal(t, "Invalid roomId path parameter.", envelope["message"])

	rec, body = s.do(t, http.MethodGet, "/api/rooms/not-a-uuid/photos", ownerID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope = errorOf(t, body)
	assert.Equal(t, "VALIDATION_ERROR", envelope["code"])
	assert.Equal(t, "roomId must be a valid UUID.", envelope["message"])
}

func TestPhotoUploadFlow(t *testing.T) {
	s := newTestServer(t, nil)
	base := "/api/rooms/" + roomID + "/photos"

	rec, upload := s.do(t, http.MethodPost, base+"/upload-url", ownerID, map[string]any{
		"photoType":   "inspiration",
		"fileName":    "moodboard.jpg",
		"contentType": "image/jpeg",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, upload["photoId"])

	rec, confirmed := s.do(t, http.MethodPost, base, ownerID, map[string]any{
		"photoId":     upload["photoId"],
		"storagePath": upload["storagePath"],
		"photoType":   "inspiration",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, upload["photoId"], confirmed["id"])

	rec, list := s.do(t, http.MethodGet, base+"?photoType=inspiration", ownerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, list["photos"], 1)
	assert.Equal(t, float64(1), list["counts"].(map[string]any)["inspiration"])

	rec, body := s.do(t, http.MethodGet, base, otherID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room not found.", errorOf(t, body)["message"])
}

func TestGenerateRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	base := "/api/rooms/" + roomID

	rec, body := s.do(t, http.MethodPost, base+"/generate", ownerID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "At least one room photo is required.", errorOf(t, body)["message"])

	s.db.AddPhoto(photo.Photo{ID: "r1", RoomID: roomID, PhotoType: photo.PhotoTypeRoom, StoragePath: "r1.jpg"})
	s.db.AddPhoto(photo.Photo{ID: "i1", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "i1.jpg"})
	s.db.AddPhoto(photo.Photo{ID: "i2", RoomID: roomID, PhotoType: photo.PhotoTypeInspiration, StoragePath: "i2.jpg"})

	rec, body = s.do(t, http.MethodPost, base+"/generate", ownerID, map[string]any{"prompt": "cozy"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, roomID, body["roomId"])
	assert.Equal(t, []any{"Add plants"}, body["bulletPoints"])

	rec, body = s.do(t, http.MethodPost, base+"/generate-simple", ownerID, map[string]any{"description": "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_BODY", errorOf(t, body)["code"])

	rec, body = s.do(t, http.MethodPost, base+"/generate-simple", ownerID, map[string]any{"description": "north facing"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Use warmer bulbs.", body["advice"])

	rec, body = s.do(t, http.MethodPost, base+"/generate-simple", otherID, map[string]any{"description": "north facing"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", errorOf(t, body)["code"])
}

func TestGenerateIsRateLimited(t *testing.T) {
	limiter := ratelimit.NewLimiter(&windowCounter{}, time.Hour, map[string]int{
		ratelimit.BucketGenerate: 1,
		ratelimit.BucketGeneral:  100,
	})
	s := newTestServer(t, limiter)
	path := "/api/rooms/" + roomID + "/generate-simple"

	rec, _ := s.do(t, http.MethodPost, path, ownerID, map[string]any{"description": "bright"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := s.do(t, http.MethodPost, path, ownerID, map[string]any{"description": "bright"})
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", errorOf(t, body)["code"])

	rec, _ = s.do(t, http.MethodGet, "/api/rooms", ownerID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrackEvent(t *testing.T) {
	s := newTestServer(t, nil)

	rec, body := s.do(t, http.MethodPost, "/api/analytics/events", ownerID, map[string]any{
		"eventType": "InspirationGenerated",
		"eventData": map[string]any{"roomId": roomID},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Event tracked successfully", body["message"])
	assert.NotEmpty(t, body["eventId"])
	require.Len(t, s.db.Events(), 1)
}
