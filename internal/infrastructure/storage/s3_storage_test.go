package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

func testConfig(endpoint string) *config.Config {
	return &config.Config{
		S3Endpoint:       endpoint,
		S3Region:         "us-east-1",
		S3Bucket:         "room-photos",
		S3AccessKeyID:    "test-access",
		S3SecretKey:      "test-secret",
		S3UsePathStyle:   true,
		S3PresignTTL:     time.Hour,
		AllowedMIMETypes: []string{"image/jpeg", "image/png"},
	}
}

func TestS3Storage_DisabledWithoutCredentials(t *testing.T) {
	cfg := testConfig("")
	cfg.S3AccessKeyID = ""

	s, err := NewS3Storage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.NoError(t, s.Health(context.Background()))

	_, err = s.PresignUpload(context.Background(), "rooms/a/b.jpg", "image/jpeg")
	require.Error(t, err)

	var platformErr *platformerrors.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, platformerrors.CodeSupabaseNotConfigured, platformErr.EnvelopeCode())
	assert.Equal(t, http.StatusInternalServerError, platformErr.HTTPStatus())
	assert.Equal(t, "Supabase client is not configured.", platformErr.Message)

	_, err = s.PresignDownload(context.Background(), "rooms/a/b.jpg")
	assert.Error(t, err)
	_, err = s.Exists(context.Background(), "rooms/a/b.jpg")
	assert.Error(t, err)
}

func TestS3Storage_PresignUploadRejectsContentType(t *testing.T) {
	s, err := NewS3Storage(context.Background(), testConfig("http://127.0.0.1:1"), zerolog.Nop())
	require.NoError(t, err)

	_, err = s.PresignUpload(context.Background(), "rooms/a/b.gif", "image/gif")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestS3Storage_PresignUploadEnsuresBucketOnce(t *testing.T) {
	var heads atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && r.URL.Path == "/room-photos" {
			heads.Add(1)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotImplemented)
	}))
	defer srv.Close()

	s, err := NewS3Storage(context.Background(), testConfig(srv.URL), zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		raw, err := s.PresignUpload(context.Background(), "rooms/r1/room/123_abc.jpg", "image/jpeg")
		require.NoError(t, err)

		signed, err := url.Parse(raw)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(raw, srv.URL))
		assert.Equal(t, "/room-photos/rooms/r1/room/123_abc.jpg", signed.Path)
		assert.NotEmpty(t, signed.Query().Get("X-Amz-Signature"))
		assert.Equal(t, "3600", signed.Query().Get("X-Amz-Expires"))
		assert.Contains(t, signed.Query().Get("X-Amz-SignedHeaders"), "content-type")
	}
	assert.Equal(t, int32(1), heads.Load())
}

func TestS3Storage_PresignDownloadUsesPublicEndpoint(t *testing.T) {
	cfg := testConfig("http://minio:9000")
	cfg.S3PublicEndpoint = "https://cdn.example.com"

	s, err := NewS3Storage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	raw, err := s.PresignDownload(context.Background(), "rooms/r1/room/123_abc.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "https://cdn.example.com/room-photos/rooms/r1/room/123_abc.jpg?"))
}

func TestS3Storage_Exists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/room-photos/present.jpg":
			w.WriteHeader(http.StatusOK)
		case "/room-photos/missing.jpg":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	s, err := NewS3Storage(context.Background(), testConfig(srv.URL), zerolog.Nop())
	require.NoError(t, err)

	ok, err := s.Exists(context.Background(), "present.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(context.Background(), "missing.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Exists(context.Background(), "denied.jpg")
	assert.Error(t, err)
}

func TestS3Storage_ExistsRemovesOversizedObject(t *testing.T) {
	var deleted atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/room-photos/big.jpg":
			w.Header().Set("Content-Length", "2097152")
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodHead && r.URL.Path == "/room-photos/small.jpg":
			w.Header().Set("Content-Length", "1024")
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete:
			deleted.Store(r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxFileSizeMB = 1
	s, err := NewS3Storage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	ok, err := s.Exists(context.Background(), "small.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, deleted.Load())

	ok, err = s.Exists(context.Background(), "big.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "/room-photos/big.jpg", deleted.Load())
}
