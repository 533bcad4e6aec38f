package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/metrics"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

var _ photo.ObjectStore = (*S3Storage)(nil)

// S3Storage signs upload and download URLs against an S3-compatible bucket.
type S3Storage struct {
	bucket       string
	region       string
	client       *s3.Client
	presigner    *s3.PresignClient
	ttl          time.Duration
	allowedTypes []string
	maxBytes     int64
	log          zerolog.Logger
	disabled     bool

	ensureMu sync.Mutex
	ensured  bool
}

func NewS3Storage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Storage, error) {
	logger := log.With().Str("component", "s3-storage").Logger()
	storage := &S3Storage{
		bucket:       strings.TrimSpace(cfg.S3Bucket),
		region:       cfg.S3Region,
		ttl:          cfg.S3PresignTTL,
		allowedTypes: cfg.AllowedMIMETypes,
		maxBytes:     cfg.MaxFileSizeBytes(),
		log:          logger,
	}
	if storage.ttl <= 0 {
		storage.ttl = time.Hour
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if storage.bucket == "" || accessKey == "" || secretKey == "" {
		logger.Warn().Msg("STORAGE_S3_BUCKET or credentials are not set; photo endpoints will fail until configured")
		storage.disabled = true
		return storage, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	storage.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	// Browsers reach the bucket through the public endpoint, so URLs are
	// signed for that host when it differs from the internal one.
	signingClient := storage.client
	if cfg.S3PublicEndpoint != "" && cfg.S3PublicEndpoint != cfg.S3Endpoint {
		signingClient = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3PublicEndpoint)
			o.UsePathStyle = cfg.S3UsePathStyle
		})
	}
	storage.presigner = s3.NewPresignClient(signingClient)
	return storage, nil
}

func (s *S3Storage) ensureEnabled(ctx context.Context) error {
	if s.disabled {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeNotConfigured,
			"Supabase client is not configured.", nil, "storage-not-configured").
			WithCode(platformerrors.CodeSupabaseNotConfigured)
	}
	return nil
}

// ensureBucket creates the bucket on first use and blocks public access to it.
// A failed attempt is retried on the next call.
func (s *S3Storage) ensureBucket(ctx context.Context) error {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()
	if s.ensured {
		return nil
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		s.ensured = true
		return nil
	}
	if !isNotFound(err) {
		metrics.RecordStorageOperation("head_bucket", "error")
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if !errors.As(err, &owned) {
			metrics.RecordStorageOperation("create_bucket", "error")
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	metrics.RecordStorageOperation("create_bucket", "success")

	_, err = s.client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(s.bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(true),
			BlockPublicPolicy:     aws.Bool(true),
			IgnorePublicAcls:      aws.Bool(true),
			RestrictPublicBuckets: aws.Bool(true),
		},
	})
	if err != nil {
		// Several S3-compatible stores do not implement this call.
		s.log.Warn().Err(err).Str("bucket", s.bucket).Msg("could not block public access on bucket")
	}

	s.log.Info().Str("bucket", s.bucket).Msg("created photo bucket")
	s.ensured = true
	return nil
}

// PresignUpload signs a PUT URL bound to contentType.
func (s *S3Storage) PresignUpload(ctx context.Context, storagePath, contentType string) (string, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return "", err
	}
	if len(s.allowedTypes) > 0 && !slices.Contains(s.allowedTypes, contentType) {
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
			"contentType is not allowed.", nil, "storage-content-type",
			map[string]any{"providedValue": contentType, "allowedValues": s.allowedTypes})
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storagePath),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	metrics.RecordPresign("put", time.Since(start).Seconds())
	if err != nil {
		metrics.RecordStorageOperation("presign_put", "error")
		return "", fmt.Errorf("presign put %s: %w", storagePath, err)
	}
	metrics.RecordStorageOperation("presign_put", "success")
	return req.URL, nil
}

// PresignDownload signs a GET URL valid for the configured TTL.
func (s *S3Storage) PresignDownload(ctx context.Context, storagePath string) (string, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(s.ttl))
	metrics.RecordPresign("get", time.Since(start).Seconds())
	if err != nil {
		metrics.RecordStorageOperation("presign_get", "error")
		return "", fmt.Errorf("presign get %s: %w", storagePath, err)
	}
	metrics.RecordStorageOperation("presign_get", "success")
	return req.URL, nil
}

// Exists reports whether a usable object has been uploaded. A presigned PUT
// cannot cap the body size, so an object above MAX_FILE_SIZE_MB is deleted here
// and reported missing, which lets the sweeper drop its pending row.
func (s *S3Storage) Exists(ctx context.Context, storagePath string) (bool, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return false, err
	}
	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	})
	if err != nil {
		if isNotFound(err) {
			metrics.RecordStorageOperation("head_object", "missing")
			return false, nil
		}
		metrics.RecordStorageOperation("head_object", "error")
		return false, fmt.Errorf("head object %s: %w", storagePath, err)
	}

	size := aws.ToInt64(head.ContentLength)
	if s.maxBytes > 0 && size > s.maxBytes {
		metrics.RecordStorageOperation("head_object", "oversized")
		if err := s.Delete(ctx, storagePath); err != nil {
			return false, err
		}
		s.log.Warn().
			Str("storage_path", storagePath).
			Int64("size", size).
			Int64("max_size", s.maxBytes).
			Msg("removed object above the upload size limit")
		return false, nil
	}
	metrics.RecordStorageOperation("head_object", "success")
	return true, nil
}

// Delete removes the object. A missing object is not an error.
func (s *S3Storage) Delete(ctx context.Context, storagePath string) error {
	if err := s.ensureEnabled(ctx); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	})
	if err != nil && !isNotFound(err) {
		metrics.RecordStorageOperation("delete_object", "error")
		return fmt.Errorf("delete object %s: %w", storagePath, err)
	}
	metrics.RecordStorageOperation("delete_object", "success")
	return nil
}

// Enabled reports whether credentials and a bucket are configured.
func (s *S3Storage) Enabled() bool {
	return !s.disabled
}

// Health performs a simple HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	if s.disabled {
		return nil
	}
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	var noSuchKey *types.NoSuchKey
	return errors.As(err, &notFound) || errors.As(err, &noSuchBucket) || errors.As(err, &noSuchKey)
}
