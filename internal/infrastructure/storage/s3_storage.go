// Package storage provides the backends that hold uploaded invoice documents.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	invoiceapp "github.com/ecommerce/backend/internal/application/invoice"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultKeyPrefix is prepended to every object key
const DefaultKeyPrefix = "invoices/"

var (
	_ invoiceapp.FileStorage    = (*S3FileStorage)(nil)
	_ invoiceapp.DownloadLinker = (*S3FileStorage)(nil)
)

// S3FileStorage stores invoice documents in an S3-compatible bucket
// (AWS S3, MinIO, RustFS).
type S3FileStorage struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	region            string
	endpoint          *url.URL
	usePathStyle      bool
	keyPrefix         string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3Option configures S3FileStorage
type S3Option func(*S3FileStorage)

// WithS3Logger sets the logger
func WithS3Logger(logger *zap.Logger) S3Option {
	return func(s *S3FileStorage) {
		s.logger = logger
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix
func WithKeyPrefix(prefix string) S3Option {
	return func(s *S3FileStorage) {
		s.keyPrefix = prefix
	}
}

// NewS3FileStorage builds the S3 client from configuration.
// An empty endpoint targets AWS itself.
func NewS3FileStorage(ctx context.Context, cfg *config.StorageConfig, opts ...S3Option) (*S3FileStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	var endpoint *url.URL
	if cfg.Endpoint != "" {
		raw := cfg.Endpoint
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			if cfg.UseSSL {
				raw = "https://" + raw
			} else {
				raw = "http://" + raw
			}
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			return nil, fmt.Errorf("invalid storage endpoint %q", cfg.Endpoint)
		}
		endpoint = parsed
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != nil {
			o.BaseEndpoint = aws.String(endpoint.String())
		}
	})

	s := &S3FileStorage{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		region:            region,
		endpoint:          endpoint,
		usePathStyle:      cfg.UsePathStyle,
		keyPrefix:         DefaultKeyPrefix,
		presignExpiration: cfg.PresignExpiration,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.presignExpiration <= 0 {
		s.presignExpiration = 15 * time.Minute
	}

	return s, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *S3FileStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("creating invoice bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// UploadFile puts content under the prefixed key and returns the object URL
func (s *S3FileStorage) UploadFile(ctx context.Context, content []byte, fileName string) (string, error) {
	if err := validateFileName(fileName); err != nil {
		return "", err
	}

	ctx, span := telemetry.StartStorageSpan(ctx, DriverS3, telemetry.AttrStorageBucket.String(s.bucket))
	defer span.End()

	key := s.keyPrefix + fileName
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(http.DetectContentType(content)),
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	location := s.ObjectURL(key)
	s.logger.Debug("invoice file stored",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(content)),
	)
	return location, nil
}

// ObjectURL returns the addressable URL of key in the bucket
func (s *S3FileStorage) ObjectURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if s.endpoint == nil {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
	}
	base := strings.TrimSuffix(s.endpoint.String(), "/")
	if s.usePathStyle {
		return fmt.Sprintf("%s/%s/%s", base, s.bucket, escaped)
	}
	return fmt.Sprintf("%s://%s.%s/%s", s.endpoint.Scheme, s.bucket, s.endpoint.Host, escaped)
}

// DownloadURL presigns a GET for the object UploadFile stored at location.
// Links stay valid for storage.presign_expiration.
func (s *S3FileStorage) DownloadURL(ctx context.Context, location string) (string, time.Time, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid object location %q: %w", location, err)
	}
	fileName := path.Base(u.Path)
	if err := validateFileName(fileName); err != nil {
		return "", time.Time{}, err
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.keyPrefix + fileName),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign download: %w", err)
	}
	return req.URL, time.Now().Add(s.presignExpiration), nil
}
