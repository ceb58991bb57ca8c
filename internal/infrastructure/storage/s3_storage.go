// Package storage provides the S3 implementation of asset storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	catalogapp "github.com/glossary/backend/internal/application/catalog"
	infraconfig "github.com/glossary/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var _ catalogapp.AssetStorage = (*S3AssetStorage)(nil)

// S3AssetStorage stores term visuals and other static assets in S3 or any
// S3-compatible backend (MinIO, RustFS).
type S3AssetStorage struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3AssetStorageOption is a functional option for configuring S3AssetStorage
type S3AssetStorageOption func(*S3AssetStorage)

// WithLogger sets a custom logger for S3AssetStorage
func WithLogger(logger *zap.Logger) S3AssetStorageOption {
	return func(s *S3AssetStorage) {
		s.logger = logger
	}
}

// NewS3AssetStorage creates a new S3AssetStorage from configuration
func NewS3AssetStorage(cfg *infraconfig.StorageConfig, opts ...S3AssetStorageOption) (*S3AssetStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
			}
		}
	})

	storage := &S3AssetStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(storage)
	}
	return storage, nil
}

// EnsureBucket creates the bucket if it does not exist. Called once during
// startup.
func (s *S3AssetStorage) EnsureBucket(ctx context.Context) error {
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

	s.logger.Info("creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// another instance may have won the race
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ListFiles lists objects under the given key prefix
func (s *S3AssetStorage) ListFiles(ctx context.Context, prefix string) ([]catalogapp.AssetFile, error) {
	start := time.Now()
	var files []catalogapp.AssetFile

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.logger.Error("list objects failed",
				zap.String("prefix", prefix),
				zap.Error(err))
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			file := catalogapp.AssetFile{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			}
			if obj.LastModified != nil {
				file.LastModified = *obj.LastModified
			}
			files = append(files, file)
		}
	}

	s.logger.Debug("objects listed",
		zap.String("prefix", prefix),
		zap.Int("count", len(files)),
		zap.Duration("duration", time.Since(start)))
	return files, nil
}

// Upload stores an object with server-side encryption and version metadata
func (s *S3AssetStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(contentType),
		ServerSideEncryption: types.ServerSideEncryptionAes256,
		Metadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			"uploaded-by": "glossary-backend",
		},
	})
	if err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Info("object uploaded",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Download fetches an object's content
func (s *S3AssetStorage) Download(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("storage key is required")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("download failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return data, nil
}

// Delete removes an object
func (s *S3AssetStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete object: %w", err)
	}

	s.logger.Info("object deleted", zap.String("key", key))
	return nil
}

// FileSize returns the size of an object in bytes
func (s *S3AssetStorage) FileSize(ctx context.Context, key string) (int64, error) {
	if key == "" {
		return 0, errors.New("storage key is required")
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || strings.Contains(err.Error(), "NotFound") {
			return 0, fmt.Errorf("object %s: not found", key)
		}
		return 0, fmt.Errorf("failed to stat object: %w", err)
	}
	return aws.ToInt64(out.ContentLength), nil
}

// Bucket returns the configured bucket name
func (s *S3AssetStorage) Bucket() string {
	return s.bucket
}
