// Package storage provides object storage implementations for archiving audit records.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	sellerapp "github.com/venta/backend/internal/application/seller"
	infraconfig "github.com/venta/backend/internal/infrastructure/config"
)

// Ensure S3AuditArchive implements AuditSink
var _ sellerapp.AuditSink = (*S3AuditArchive)(nil)

// S3AuditArchive stores seller audit records as JSON objects in S3.
// It is compatible with any S3-compatible storage (AWS S3, RustFS, MinIO, etc.)
type S3AuditArchive struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// S3AuditArchiveOption is a functional option for configuring S3AuditArchive
type S3AuditArchiveOption func(*S3AuditArchive)

// WithLogger sets a custom logger for S3AuditArchive
func WithLogger(logger *zap.Logger) S3AuditArchiveOption {
	return func(a *S3AuditArchive) {
		a.logger = logger
	}
}

// NewS3AuditArchive creates a new S3AuditArchive from configuration.
// When no access key is configured the default AWS credential chain is used.
func NewS3AuditArchive(cfg *infraconfig.AuditConfig, opts ...S3AuditArchiveOption) (*S3AuditArchive, error) {
	if cfg == nil {
		return nil, errors.New("audit configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("audit bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("audit access key and secret key must be set together")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (not used for static credentials)
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	var endpoint string
	if cfg.Endpoint != "" {
		endpoint = cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid audit endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	archive := &S3AuditArchive{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(archive)
	}
	return archive, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup to ensure the bucket is ready.
func (a *S3AuditArchive) EnsureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	a.logger.Info("Creating audit bucket", zap.String("bucket", a.bucket))
	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		// Ignore "BucketAlreadyOwnedByYou" error (race condition)
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Record uploads the audit record as a JSON object
func (a *S3AuditArchive) Record(ctx context.Context, record sellerapp.AuditRecord) error {
	if record.EventID == "" {
		return errors.New("audit record has no event id")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode audit record: %w", err)
	}

	key := a.ObjectKey(record)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload audit record: %w", err)
	}

	a.logger.Debug("audit record archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
	)
	return nil
}

// ObjectKey returns the storage key of a record:
// {prefix}/{yyyy}/{mm}/{dd}/seller-{id}/{event id}.json
func (a *S3AuditArchive) ObjectKey(record sellerapp.AuditRecord) string {
	key := fmt.Sprintf("%s/seller-%d/%s.json",
		record.OccurredAt.UTC().Format("2006/01/02"), record.SellerID, record.EventID)
	if a.prefix == "" {
		return key
	}
	return a.prefix + "/" + key
}

// GetBucket returns the bucket name
func (a *S3AuditArchive) GetBucket() string {
	return a.bucket
}
