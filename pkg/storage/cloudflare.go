package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	internalConfig "github.com/brightframe/studio-backend/internal/config"
	"go.uber.org/zap"
)

// R2Storage is a BlobStore backed by a Cloudflare R2 bucket through the S3
// API.
type R2Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *zap.Logger
}

func NewR2Storage(cfg *internalConfig.Config, log *zap.Logger) (*R2Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKeyID,
			cfg.R2.SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Storage{
		client:    client,
		bucket:    cfg.R2.Bucket,
		publicURL: strings.TrimRight(cfg.R2.PublicURL, "/"),
		log:       log.Named("r2"),
	}, nil
}

func (s *R2Storage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if size < 0 {
		buf, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("failed to read file content: %w", err)
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to upload to R2: %w", err)
	}
	s.log.Debug("uploaded", zap.String("key", key), zap.Int64("size", size))
	return nil
}

func (s *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

func (s *R2Storage) PublicURL(key string) string {
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}

var _ BlobStore = (*R2Storage)(nil)
