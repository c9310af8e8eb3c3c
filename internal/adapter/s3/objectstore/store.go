package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"gitlab.com/hirecode-2025.net/internal/core/ports/primary"
	"gitlab.com/hirecode-2025.net/internal/core/ports/secondary"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

var _ secondary.ObjectStore = (*S3Store)(nil)

// s3API is the part of the s3 client the store needs
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store implements the ObjectStore interface with a single S3 bucket
type S3Store struct {
	client s3API
	bucket string
	logger primary.Logger
}

// NewS3Store creates a new S3 object store
func NewS3Store(client s3API, bucket string, logger primary.Logger) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Upload puts obj into the bucket, encrypted at rest
func (s *S3Store) Upload(ctx context.Context, obj *domain.StoredObject) (*domain.ObjectLocation, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(obj.Key),
		Body:                 strings.NewReader(obj.Body),
		ContentType:          aws.String(obj.ContentType),
		Metadata:             obj.Metadata,
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		s.logger.Error("Failed to upload object", "key", obj.Key, "error", err)
		return nil, fmt.Errorf("failed to upload %s: %w", obj.Key, err)
	}

	return &domain.ObjectLocation{
		Key: obj.Key,
		URL: fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, obj.Key),
	}, nil
}

// Fetch returns the object text, or nil when the key does not exist
func (s *S3Store) Fetch(ctx context.Context, key string) (*string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	text := string(data)
	return &text, nil
}

// ListKeys lists every key under prefix, following continuation tokens
func (s *S3Store) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}
