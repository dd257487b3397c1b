// Package storage keeps listing image bytes in MinIO; only image metadata
// lives in the database.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"shopkeeper/internal/logger"
)

// ImageStore stores and retrieves listing image objects
type ImageStore struct {
	client *minio.Client
	bucket string
}

// Options configures the image store connection
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewImageStore connects to MinIO and ensures the bucket exists
func NewImageStore(ctx context.Context, opts Options) (*ImageStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", opts.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, opts.Bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: %w", opts.Bucket, err)
		}
	}

	logger.Infof("Image store ready (bucket %s)", opts.Bucket)
	return &ImageStore{client: client, bucket: opts.Bucket}, nil
}

// Upload stores an image object and returns its generated object key. The
// original filename only contributes its extension.
func (s *ImageStore) Upload(ctx context.Context, originalFilename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("images/%s%s", uuid.New().String(), filepath.Ext(originalFilename))

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return key, nil
}

// Get opens the stored object for reading
func (s *ImageStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return obj, nil
}
