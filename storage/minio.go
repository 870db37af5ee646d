package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/pixshare/image-service/log"
)

const defaultContentType = "application/octet-stream"

// ClientMinio is the subset of the minio client used by the gateway.
type ClientMinio interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioObjectStore puts and deletes image blobs in a single bucket and
// derives the public URL of an uploaded object from a configured base URL.
type MinioObjectStore struct {
	bucket    string
	publicURL string
	client    ClientMinio
}

func NewMinioObjectStore(endpoint, accessKeyID, secretAccessKey, bucket, publicURL string, useSSL bool) (*MinioObjectStore, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("fail to create minio client: %w", err)
	}

	return &MinioObjectStore{
		bucket:    bucket,
		publicURL: publicURL,
		client:    minioClient,
	}, nil
}

// Upload stores an object under the given key and returns its public URL.
func (s *MinioObjectStore) Upload(ctx context.Context, key string, object io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, object, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("fail to upload object %s: %w", key, err)
	}

	log.Debug("object uploaded", log.SourceObjectStore, zap.String("key", key))
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Delete removes an object. Callers on the compensation path treat a failure
// here as best-effort.
func (s *MinioObjectStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("fail to remove object %s: %w", key, err)
	}

	log.Debug("object removed", log.SourceObjectStore, zap.String("key", key))
	return nil
}
