package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const noSuchKey = "NoSuchKey"

// MinioStore keeps posters as objects in a MinIO/S3 bucket. A single
// PutObject is atomic, so Write needs no staging.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (m *MinioStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := domain.ValidatePosterName(name); err != nil {
		return false, err
	}

	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return false, nil
		}
		return false, ioFailure("stat object", err)
	}
	return true, nil
}

func (m *MinioStore) Write(ctx context.Context, file domain.PosterFile) error {
	if err := domain.ValidatePosterName(file.Name); err != nil {
		return err
	}

	size := file.Size
	if size <= 0 {
		size = -1
	}

	_, err := m.client.PutObject(ctx, m.bucket, file.Name, file.Content, size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		return ioFailure("put object", err)
	}
	return nil
}

func (m *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := domain.ValidatePosterName(name); err != nil {
		return nil, err
	}

	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, ioFailure("get object", err)
	}
	// GetObject is lazy; Stat surfaces a missing key before streaming starts.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return nil, domain.ErrPosterNotFound
		}
		return nil, ioFailure("stat object", err)
	}
	return obj, nil
}

// Delete removes an object. S3 deletes of absent keys succeed.
func (m *MinioStore) Delete(ctx context.Context, name string) error {
	if err := domain.ValidatePosterName(name); err != nil {
		return err
	}

	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return ioFailure("delete object", err)
	}
	return nil
}
