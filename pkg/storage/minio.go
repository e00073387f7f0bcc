package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinioClient connects to the MinIO server at endpoint using static credentials.
func NewMinioClient(endpoint string, accessKey string, secretKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating MinIO client: %v", err)
	}
	return client, nil
}

func NewMinioStore(logger *slog.Logger, client MinioClient, bucket string) *MinioStore {
	return &MinioStore{
		logger: logger,
		client: client,
		bucket: bucket,
	}
}

// MinioStore stores objects in a single MinIO bucket.
type MinioStore struct {
	logger *slog.Logger
	client MinioClient
	bucket string
}

type MinioClient interface {
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

func (m MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("error looking up object in bucket %q using key %q: %v", m.bucket, key, err)
	}
	return true, nil
}

// Write streams body into the bucket. The size is unknown up front so the client buffers multipart chunks.
func (m MinioStore) Write(ctx context.Context, key string, body io.Reader, contentType string) error {
	m.logger.InfoContext(ctx, "Uploading", "bucket", m.bucket, "key", key)

	_, err := m.client.PutObject(ctx, m.bucket, key, body, -1, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("error uploading object to bucket %q using key %q: %v", m.bucket, key, err)
	}
	return nil
}

func (m MinioStore) Read(ctx context.Context, key string, dst io.Writer) error {
	object, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("error downloading object from bucket %q using key %q: %v", m.bucket, key, err)
	}
	defer object.Close()

	_, err = io.Copy(dst, object)
	if isNoSuchKey(err) {
		return errdef.NewNotFound("object %q not found", key)
	}
	return err
}

func (m MinioStore) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("error deleting object from bucket %q using key %q: %v", m.bucket, key, err)
	}
	return nil
}
