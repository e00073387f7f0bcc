package inttest

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	minioContainer "github.com/testcontainers/testcontainers-go/modules/minio"
)

// SetupMinio creates a MinIO container with given bucket.
func SetupMinio(t *testing.T, bucket string) *minio.Client {
	t.Helper()

	ctx := context.Background()
	container, err := minioContainer.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	t.Cleanup(func() { require.NoError(t, testcontainers.TerminateContainer(container), "failed to stop MinIO") })
	require.NoError(t, err, "failed to start MinIO")

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get MinIO endpoint")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(container.Username, container.Password, ""),
		Secure: false,
	})
	require.NoError(t, err, "failed to create MinIO client")

	err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	require.NoErrorf(t, err, "failed to create bucket %q", bucket)

	return client
}
