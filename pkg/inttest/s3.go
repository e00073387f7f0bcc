package inttest

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/localstack"
	"github.com/stretchr/testify/require"
)

// SetupS3 starts localstack with an empty bucket of given name.
func SetupS3(t *testing.T, bucket string) *S3Bucket {
	t.Helper()

	container, err := gnomock.Start(
		localstack.Preset(
			localstack.WithServices(localstack.S3),
			localstack.WithVersion("2.1.0"),
		),
	)
	require.NoError(t, err, "failed to start localstack")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop localstack") })

	client := s3.New(s3.Options{
		Region:       "eu-west-1",
		BaseEndpoint: aws.String(fmt.Sprintf("http://%s/", container.Address(localstack.APIPort))),
		Credentials:  credentials.NewStaticCredentialsProvider("test", "test", ""),
		UsePathStyle: true,
	})

	_, err = client.CreateBucket(context.Background(), &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoErrorf(t, err, "failed to create bucket %q", bucket)

	return &S3Bucket{
		Name:     bucket,
		Client:   client,
		Uploader: manager.NewUploader(client),
	}
}

// S3Bucket gives tests the clients the S3 image store needs and lets them inspect stored objects directly.
type S3Bucket struct {
	Name     string
	Client   *s3.Client
	Uploader *manager.Uploader
}

// Object returns the content and content type of the object stored under key.
func (b *S3Bucket) Object(t *testing.T, key string) ([]byte, string) {
	t.Helper()

	object, err := b.Client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
	})
	require.NoErrorf(t, err, "failed to get %q from bucket %q", key, b.Name)
	defer object.Body.Close()

	body, err := io.ReadAll(object.Body)
	require.NoErrorf(t, err, "failed to read %q from bucket %q", key, b.Name)
	return body, aws.ToString(object.ContentType)
}
