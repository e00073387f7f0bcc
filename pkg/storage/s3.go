package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/eventforge/eventforge/internal/errdef"
)

func NewS3Client(logger *slog.Logger, client AWSS3Client, uploader AWSS3Uploader, bucket string) *S3Client {
	return &S3Client{
		logger:   logger,
		client:   client,
		uploader: uploader,
		bucket:   bucket,
	}
}

// NewAWSS3Client creates an S3 client from the default AWS credential chain. A non-empty endpoint is used instead
// of the AWS one, which is how localstack is reached.
func NewAWSS3Client(ctx context.Context, region string, endpoint string) (*s3.Client, error) {
	cfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Client stores objects in a single bucket.
type S3Client struct {
	logger   *slog.Logger
	client   AWSS3Client
	uploader AWSS3Uploader
	bucket   string
}

type AWSS3Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type AWSS3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

func (s S3Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("error looking up object in bucket %q using key %q: %s", s.bucket, key, err)
	}
	return true, nil
}

func (s S3Client) Write(ctx context.Context, key string, body io.Reader, contentType string) error {
	s.logger.InfoContext(ctx, "Uploading", "bucket", s.bucket, "key", key)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := s.uploader.Upload(ctx, input)
	if err != nil {
		return fmt.Errorf("error uploading object to bucket %q using key %q: %s", s.bucket, key, err)
	}
	return nil
}

func (s S3Client) Read(ctx context.Context, key string, dst io.Writer) error {
	object, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return errdef.NewNotFound("object %q not found", key)
		}
		return fmt.Errorf("error downloading object from bucket %q using key %q: %s", s.bucket, key, err)
	}
	defer object.Body.Close()

	_, err = io.Copy(dst, object.Body)
	return err
}

func (s S3Client) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting object from bucket %q using key %q: %s", s.bucket, key, err)
	}
	return nil
}
