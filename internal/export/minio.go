package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioOptions locates the bucket charts are uploaded to.
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioSink uploads charts to a MinIO or S3 compatible bucket.
type MinioSink struct {
	client *minio.Client
	bucket string
}

// NewMinioSink connects to the object store and creates the bucket if it
// does not exist yet.
func NewMinioSink(ctx context.Context, opts MinioOptions, log *zap.Logger) (*MinioSink, error) {
	if log == nil {
		log = zap.NewNop()
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", opts.Bucket, err)
		}
		log.Info("created bucket", zap.String("bucket", opts.Bucket))
	}

	return &MinioSink{client: client, bucket: opts.Bucket}, nil
}

// Put uploads png as bucket/name.
func (s *MinioSink) Put(ctx context.Context, name string, png []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(png), int64(len(png)), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", name, err)
	}
	return nil
}
