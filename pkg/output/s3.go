package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-pathtracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// S3Config describes the bucket finished renders are copied to
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string // Key prefix, e.g. "renders"
	AccessKey string
	SecretKey string
}

// Enabled reports whether uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type putObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Uploader copies render artifacts to an S3 compatible bucket
type S3Uploader struct {
	client putObjectAPI
	bucket string
	prefix string
	logger core.Logger
}

// NewS3Uploader creates an uploader with static credentials and path-style addressing
func NewS3Uploader(cfg S3Config, logger core.Logger) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 upload: no bucket configured")
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating s3 session: %w", err)
	}
	return newS3Uploader(s3.New(sess), cfg, logger), nil
}

func newS3Uploader(client putObjectAPI, cfg S3Config, logger core.Logger) *S3Uploader {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Uploader{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}
}

// Key returns the object key for name under the configured prefix
func (u *S3Uploader) Key(name string) string {
	return path.Join(u.prefix, name)
}

// Upload stores data under key
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.bucket, size)
	return nil
}

// UploadFile stores the file at localPath under Key(name), where name is
// the path relative to baseDir using forward slashes
func (u *S3Uploader) UploadFile(ctx context.Context, baseDir, localPath string) (string, error) {
	rel, err := filepath.Rel(baseDir, localPath)
	if err != nil {
		return "", fmt.Errorf("resolving upload key for %s: %w", localPath, err)
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", localPath, err)
	}

	key := u.Key(filepath.ToSlash(rel))
	if err := u.Upload(ctx, key, data, contentType(localPath)); err != nil {
		return "", err
	}
	return key, nil
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".png":
		return "image/png"
	case ".zst":
		return "application/zstd"
	default:
		return "application/octet-stream"
	}
}
