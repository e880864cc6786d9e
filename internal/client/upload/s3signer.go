package upload

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/google/uuid"
)

const defaultPresignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	now = time.Now
)

// S3Options configures an S3Signer.
type S3Options struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	KeyPrefix    string
	Expires      time.Duration
}

// S3Signer presigns PutObject requests directly against a bucket, bypassing
// the API. It is meant for local development against MinIO or a test bucket.
type S3Signer struct {
	opts    S3Options
	presign *s3.PresignClient
}

// NewS3Signer loads AWS configuration and builds a presign client. Static
// credentials are used when both keys are set; otherwise the default chain.
func NewS3Signer(ctx context.Context, opts S3Options) (*S3Signer, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 signer: bucket is required")
	}
	if opts.Expires <= 0 {
		opts.Expires = defaultPresignExpiry
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3 signer: load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Signer{opts: opts, presign: newS3PresignClient(client)}, nil
}

// ObjectKey returns a fresh storage key for fileName under the key prefix:
// <prefix>/<yyyy>/<mm>/<dd>/<uuid>/<fileName>.
func (s *S3Signer) ObjectKey(fileName string) string {
	d := now()
	return path.Join(
		s.opts.KeyPrefix,
		fmt.Sprintf("%04d/%02d/%02d", d.Year(), d.Month(), d.Day()),
		uuid.NewString(),
		fileName,
	)
}

func (s *S3Signer) PresignUpload(ctx context.Context, fileName, fileType string) (string, error) {
	bucket := s.opts.Bucket
	key := s.ObjectKey(fileName)

	in := &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(fileType),
	}
	req, err := presignPutObject(s.presign, ctx, in, s3.WithPresignExpires(s.opts.Expires))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrSigning, err)
	}
	return req.URL, nil
}
