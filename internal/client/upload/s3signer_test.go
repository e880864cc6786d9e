package upload

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/postdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) *s3.Options {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origNow := now
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		now = origNow
	})

	captured := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		return aws.Config{Region: lo.Region, Credentials: lo.Credentials}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(captured)
		}
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
	now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return captured
}

func TestNewS3Signer_AppliesEndpoint(t *testing.T) {
	captured := stubAWS(t)

	_, err := NewS3Signer(context.Background(), S3Options{
		Region:       "us-east-1",
		Bucket:       "media",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, captured.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *captured.BaseEndpoint)
	assert.True(t, captured.UsePathStyle)
}

func TestNewS3Signer_Errors(t *testing.T) {
	stubAWS(t)

	_, err := NewS3Signer(context.Background(), S3Options{Region: "us-east-1"})
	assert.Error(t, err)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3Signer(context.Background(), S3Options{Bucket: "media"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}

func TestS3Signer_PresignUpload(t *testing.T) {
	stubAWS(t)

	var got *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		got = in
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/media/" + *in.Key + "?X-Amz-Signature=abc"}, nil
	}

	s, err := NewS3Signer(context.Background(), S3Options{Region: "us-east-1", Bucket: "media", KeyPrefix: "videos/"})
	require.NoError(t, err)

	url, err := s.PresignUpload(context.Background(), "clip.mp4", "video/mp4")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "media", *got.Bucket)
	assert.Equal(t, "video/mp4", *got.ContentType)
	assert.True(t, strings.HasPrefix(*got.Key, "videos/2024/01/02/"), *got.Key)
	assert.True(t, strings.HasSuffix(*got.Key, "/clip.mp4"), *got.Key)
	assert.Contains(t, url, "X-Amz-Signature=abc")
}

func TestS3Signer_PresignError(t *testing.T) {
	stubAWS(t)
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}

	s, err := NewS3Signer(context.Background(), S3Options{Bucket: "media"})
	require.NoError(t, err)

	_, err = s.PresignUpload(context.Background(), "clip.mp4", "video/mp4")
	assert.ErrorIs(t, err, common.ErrSigning)
}
