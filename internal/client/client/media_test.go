package client

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

func stubPresign(t *testing.T, fn func(in *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error)) *int {
	t.Helper()
	origLoad, origPresign := loadDefaultAWSConfig, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		presignGetObject = origPresign
	})

	loads := 0
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		loads++
		return aws.Config{Region: "us-east-1"}, nil
	}
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return fn(in)
	}
	return &loads
}

func TestMediaResolver_HTTPPassesThrough(t *testing.T) {
	r := NewMediaResolver(S3Options{})

	got, err := r.Resolve(context.Background(), "https://cdn.example.com/a.mp4")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/a.mp4", got)

	got, err = r.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMediaResolver_S3URL(t *testing.T) {
	var seen *s3.GetObjectInput
	loads := stubPresign(t, func(in *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error) {
		seen = in
		return &v4.PresignedHTTPRequest{URL: "https://signed/" + *in.Key}, nil
	})

	r := NewMediaResolver(S3Options{Bucket: "default", Region: "us-east-1"})

	got, err := r.Resolve(context.Background(), "s3://vault/messages/m1.mp4")
	require.NoError(t, err)
	require.Equal(t, "https://signed/messages/m1.mp4", got)
	require.Equal(t, "vault", *seen.Bucket)

	_, err = r.Resolve(context.Background(), "s3://vault/messages/m2.mp4")
	require.NoError(t, err)
	require.Equal(t, 1, *loads, "presign client is built once")
}

func TestMediaResolver_BareKeyUsesConfiguredBucket(t *testing.T) {
	var seen *s3.GetObjectInput
	stubPresign(t, func(in *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error) {
		seen = in
		return &v4.PresignedHTTPRequest{URL: "https://signed"}, nil
	})

	r := NewMediaResolver(S3Options{Bucket: "media", Region: "us-east-1", BaseEndpoint: "http://127.0.0.1:9000"})

	_, err := r.Resolve(context.Background(), "users/2024/1/1/abc")
	require.NoError(t, err)
	require.Equal(t, "media", *seen.Bucket)
	require.Equal(t, "users/2024/1/1/abc", *seen.Key)
}

func TestMediaResolver_NoBucket(t *testing.T) {
	r := NewMediaResolver(S3Options{})

	_, err := r.Resolve(context.Background(), "users/abc")
	require.ErrorIs(t, err, ErrNoMediaBucket)
}

func TestMediaResolver_PresignError(t *testing.T) {
	stubPresign(t, func(in *s3.GetObjectInput) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign boom")
	})

	r := NewMediaResolver(S3Options{Bucket: "b", Region: "us-east-1"})
	_, err := r.Resolve(context.Background(), "k")
	require.EqualError(t, err, "presign boom")
}
