package client

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaURLExpiry is how long a presigned media link stays valid.
const MediaURLExpiry = 15 * time.Minute

var ErrNoMediaBucket = errors.New("media bucket not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3Options locates the object storage holding recorded message media.
type S3Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// MediaResolver turns the media_url of a message into something a player
// can open. http(s) URLs pass through; "s3://bucket/key" and bare object
// keys are presigned.
type MediaResolver struct {
	opts S3Options

	once    sync.Once
	pc      *s3.PresignClient
	initErr error
}

func NewMediaResolver(opts S3Options) *MediaResolver {
	return &MediaResolver{opts: opts}
}

func (r *MediaResolver) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	r.once.Do(func() {
		optFns := []func(*config.LoadOptions) error{config.WithRegion(r.opts.Region)}
		if r.opts.AccessKey != "" {
			optFns = append(optFns, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(r.opts.AccessKey, r.opts.SecretKey, "")))
		}

		cfg, err := loadDefaultAWSConfig(ctx, optFns...)
		if err != nil {
			r.initErr = err
			return
		}

		c := newS3ClientFromConfig(cfg, func(o *s3.Options) {
			if r.opts.BaseEndpoint != "" {
				o.BaseEndpoint = aws.String(r.opts.BaseEndpoint)
				o.UsePathStyle = true
			}
		})
		r.pc = newS3PresignClient(c)
	})
	return r.pc, r.initErr
}

func (r *MediaResolver) Resolve(ctx context.Context, mediaURL string) (string, error) {
	if mediaURL == "" {
		return "", nil
	}

	bucket, key := r.opts.Bucket, mediaURL
	if u, err := url.Parse(mediaURL); err == nil {
		switch u.Scheme {
		case "http", "https":
			return mediaURL, nil
		case "s3":
			bucket = u.Host
			key = strings.TrimPrefix(u.Path, "/")
		}
	}
	if bucket == "" {
		return "", ErrNoMediaBucket
	}

	pc, err := r.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(MediaURLExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
