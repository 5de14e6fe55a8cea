package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Sink saves blobs to an S3-compatible bucket (AWS S3 or MinIO). Credentials
// come from the default chain; an explicit endpoint enables local stacks.
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

// S3Config holds explicit construction parameters. Region defaults to
// us-east-1; Endpoint is optional and enables path-style addressing.
type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// NewS3Sink creates an S3 sink for the given bucket.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// ParseS3Dest splits an s3://bucket/prefix destination into its parts.
func ParseS3Dest(dest string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(dest, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 destination: %s", dest)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("s3 destination missing bucket: %s", dest)
	}
	return bucket, prefix, nil
}

// Save uploads data under prefix/name and returns the object URL.
func (s *S3Sink) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := name
	if s.prefix != "" {
		key = strings.TrimSuffix(s.prefix, "/") + "/" + name
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("put s3 object: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
