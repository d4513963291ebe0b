package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options describes an S3 or S3 compatible (MinIO) bucket
type S3Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewS3Client builds an S3 client. Static credentials are used when given, otherwise the default chain.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}

// PutS3Object uploads r to bucket/key and returns the object URL
func PutS3Object(ctx context.Context, client *s3.Client, opts S3Options, key, contentType string, r io.Reader) (string, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(opts.Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return S3ObjectURL(opts, key), nil
}

// DeleteS3Object removes bucket/key. S3 reports success for missing keys.
func DeleteS3Object(ctx context.Context, client *s3.Client, opts S3Options, key string) error {
	if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(opts.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// S3ObjectURL builds the URL of key for either a custom endpoint or AWS virtual hosted style
func S3ObjectURL(opts S3Options, key string) string {
	if opts.Endpoint != "" {
		base := strings.TrimRight(opts.Endpoint, "/")
		if opts.UsePathStyle {
			return fmt.Sprintf("%s/%s/%s", base, opts.Bucket, key)
		}
		scheme, host, ok := strings.Cut(base, "://")
		if !ok {
			return fmt.Sprintf("%s/%s/%s", base, opts.Bucket, key)
		}
		return fmt.Sprintf("%s://%s.%s/%s", scheme, opts.Bucket, host, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", opts.Bucket, opts.Region, key)
}
