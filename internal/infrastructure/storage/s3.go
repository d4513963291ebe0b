package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/photobook/user-image-service/pkg/helpers"
)

// S3 stores files in an S3 compatible bucket and returns the object URL
type S3 struct {
	client *s3.Client
	opts   helpers.S3Options
	prefix string
}

func NewS3(client *s3.Client, opts helpers.S3Options, prefix string) *S3 {
	return &S3{client: client, opts: opts, prefix: prefix}
}

func (s *S3) Save(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	return helpers.PutS3Object(ctx, s.client, s.opts, path.Join(s.prefix, ObjectName(originalName)), contentType, r)
}

func (s *S3) Delete(ctx context.Context, ref string) error {
	return helpers.DeleteS3Object(ctx, s.client, s.opts, strings.TrimPrefix(ref, helpers.S3ObjectURL(s.opts, "")))
}

func (s *S3) Close() error { return nil }

var _ FileStore = (*S3)(nil)
