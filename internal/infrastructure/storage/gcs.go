package storage

import (
	"context"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"

	"github.com/photobook/user-image-service/pkg/helpers"
)

// GCS stores files in a Google Cloud Storage bucket and returns their public URL
type GCS struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCS(client *gcs.Client, bucket, prefix string) *GCS {
	return &GCS{client: client, bucket: bucket, prefix: prefix}
}

func (g *GCS) Save(ctx context.Context, originalName, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, g.client, g.bucket, path.Join(g.prefix, ObjectName(originalName)), contentType, r)
}

func (g *GCS) Delete(ctx context.Context, ref string) error {
	return helpers.DeleteObject(ctx, g.client, g.bucket, strings.TrimPrefix(ref, helpers.GCSPublicURL(g.bucket, "")))
}

func (g *GCS) Close() error { return g.client.Close() }

var _ FileStore = (*GCS)(nil)
