package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/photobook/user-image-service/config"
	"github.com/photobook/user-image-service/pkg/helpers"
)

// FileStore persists uploaded files and returns the reference stored on the user record
type FileStore interface {
	Save(ctx context.Context, originalName, contentType string, r io.Reader) (string, error)
	// Delete removes a file by the reference Save returned. Missing files are not an error.
	Delete(ctx context.Context, ref string) error
	Close() error
}

// ObjectName derives a collision free object name keeping the upload's extension
func ObjectName(originalName string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
}

// New builds the backend selected by STORAGE_BACKEND
func New(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return NewLocal(cfg.UploadDir, "uploads")
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("storage backend gcs requires GCS_BUCKET")
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		return NewGCS(client, cfg.GCSBucket, "uploads"), nil
	case "s3":
		opts := helpers.S3Options{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
		}
		if opts.Bucket == "" {
			return nil, fmt.Errorf("storage backend s3 requires S3_BUCKET")
		}
		client, err := helpers.NewS3Client(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return NewS3(client, opts, "uploads"), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
