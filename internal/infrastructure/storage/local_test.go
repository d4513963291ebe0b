package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photobook/user-image-service/config"
)

func TestLocal_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewLocal(dir, "uploads")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "Me.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestLocal_SaveNamesAreUnique(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "uploads")
	require.NoError(t, err)

	a, err := store.Save(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("1"))
	require.NoError(t, err)
	b, err := store.Save(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocal_SaveCanceled(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.jpg", "image/jpeg", strings.NewReader("1"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocal_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "uploads")
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "a.png", "image/png", strings.NewReader("1"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(context.Background(), ref))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, store.Delete(context.Background(), ref))
	assert.Error(t, store.Delete(context.Background(), "uploads/../secret"))
	assert.Error(t, store.Delete(context.Background(), "elsewhere/a.png"))
}

func TestNew_SelectsBackend(t *testing.T) {
	store, err := New(context.Background(), &config.Config{StorageBackend: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, store)

	_, err = New(context.Background(), &config.Config{StorageBackend: "gcs"})
	assert.ErrorContains(t, err, "GCS_BUCKET")

	_, err = New(context.Background(), &config.Config{StorageBackend: "s3"})
	assert.ErrorContains(t, err, "S3_BUCKET")

	_, err = New(context.Background(), &config.Config{StorageBackend: "ftp"})
	assert.Error(t, err)
}
