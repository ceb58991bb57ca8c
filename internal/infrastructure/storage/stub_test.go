package storage

import (
	"context"
	"testing"

	"github.com/glossary/backend/internal/domain/shared"
	infraconfig "github.com/glossary/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconfiguredAssetStorage(t *testing.T) {
	store := NewUnconfiguredAssetStorage()
	ctx := context.Background()

	_, err := store.ListFiles(ctx, "terms/")
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	err = store.Upload(ctx, "terms/attention.png", []byte("data"), "image/png")
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	_, err = store.Download(ctx, "terms/attention.png")
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	err = store.Delete(ctx, "terms/attention.png")
	assert.ErrorIs(t, err, shared.ErrUnavailable)

	_, err = store.FileSize(ctx, "terms/attention.png")
	assert.ErrorIs(t, err, shared.ErrUnavailable)
}

func TestNewS3AssetStorage_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3AssetStorage(nil)
		assert.Error(t, err)
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3AssetStorage(&infraconfig.StorageConfig{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
		})
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewS3AssetStorage(&infraconfig.StorageConfig{
			Bucket: "glossary-assets",
		})
		assert.ErrorContains(t, err, "credentials")
	})

	t.Run("valid config", func(t *testing.T) {
		store, err := NewS3AssetStorage(&infraconfig.StorageConfig{
			Bucket:          "glossary-assets",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Endpoint:        "localhost:9000",
			ForcePathStyle:  true,
		})
		require.NoError(t, err)
		assert.Equal(t, "glossary-assets", store.Bucket())
	})
}

func TestStorageKeyValidation(t *testing.T) {
	store, err := NewS3AssetStorage(&infraconfig.StorageConfig{
		Bucket:          "glossary-assets",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, store.Upload(ctx, "", []byte("data"), "image/png"))
	_, err = store.Download(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
	_, err = store.FileSize(ctx, "")
	assert.Error(t, err)
}
