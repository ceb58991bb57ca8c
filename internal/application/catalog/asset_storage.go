package catalog

import (
	"context"
	"time"
)

// AssetFile describes one stored object
type AssetFile struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// AssetStorage is the object-storage surface for term visuals and other
// static assets. Implementations return shared.ErrUnavailable when no
// storage backend is configured.
type AssetStorage interface {
	// ListFiles lists objects under the given key prefix
	ListFiles(ctx context.Context, prefix string) ([]AssetFile, error)

	// Upload stores an object
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Download fetches an object's content
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// FileSize returns the size of an object in bytes
	FileSize(ctx context.Context, key string) (int64, error)
}
