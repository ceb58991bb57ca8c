package storage

import (
	"context"

	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/glossary/backend/internal/domain/shared"
)

var _ catalogapp.AssetStorage = (*UnconfiguredAssetStorage)(nil)

// UnconfiguredAssetStorage is wired when no storage backend is configured.
// Every operation returns shared.ErrUnavailable so callers get a stable
// error code instead of a nil-pointer panic.
type UnconfiguredAssetStorage struct{}

// NewUnconfiguredAssetStorage creates the placeholder asset storage
func NewUnconfiguredAssetStorage() *UnconfiguredAssetStorage {
	return &UnconfiguredAssetStorage{}
}

func (UnconfiguredAssetStorage) ListFiles(context.Context, string) ([]catalogapp.AssetFile, error) {
	return nil, shared.ErrUnavailable
}

func (UnconfiguredAssetStorage) Upload(context.Context, string, []byte, string) error {
	return shared.ErrUnavailable
}

func (UnconfiguredAssetStorage) Download(context.Context, string) ([]byte, error) {
	return nil, shared.ErrUnavailable
}

func (UnconfiguredAssetStorage) Delete(context.Context, string) error {
	return shared.ErrUnavailable
}

func (UnconfiguredAssetStorage) FileSize(context.Context, string) (int64, error) {
	return 0, shared.ErrUnavailable
}
