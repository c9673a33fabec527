package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("image not found")
	ErrInvalidPath = errors.New("invalid image path")
)

// ImageStore keeps uploaded images under flat, randomly generated names.
// The name returned by Save is what gets persisted in the database.
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext, contentType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

// New picks the backend from STORAGE_BACKEND.
func New(ctx context.Context, config utils.StorageConfig, log *zap.Logger) (ImageStore, error) {
	switch config.Backend {
	case "", "local":
		return NewLocalStore(config.ImageDir, log)
	case "s3":
		return NewS3Store(ctx, config, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Backend)
	}
}
