package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"classifieds-market/pkg/utils"

	"go.uber.org/zap"
)

// LocalStore writes images into a single directory.
type LocalStore struct {
	dir string
	log *zap.Logger
}

func NewLocalStore(dir string, log *zap.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %s: %w", dir, err)
	}

	return &LocalStore{
		dir: dir,
		log: log.With(zap.String("storage", "local")),
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, data []byte, ext, contentType string) (string, error) {
	name := utils.GenerateFileName(ext)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.log.Error("Failed to write image", zap.Error(err), zap.String("name", name))
		return "", fmt.Errorf("write image %s: %w", name, err)
	}

	return name, nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open image %s: %w", name, err)
	}

	return f, nil
}

// Remove is a no-op for names that are already gone.
func (s *LocalStore) Remove(ctx context.Context, name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Error("Failed to remove image", zap.Error(err), zap.String("name", name))
		return fmt.Errorf("remove image %s: %w", name, err)
	}

	return nil
}

// resolve only accepts bare file names inside dir.
func (s *LocalStore) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.dir, name), nil
}
