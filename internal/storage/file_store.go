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

	"github.com/metinatakli/movie-catalog/internal/domain"
)

// FileStore keeps posters as files directly under a base directory.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (f *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	target, err := f.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(target)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, ioFailure("stat poster", err)
	}
}

// Write stores the poster through a temporary file in the same directory
// and renames it into place, so readers never see a partial file.
func (f *FileStore) Write(ctx context.Context, file domain.PosterFile) error {
	target, err := f.path(file.Name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.basePath, ".upload-*")
	if err != nil {
		return ioFailure("create temp file", err)
	}
	tmpName := tmp.Name()

	cleanup := func(cause error) error {
		tmp.Close()
		os.Remove(tmpName)
		return cause
	}

	if _, err := io.Copy(tmp, file.Content); err != nil {
		return cleanup(ioFailure("write poster", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(ioFailure("sync poster", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioFailure("close poster", err)
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return ioFailure("rename poster", err)
	}
	return nil
}

func (f *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target, err := f.path(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrPosterNotFound
		}
		return nil, ioFailure("open poster", err)
	}
	return file, nil
}

// Delete removes the poster; a missing file is not an error.
func (f *FileStore) Delete(ctx context.Context, name string) error {
	target, err := f.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioFailure("delete poster", err)
	}
	return nil
}

func (f *FileStore) path(name string) (string, error) {
	if err := domain.ValidatePosterName(name); err != nil {
		return "", err
	}
	return filepath.Join(f.basePath, name), nil
}

func ioFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrIOFailure, op, err)
}
