package domain

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// PosterFile is an uploaded poster: the name it is stored under and its content.
type PosterFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PosterStore is durable blob storage keyed by file name. Write must be
// atomic and Delete must treat a missing name as success.
type PosterStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Write(ctx context.Context, file PosterFile) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// ValidatePosterName rejects names that are not a single path element.
func ValidatePosterName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return ErrInvalidFileName
	}

	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidFileName
	}

	return nil
}
