package mocks

import (
	"context"
	"io"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockPosterStore struct {
	domain.PosterStore
	ExistsFunc func(ctx context.Context, name string) (bool, error)
	WriteFunc  func(ctx context.Context, file domain.PosterFile) error
	OpenFunc   func(ctx context.Context, name string) (io.ReadCloser, error)
	DeleteFunc func(ctx context.Context, name string) error
}

func (m *MockPosterStore) Exists(ctx context.Context, name string) (bool, error) {
	return m.ExistsFunc(ctx, name)
}

func (m *MockPosterStore) Write(ctx context.Context, file domain.PosterFile) error {
	return m.WriteFunc(ctx, file)
}

func (m *MockPosterStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return m.OpenFunc(ctx, name)
}

func (m *MockPosterStore) Delete(ctx context.Context, name string) error {
	return m.DeleteFunc(ctx, name)
}
