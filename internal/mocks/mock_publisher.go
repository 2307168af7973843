package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/events"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.MovieEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
