package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

// MockRefreshTokenRepo is a mock implementation of RefreshTokenRepository
type MockRefreshTokenRepo struct {
	domain.RefreshTokenRepository
	CreateFunc        func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc     func(ctx context.Context, hash []byte) (*domain.RefreshToken, error)
	RevokeFunc        func(ctx context.Context, hash []byte) error
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockRefreshTokenRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *MockRefreshTokenRepo) GetByHash(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, hash)
}

func (m *MockRefreshTokenRepo) Revoke(ctx context.Context, hash []byte) error {
	return m.RevokeFunc(ctx, hash)
}

func (m *MockRefreshTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.DeleteExpiredFunc(ctx, now)
}
