package mocks

import (
	"context"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	CreateFunc          func(ctx context.Context, user *domain.User) error
	CreateWithTokenFunc func(ctx context.Context, user *domain.User, newToken func(*domain.User) (*domain.RefreshToken, error)) error
	GetByUsernameFunc   func(ctx context.Context, username string) (*domain.User, error)
	GetByIdFunc         func(ctx context.Context, id int) (*domain.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepo) CreateWithToken(ctx context.Context, user *domain.User, newToken func(*domain.User) (*domain.RefreshToken, error)) error {
	return m.CreateWithTokenFunc(ctx, user, newToken)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (*domain.User, error) {
	return m.GetByIdFunc(ctx, id)
}
