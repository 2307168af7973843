package auth

import (
	"context"
	"errors"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

// RefreshTokenStore issues refresh tokens and checks presented values
// against their persisted records.
type RefreshTokenStore struct {
	repo domain.RefreshTokenRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewRefreshTokenStore(repo domain.RefreshTokenRepository, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
}

// New builds a refresh token for user without storing it.
func (s *RefreshTokenStore) New(user *domain.User) (*domain.RefreshToken, error) {
	token, err := domain.GenerateRefreshToken(user.ID, s.now().UTC().Add(s.ttl))
	if err != nil {
		return nil, err
	}

	token.User = user

	return token, nil
}

func (s *RefreshTokenStore) Issue(ctx context.Context, user *domain.User) (*domain.RefreshToken, error) {
	token, err := s.New(user)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, token)
	if err != nil {
		return nil, err
	}

	return token, nil
}

// Verify looks the value up and checks it is neither revoked nor expired.
// A token that is both reports domain.ErrTokenRevoked.
func (s *RefreshTokenStore) Verify(ctx context.Context, plaintext string) (*domain.RefreshToken, error) {
	if plaintext == "" {
		return nil, domain.ErrTokenNotFound
	}

	token, err := s.repo.GetByHash(ctx, domain.HashToken(plaintext))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}

		return nil, err
	}

	if token.Revoked {
		return nil, domain.ErrTokenRevoked
	}

	if token.IsExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	token.Plaintext = plaintext

	return token, nil
}

func (s *RefreshTokenStore) Revoke(ctx context.Context, plaintext string) error {
	err := s.repo.Revoke(ctx, domain.HashToken(plaintext))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrTokenNotFound
		}

		return err
	}

	return nil
}

// PurgeExpired deletes expired and revoked tokens and reports how many were removed.
func (s *RefreshTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
