package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenStoreIssue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var stored *domain.RefreshToken
	repo := &mocks.MockRefreshTokenRepo{
		CreateFunc: func(ctx context.Context, token *domain.RefreshToken) error {
			stored = token
			return nil
		},
	}

	store := NewRefreshTokenStore(repo, time.Hour)
	store.now = fixedClock(now)

	user := &domain.User{ID: 5, Username: "alice"}
	token, err := store.Issue(context.Background(), user)
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, 5, stored.UserID)
	assert.Equal(t, now.Add(time.Hour), stored.Expiry)
	assert.Equal(t, domain.HashToken(token.Plaintext), stored.Hash)
	assert.Same(t, user, token.User)
}

func TestRefreshTokenStoreNewDoesNotPersist(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store := NewRefreshTokenStore(&mocks.MockRefreshTokenRepo{}, time.Hour)
	store.now = fixedClock(now)

	user := &domain.User{ID: 5, Username: "alice"}
	token, err := store.New(user)
	require.NoError(t, err)

	assert.Zero(t, token.ID)
	assert.Equal(t, 5, token.UserID)
	assert.Equal(t, now.Add(time.Hour), token.Expiry)
	assert.Same(t, user, token.User)
}

func TestRefreshTokenStoreVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		token   string
		lookup  func(ctx context.Context, hash []byte) (*domain.RefreshToken, error)
		wantErr error
	}{
		{
			name:  "valid token",
			token: "abc",
			lookup: func(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
				return &domain.RefreshToken{UserID: 1, Expiry: now.Add(time.Minute)}, nil
			},
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: domain.ErrTokenNotFound,
		},
		{
			name:  "unknown token",
			token: "abc",
			lookup: func(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantErr: domain.ErrTokenNotFound,
		},
		{
			name:  "expires exactly now",
			token: "abc",
			lookup: func(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
				return &domain.RefreshToken{UserID: 1, Expiry: now}, nil
			},
			wantErr: domain.ErrTokenExpired,
		},
		{
			name:  "revoked and expired reports revoked",
			token: "abc",
			lookup: func(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
				return &domain.RefreshToken{UserID: 1, Expiry: now.Add(-time.Hour), Revoked: true}, nil
			},
			wantErr: domain.ErrTokenRevoked,
		},
		{
			name:  "repository failure",
			token: "abc",
			lookup: func(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
				return nil, dbErr
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockRefreshTokenRepo{GetByHashFunc: tt.lookup}
			store := NewRefreshTokenStore(repo, time.Hour)
			store.now = fixedClock(now)

			token, err := store.Verify(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, token.Plaintext)
		})
	}
}

func TestRefreshTokenStoreRevokeUnknown(t *testing.T) {
	repo := &mocks.MockRefreshTokenRepo{
		RevokeFunc: func(ctx context.Context, hash []byte) error {
			return domain.ErrRecordNotFound
		},
	}

	err := NewRefreshTokenStore(repo, time.Hour).Revoke(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestRefreshTokenStorePurgeExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	repo := &mocks.MockRefreshTokenRepo{
		DeleteExpiredFunc: func(ctx context.Context, at time.Time) (int64, error) {
			assert.Equal(t, now, at)
			return 3, nil
		},
	}

	store := NewRefreshTokenStore(repo, time.Hour)
	store.now = fixedClock(now)

	removed, err := store.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
