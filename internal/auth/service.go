// Package auth implements the session lifecycle: registration, login with
// username and password, and exchanging refresh tokens for access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

// Config holds the token lifetimes and the refresh rotation policy.
type Config struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// RotateRefreshTokens makes refresh tokens single use: every refresh
	// revokes the presented token and returns a new one.
	RotateRefreshTokens bool
}

func (c Config) Validate() error {
	if len(c.Secret) < 32 {
		return errors.New("auth secret must be at least 32 bytes")
	}

	if c.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be positive")
	}

	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		return errors.New("refresh token ttl must be longer than access token ttl")
	}

	return nil
}

type Tokens struct {
	AccessToken  AccessToken
	RefreshToken string
	UserID       int
}

type Service struct {
	logger        *slog.Logger
	users         domain.UserRepository
	refreshTokens *RefreshTokenStore
	issuer        *TokenIssuer
	rotate        bool
}

func NewService(
	logger *slog.Logger,
	users domain.UserRepository,
	refreshTokens *RefreshTokenStore,
	issuer *TokenIssuer,
	rotate bool) *Service {

	return &Service{
		logger:        logger,
		users:         users,
		refreshTokens: refreshTokens,
		issuer:        issuer,
		rotate:        rotate,
	}
}

func (s *Service) Issuer() *TokenIssuer {
	return s.issuer
}

func (s *Service) Register(ctx context.Context, username, password string) (*Tokens, error) {
	user := domain.User{Username: username}

	err := user.Password.Set(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var refresh *domain.RefreshToken

	err = s.users.CreateWithToken(ctx, &user, func(u *domain.User) (*domain.RefreshToken, error) {
		token, err := s.refreshTokens.New(u)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}

		refresh = token

		return token, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "userId", user.ID)

	return s.session(&user, refresh)
}

// Login fails with domain.ErrInvalidCredentials both for an unknown
// username and for a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*Tokens, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			s.logger.Warn("login attempt for non-existent user")
			return nil, domain.ErrInvalidCredentials
		}

		return nil, err
	}

	match, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}

	if !match {
		s.logger.Warn("login failed due to incorrect password", "userId", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	return s.newSession(ctx, user)
}

// Refresh mints a new access token for the owner of the refresh token. The
// refresh token itself is echoed back unless rotation is enabled.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	token, err := s.refreshTokens.Verify(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if s.rotate {
		err = s.refreshTokens.Revoke(ctx, refreshToken)
		if err != nil {
			// A concurrent refresh consumed the token first.
			if errors.Is(err, domain.ErrTokenNotFound) {
				return nil, domain.ErrTokenRevoked
			}

			return nil, err
		}

		return s.newSession(ctx, token.User)
	}

	access, err := s.issuer.Mint(token.User)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		AccessToken:  access,
		RefreshToken: token.Plaintext,
		UserID:       token.UserID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokens.Revoke(ctx, refreshToken)
}

func (s *Service) newSession(ctx context.Context, user *domain.User) (*Tokens, error) {
	refresh, err := s.refreshTokens.Issue(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return s.session(user, refresh)
}

// session pairs a stored refresh token with a fresh access token.
func (s *Service) session(user *domain.User, refresh *domain.RefreshToken) (*Tokens, error) {
	access, err := s.issuer.Mint(user)
	if err != nil {
		return nil, fmt.Errorf("mint access token: %w", err)
	}

	return &Tokens{
		AccessToken:  access,
		RefreshToken: refresh.Plaintext,
		UserID:       user.ID,
	}, nil
}

// PurgeExpiredRefreshTokens deletes refresh tokens that can no longer be used.
func (s *Service) PurgeExpiredRefreshTokens(ctx context.Context) (int64, error) {
	return s.refreshTokens.PurgeExpired(ctx)
}
