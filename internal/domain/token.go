package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"
)

const tokenLength int = 32

// RefreshToken is a long-lived opaque credential bound to a user. Only the
// SHA-256 hash of the plaintext is persisted.
type RefreshToken struct {
	ID        int
	Plaintext string
	Hash      []byte
	UserID    int
	User      *User
	Expiry    time.Time
	Revoked   bool
	CreatedAt time.Time
}

func GenerateRefreshToken(userID int, expiry time.Time) (*RefreshToken, error) {
	randomBytes := make([]byte, tokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)

	token := &RefreshToken{
		Plaintext: plaintext,
		Hash:      HashToken(plaintext),
		UserID:    userID,
		Expiry:    expiry,
	}

	return token, nil
}

func HashToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

// IsExpired reports whether the token is at or past its expiry.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.Expiry)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// GetByHash returns the token with its owning user, or ErrRecordNotFound.
	GetByHash(ctx context.Context, hash []byte) (*RefreshToken, error)
	// Revoke marks an unrevoked token revoked. It returns ErrRecordNotFound
	// when no unrevoked token has the hash.
	Revoke(ctx context.Context, hash []byte) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
