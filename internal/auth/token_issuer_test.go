package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenIssuerMintAndVerify(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute)

	token, err := issuer.Mint(&domain.User{ID: 42})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 2*time.Second)

	userID, err := issuer.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenIssuerTokensAreUnique(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Minute)
	issuer.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	first, err := issuer.Mint(&domain.User{ID: 1})
	require.NoError(t, err)
	second, err := issuer.Mint(&domain.User{ID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestTokenIssuerExpiry(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewTokenIssuer(testSecret, 15*time.Minute)
	issuer.now = fixedClock(issued)

	token, err := issuer.Mint(&domain.User{ID: 7})
	require.NoError(t, err)

	issuer.now = fixedClock(issued.Add(14 * time.Minute))
	userID, err := issuer.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)

	issuer.now = fixedClock(issued.Add(15 * time.Minute))
	_, err = issuer.Verify(token.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	issuer.now = fixedClock(issued.Add(time.Hour))
	_, err = issuer.Verify(token.Token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenIssuerRejectsInvalidTokens(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Minute)

	valid, err := issuer.Mint(&domain.User{ID: 3})
	require.NoError(t, err)

	otherKey, err := NewTokenIssuer("another-secret-another-secret-xx", time.Minute).Mint(&domain.User{ID: 3})
	require.NoError(t, err)

	claims := func(subject, iss string) jwt.RegisteredClaims {
		now := time.Now()
		return jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    iss,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}
	}

	sign := func(method jwt.SigningMethod, c jwt.Claims, key any) string {
		s, err := jwt.NewWithClaims(method, c).SignedString(key)
		require.NoError(t, err)
		return s
	}

	parts := strings.Split(valid.Token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "tampered signature", token: tampered},
		{name: "signed with another key", token: otherKey.Token},
		{name: "none algorithm", token: sign(jwt.SigningMethodNone, claims("3", defaultIssuer), jwt.UnsafeAllowNoneSignatureType)},
		{name: "other hmac algorithm", token: sign(jwt.SigningMethodHS512, claims("3", defaultIssuer), []byte(testSecret))},
		{name: "foreign issuer", token: sign(jwt.SigningMethodHS256, claims("3", "someone-else"), []byte(testSecret))},
		{name: "non numeric subject", token: sign(jwt.SigningMethodHS256, claims("admin", defaultIssuer), []byte(testSecret))},
		{name: "missing expiry", token: sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "3", Issuer: defaultIssuer}, []byte(testSecret))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}
