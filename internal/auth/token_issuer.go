package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const defaultIssuer = "movie-catalog"

// AccessToken is a signed JWT along with its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenIssuer mints and verifies HS256 access tokens. It keeps no state
// besides its key, so verification only depends on the token and the clock.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: defaultIssuer,
		now:    time.Now,
	}
}

func (i *TokenIssuer) Mint(user *domain.User) (AccessToken, error) {
	now := i.now().UTC()
	exp := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(user.ID),
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return AccessToken{}, err
	}

	return AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// Verify returns the user id asserted by token. It fails with
// domain.ErrTokenExpired once the expiry is reached and with
// domain.ErrTokenInvalid for anything else wrong with the token.
func (i *TokenIssuer) Verify(token string) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, domain.ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, domain.ErrTokenExpired
		}

		return 0, domain.ErrTokenInvalid
	}

	if !parsed.Valid {
		return 0, domain.ErrTokenInvalid
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, domain.ErrTokenInvalid
	}

	return userID, nil
}
