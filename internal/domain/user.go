package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

type User struct {
	ID        int
	Username  string
	Password  password
	CreatedAt time.Time
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordCost)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// CreateWithToken stores the user and the refresh token built by
	// newToken atomically: when either insert fails neither is kept.
	CreateWithToken(ctx context.Context, user *User, newToken func(*User) (*RefreshToken, error)) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetById(ctx context.Context, id int) (*User, error)
}
