package domain

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")

	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid authentication credentials")

	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenExpired  = errors.New("token has expired")
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenRevoked  = errors.New("refresh token has been revoked")

	ErrMovieNotFound     = errors.New("movie not found")
	ErrFileAlreadyExists = errors.New("file already exists, please use another file name")
	ErrInvalidFileName   = errors.New("invalid file name")
	ErrPosterNotFound    = errors.New("poster not found")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidPagination = errors.New("page must be >= 0 and size must be >= 1")

	// ErrIOFailure wraps every error returned by a poster storage backend.
	ErrIOFailure = errors.New("poster storage failure")
)
