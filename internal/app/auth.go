package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/auth"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

func (app *Application) Register(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	tokens, err := app.auth.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("registration attempt for existing username")
			app.conflictResponse(w, r, ErrUsernameAlreadyTaken)
		default:
			logger.Error("failed to register user", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toAuthResponse(tokens), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return
	}

	tokens, err := app.auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to log in user", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toAuthResponse(tokens), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) Refresh(w http.ResponseWriter, r *http.Request) {
	var input api.RefreshRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	tokens, err := app.auth.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		app.refreshTokenErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toAuthResponse(tokens), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// Logout revokes the refresh token. Unknown or already revoked tokens are
// not reported, so the endpoint can be called repeatedly.
func (app *Application) Logout(w http.ResponseWriter, r *http.Request) {
	var input api.RefreshRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	err = app.auth.Logout(r.Context(), input.RefreshToken)
	if err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toAuthResponse(tokens *auth.Tokens) api.AuthResponse {
	return api.AuthResponse{
		AccessToken:  tokens.AccessToken.Token,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    tokens.AccessToken.ExpiresAt,
	}
}
