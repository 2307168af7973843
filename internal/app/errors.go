package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	appvalidator "github.com/metinatakli/movie-catalog/internal/validator"
)

const (
	ErrInternalServer       = "The server encountered a problem and could not process your request"
	ErrNotFound             = "The requested resource not found"
	ErrInvalidCredentials   = "invalid authentication credentials"
	ErrInvalidMovieId       = "invalid movie ID"
	ErrPosterAlreadyExists  = "a poster with this file name already exists"
	ErrUsernameAlreadyTaken = "a user with this username already exists"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "The " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// invalidParamResponse reports path and query parameters the generated
// router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if !errors.As(err, &formatErr) {
		app.badRequestResponse(w, r, err)
		return
	}

	switch formatErr.ParamName {
	case "id":
		app.badRequestResponse(w, r, errors.New(ErrInvalidMovieId))
	case "filename":
		app.notFoundResponse(w, r)
	default:
		app.badRequestResponse(w, r, fmt.Errorf("%s must be an integer", formatErr.ParamName))
	}
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          "One or more fields are invalid",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrors)),
	}

	for _, fieldErr := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

// catalogErrorResponse maps catalog failures to their HTTP status.
func (app *Application) catalogErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrMovieNotFound), errors.Is(err, domain.ErrPosterNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrFileAlreadyExists):
		app.conflictResponse(w, r, ErrPosterAlreadyExists)
	case errors.Is(err, domain.ErrInvalidFileName):
		app.badRequestResponse(w, r, errors.New("invalid poster file name"))
	case errors.Is(err, domain.ErrInvalidSortField):
		app.badRequestResponse(w, r, errors.New("invalid sort field"))
	case errors.Is(err, domain.ErrInvalidPagination):
		app.badRequestResponse(w, r, errors.New("page must not be negative and size must be positive"))
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// refreshTokenErrorResponse maps a failed refresh token check to a 401
// whose message tells the client why.
func (app *Application) refreshTokenErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		app.invalidAuthenticationTokenResponse(w, r, "refresh token not found")
	case errors.Is(err, domain.ErrTokenExpired):
		app.invalidAuthenticationTokenResponse(w, r, "refresh token has expired")
	case errors.Is(err, domain.ErrTokenRevoked):
		app.invalidAuthenticationTokenResponse(w, r, "refresh token has been revoked")
	default:
		app.serverErrorResponse(w, r, err)
	}
}
