package app

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// withRequestLogger stores a logger carrying the request id in the request context.
func (app *Application) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("requestId", middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			app.invalidAuthenticationTokenResponse(w, r, "missing or malformed access token")
			return
		}

		userId, err := app.auth.Issuer().Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				app.invalidAuthenticationTokenResponse(w, r, "access token has expired")
			default:
				app.contextGetLogger(r).Warn("rejected invalid access token", "error", err)
				app.invalidAuthenticationTokenResponse(w, r, "invalid access token")
			}

			return
		}

		next.ServeHTTP(w, app.contextSetUserId(r, userId))
	})
}

// rateLimit throttles clients by IP. When Redis cannot be reached the
// request is let through and the failure logged.
func (app *Application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, retryAfter, err := app.limiter.Allow(r.Context(), clientIP(r))
		if err != nil {
			app.contextGetLogger(r).Error("rate limiter unavailable", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(app.limiter.Limit()))

		if !allowed {
			app.contextGetLogger(r).Warn("rate limit exceeded", "ip", clientIP(r))
			app.rateLimitExceededResponse(w, r, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
