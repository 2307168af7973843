package app

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

const (
	userIdContextKey = contextKey("userId")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextSetUserId(r *http.Request, userId int) *http.Request {
	ctx := context.WithValue(r.Context(), userIdContextKey, userId)
	return r.WithContext(ctx)
}

func (app *Application) contextGetUserId(r *http.Request) int {
	userId, ok := r.Context().Value(userIdContextKey).(int)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

// contextGetLogger returns the request scoped logger, falling back to the
// application logger outside of the router.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
