package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/movie-catalog/api"
)

const healthCheckTimeout = 2 * time.Second

// GetHealth reports DOWN with 503 when PostgreSQL or Redis does not answer
// a ping.
func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := api.UP
	code := http.StatusOK

	err := app.pingDependencies(r.Context())
	if err != nil {
		app.contextGetLogger(r).Warn("health check failed", "error", err)

		status = api.DOWN
		code = http.StatusServiceUnavailable
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	err = app.writeJSON(w, code, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// pingDependencies skips clients that are not configured.
func (app *Application) pingDependencies(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	var errs []error

	if app.db != nil {
		err := app.db.Ping(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}

	if app.redis != nil {
		err := app.redis.Ping(ctx).Err()
		if err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (app *Application) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if app.openapi == nil {
		app.notFoundResponse(w, r)
		return
	}

	err := app.writeJSON(w, http.StatusOK, app.openapi, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
