package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/riandyrn/otelchi"
)

var _ api.ServerInterface = (*Application)(nil)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.withRequestLogger)
	r.Use(app.recoverPanic)

	// Operation middlewares run inside the generated wrappers, after the
	// parameters are bound. The last one listed runs first.
	return api.HandlerWithOptions(app, api.ChiServerOptions{
		BaseRouter: r,
		Middlewares: []api.MiddlewareFunc{
			app.authenticateSecured,
			app.rateLimitCredentials,
		},
		ErrorHandlerFunc: app.invalidParamResponse,
	})
}

// authenticateSecured requires a bearer token on operations that declare
// the bearerAuth security scheme.
func (app *Application) authenticateSecured(next http.Handler) http.Handler {
	authenticated := app.requireAuthentication(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, secured := r.Context().Value(api.BearerAuthScopes).([]string); secured {
			authenticated.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimitCredentials throttles the /auth operations only.
func (app *Application) rateLimitCredentials(next http.Handler) http.Handler {
	limited := app.rateLimit(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/auth/") {
			limited.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
