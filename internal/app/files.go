package app

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/metinatakli/movie-catalog/internal/domain"
)

// GetPoster streams a stored poster. The router has already unescaped name.
func (app *Application) GetPoster(w http.ResponseWriter, r *http.Request, name string) {
	logger := app.contextGetLogger(r)

	if domain.ValidatePosterName(name) != nil {
		app.notFoundResponse(w, r)
		return
	}

	content, err := app.posters.Open(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPosterNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)

	_, err = io.Copy(w, content)
	if err != nil {
		logger.Warn("failed to stream poster", "poster", name, "error", err)
	}
}
