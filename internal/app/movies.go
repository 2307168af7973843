package app

import (
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// GetMovies lists the whole catalog when no page, size or sortBy is given
// and a single page otherwise.
func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request, params api.GetMoviesParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sortBy := deref(params.SortBy)

	if params.Page == nil && params.Size == nil && sortBy == "" {
		movies, err := app.catalog.ListAll(r.Context())
		if err != nil {
			app.catalogErrorResponse(w, r, err)
			return
		}

		err = app.writeJSON(w, http.StatusOK, toMovieResponses(movies), nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	pageNumber := DefaultPage
	if params.Page != nil {
		pageNumber = *params.Page
	}

	pageSize := DefaultPageSize
	if params.Size != nil {
		pageSize = *params.Size
	}

	var page *domain.Page
	if sortBy != "" {
		page, err = app.catalog.ListPaginatedSorted(r.Context(), pageNumber, pageSize, sortBy, deref(params.Dir))
	} else {
		page, err = app.catalog.ListPaginated(r.Context(), pageNumber, pageSize)
	}
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMoviePageResponse(page), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request, id int) {
	err := validateMovieId(id)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.catalog.GetMovie(r.Context(), id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) AddMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	form, err := app.readMovieForm(w, r, true)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer form.Close()

	err = app.validator.Struct(form.Movie)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.catalog.AddMovie(r.Context(), toMovieDetails(form.Movie), *form.Poster)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	logger.Info("movie added", "movieId", movie.ID, "userId", app.contextGetUserId(r), "poster", movie.Poster)

	headers := http.Header{"Location": []string{fmt.Sprintf("/movies/%d", movie.ID)}}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, id int) {
	logger := app.contextGetLogger(r)

	err := validateMovieId(id)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	form, err := app.readMovieForm(w, r, false)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer form.Close()

	err = app.validator.Struct(form.Movie)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.catalog.UpdateMovie(r.Context(), id, toMovieDetails(form.Movie), form.Poster)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	logger.Info("movie updated", "movieId", movie.ID, "userId", app.contextGetUserId(r), "posterReplaced", form.Poster != nil)

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, id int) {
	logger := app.contextGetLogger(r)

	err := validateMovieId(id)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	deletedId, err := app.catalog.DeleteMovie(r.Context(), id)
	if err != nil {
		app.catalogErrorResponse(w, r, err)
		return
	}

	logger.Info("movie deleted", "movieId", deletedId, "userId", app.contextGetUserId(r))

	resp := api.DeleteMovieResponse{
		Message: fmt.Sprintf("Movie with id %d deleted successfully", deletedId),
		Id:      deletedId,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
