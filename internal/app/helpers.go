package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	maxJSONBodyBytes   = 1 << 20
	maxUploadBytes     = 10 << 20
	maxMultipartMemory = 2 << 20
)

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	return decodeJSON(r.Body, dst)
}

// decodeJSON decodes exactly one JSON value into dst and turns decoding
// failures into messages that are safe to show to clients.
func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)

		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)

		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// validateMovieId rejects ids the router bound but no movie can have.
func validateMovieId(id int) error {
	if id < 1 {
		return errors.New(ErrInvalidMovieId)
	}

	return nil
}

// movieForm is a parsed multipart movie upload. Close must be called once
// the poster content has been consumed.
type movieForm struct {
	Movie  api.MovieRequest
	Poster *domain.PosterFile

	file multipart.File
	form *multipart.Form
}

func (f *movieForm) Close() {
	if f.file != nil {
		f.file.Close()
	}

	if f.form != nil {
		f.form.RemoveAll()
	}
}

// readMovieForm parses a multipart request carrying the movie attributes as
// JSON in the "movie" part and the poster in the "file" part.
func (app *Application) readMovieForm(w http.ResponseWriter, r *http.Request, requirePoster bool) (*movieForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+maxJSONBodyBytes)

	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, fmt.Errorf("upload must not be larger than %d bytes", maxUploadBytes)
		}

		return nil, errors.New("body must be a valid multipart form")
	}

	form := &movieForm{form: r.MultipartForm}

	movieJSON, err := movieFormPart(r.MultipartForm)
	if err != nil {
		form.Close()
		return nil, err
	}

	err = decodeJSON(movieJSON, &form.Movie)
	if err != nil {
		form.Close()
		return nil, fmt.Errorf("movie part: %w", err)
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		if requirePoster {
			form.Close()
			return nil, errors.New("poster file is required")
		}

		return form, nil
	case err != nil:
		form.Close()
		return nil, errors.New("poster file could not be read")
	}

	form.file = file
	form.Poster = &domain.PosterFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}

	return form, nil
}

// movieFormPart returns the "movie" part, which clients send either as a
// plain field or as a file part with an application/json content type.
func movieFormPart(form *multipart.Form) (io.Reader, error) {
	if values := form.Value["movie"]; len(values) > 0 {
		return strings.NewReader(values[0]), nil
	}

	if files := form.File["movie"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, errors.New("movie part could not be read")
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxJSONBodyBytes))
		if err != nil {
			return nil, errors.New("movie part could not be read")
		}

		return bytes.NewReader(data), nil
	}

	return nil, errors.New("movie part is required")
}

func toMovieDetails(input api.MovieRequest) domain.MovieDetails {
	return domain.MovieDetails{
		Title:       strings.TrimSpace(input.Title),
		Director:    strings.TrimSpace(input.Director),
		Studio:      strings.TrimSpace(input.Studio),
		Cast:        input.Cast,
		ReleaseYear: input.ReleaseYear,
	}
}

func toMovieResponse(movie *domain.MovieView) api.MovieResponse {
	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}

	return api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Director:    movie.Director,
		Studio:      movie.Studio,
		Cast:        cast,
		ReleaseYear: movie.ReleaseYear,
		Poster:      movie.Poster,
		PosterUrl:   movie.PosterUrl,
	}
}

func toMovieResponses(movies []domain.MovieView) []api.MovieResponse {
	resp := make([]api.MovieResponse, len(movies))
	for i := range movies {
		resp[i] = toMovieResponse(&movies[i])
	}

	return resp
}

func toMoviePageResponse(page *domain.Page) api.MoviePageResponse {
	return api.MoviePageResponse{
		Movies:        toMovieResponses(page.Movies),
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		IsLast:        page.IsLast,
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
