package domain

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// PosterPathPrefix is the path under the base URL where posters are served.
const PosterPathPrefix = "/file/"

type Movie struct {
	ID          int
	Title       string
	Director    string
	Studio      string
	Cast        []string
	ReleaseYear int
	Poster      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieDetails holds the caller-editable attributes of a movie.
type MovieDetails struct {
	Title       string
	Director    string
	Studio      string
	Cast        []string
	ReleaseYear int
}

func NewMovie(details MovieDetails, poster string) *Movie {
	movie := &Movie{Poster: poster}
	movie.Apply(details)

	return movie
}

// Apply replaces every editable attribute of m with the given details.
func (m *Movie) Apply(details MovieDetails) {
	m.Title = details.Title
	m.Director = details.Director
	m.Studio = details.Studio
	m.Cast = append([]string{}, details.Cast...)
	m.ReleaseYear = details.ReleaseYear
}

type MovieView struct {
	Movie
	PosterUrl string
}

func NewMovieView(movie *Movie, baseUrl string) MovieView {
	return MovieView{
		Movie:     *movie,
		PosterUrl: PosterUrl(baseUrl, movie.Poster),
	}
}

func PosterUrl(baseUrl, poster string) string {
	return strings.TrimRight(baseUrl, "/") + PosterPathPrefix + url.PathEscape(poster)
}

// sortColumns maps the sortable movie attributes to their columns.
var sortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"director":    "director",
	"studio":      "studio",
	"releaseYear": "release_year",
	"poster":      "poster",
}

// SortFields returns the accepted sort field names in a stable order.
func SortFields() []string {
	return []string{"id", "title", "director", "studio", "releaseYear", "poster"}
}

type MovieSort struct {
	Column     string
	Descending bool
}

var DefaultMovieSort = MovieSort{Column: "id"}

// ParseMovieSort resolves a caller supplied field and direction. The
// direction is ascending for "asc" in any case and descending otherwise.
func ParseMovieSort(field, dir string) (MovieSort, error) {
	column, ok := sortColumns[field]
	if !ok {
		return MovieSort{}, ErrInvalidSortField
	}

	return MovieSort{
		Column:     column,
		Descending: !strings.EqualFold(dir, "asc"),
	}, nil
}

func (s MovieSort) Direction() string {
	if s.Descending {
		return "DESC"
	}

	return "ASC"
}

type MovieFilters struct {
	Page     int
	PageSize int
	Sort     MovieSort
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return f.Page * f.PageSize
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetById(ctx context.Context, id int) (*Movie, error)
	GetAll(ctx context.Context) ([]*Movie, error)
	// GetPage returns one page of movies and the total number of movies.
	GetPage(ctx context.Context, filters MovieFilters) ([]*Movie, int, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
