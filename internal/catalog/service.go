// Package catalog keeps movie records and their poster files consistent.
//
// Every movie readable through the repository references a poster that is
// present in the poster store. Mutations are ordered so the invariant holds
// between any two steps: a poster is written before the record that points
// to it, and removed only after no record points to it anymore.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/events"
)

type Service struct {
	logger    *slog.Logger
	movies    domain.MovieRepository
	posters   domain.PosterStore
	publisher events.Publisher
	baseUrl   string
	locks     *keyedMutex
}

func NewService(
	logger *slog.Logger,
	movies domain.MovieRepository,
	posters domain.PosterStore,
	publisher events.Publisher,
	baseUrl string) *Service {

	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Service{
		logger:    logger,
		movies:    movies,
		posters:   posters,
		publisher: publisher,
		baseUrl:   baseUrl,
		locks:     newKeyedMutex(),
	}
}

func (s *Service) AddMovie(ctx context.Context, details domain.MovieDetails, poster domain.PosterFile) (*domain.MovieView, error) {
	err := domain.ValidatePosterName(poster.Name)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(fileKey(poster.Name))
	defer unlock()

	exists, err := s.posters.Exists(ctx, poster.Name)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, domain.ErrFileAlreadyExists
	}

	err = s.posters.Write(ctx, poster)
	if err != nil {
		return nil, err
	}

	movie := domain.NewMovie(details, poster.Name)

	err = s.movies.Create(ctx, movie)
	if err != nil {
		s.releasePoster(ctx, poster.Name, err)
		return nil, err
	}

	s.publish(ctx, events.MovieCreated, movie)

	return s.view(movie), nil
}

func (s *Service) GetMovie(ctx context.Context, id int) (*domain.MovieView, error) {
	movie, err := s.getMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(movie), nil
}

// ListAll returns every movie in id order. Each call reads the repository again.
func (s *Service) ListAll(ctx context.Context) ([]domain.MovieView, error) {
	movies, err := s.movies.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.views(movies), nil
}

// ListPaginated returns the zero-indexed page in id order.
func (s *Service) ListPaginated(ctx context.Context, page, pageSize int) (*domain.Page, error) {
	return s.listPage(ctx, page, pageSize, domain.DefaultMovieSort)
}

// ListPaginatedSorted returns the zero-indexed page ordered by sortBy. The
// order is ascending when dir is "asc" in any case and descending otherwise.
func (s *Service) ListPaginatedSorted(ctx context.Context, page, pageSize int, sortBy, dir string) (*domain.Page, error) {
	sort, err := domain.ParseMovieSort(sortBy, dir)
	if err != nil {
		return nil, err
	}

	return s.listPage(ctx, page, pageSize, sort)
}

func (s *Service) listPage(ctx context.Context, page, pageSize int, sort domain.MovieSort) (*domain.Page, error) {
	if page < 0 || pageSize < 1 {
		return nil, domain.ErrInvalidPagination
	}

	filters := domain.MovieFilters{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
	}

	movies, total, err := s.movies.GetPage(ctx, filters)
	if err != nil {
		return nil, err
	}

	return domain.NewPage(s.views(movies), total, page, pageSize), nil
}

// UpdateMovie replaces the movie's details and, when poster is not nil, its
// poster. The new poster is written and referenced before the old one is
// deleted; if the record cannot be saved the new poster is removed again
// and the movie keeps its previous poster.
func (s *Service) UpdateMovie(ctx context.Context, id int, details domain.MovieDetails, poster *domain.PosterFile) (*domain.MovieView, error) {
	if poster != nil {
		err := domain.ValidatePosterName(poster.Name)
		if err != nil {
			return nil, err
		}
	}

	unlock := s.locks.Lock(movieKey(id))
	defer unlock()

	movie, err := s.getMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	if poster == nil {
		movie.Apply(details)

		err = s.saveMovie(ctx, movie)
		if err != nil {
			return nil, err
		}

		s.publish(ctx, events.MovieUpdated, movie)

		return s.view(movie), nil
	}

	oldPoster := movie.Poster
	replacing := poster.Name != oldPoster

	unlockFiles := s.locks.LockAll(fileKey(oldPoster), fileKey(poster.Name))
	defer unlockFiles()

	if replacing {
		exists, err := s.posters.Exists(ctx, poster.Name)
		if err != nil {
			return nil, err
		}

		if exists {
			return nil, domain.ErrFileAlreadyExists
		}
	}

	err = s.posters.Write(ctx, *poster)
	if err != nil {
		return nil, err
	}

	movie.Apply(details)
	movie.Poster = poster.Name

	err = s.saveMovie(ctx, movie)
	if err != nil {
		if replacing {
			s.releasePoster(ctx, poster.Name, err)
		}

		return nil, err
	}

	if replacing {
		err = s.posters.Delete(ctx, oldPoster)
		if err != nil {
			s.logger.Warn("failed to delete replaced poster", "movieId", id, "poster", oldPoster, "error", err)
		}
	}

	s.publish(ctx, events.MovieUpdated, movie)

	return s.view(movie), nil
}

// DeleteMovie removes the record first and the poster second, so no reader
// can find a record whose poster is already gone.
func (s *Service) DeleteMovie(ctx context.Context, id int) (int, error) {
	unlock := s.locks.Lock(movieKey(id))
	defer unlock()

	movie, err := s.getMovie(ctx, id)
	if err != nil {
		return 0, err
	}

	unlockFile := s.locks.Lock(fileKey(movie.Poster))
	defer unlockFile()

	err = s.movies.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return 0, domain.ErrMovieNotFound
		}

		return 0, err
	}

	err = s.posters.Delete(ctx, movie.Poster)
	if err != nil {
		s.logger.Warn("failed to delete poster of deleted movie", "movieId", id, "poster", movie.Poster, "error", err)
	}

	s.publish(ctx, events.MovieDeleted, movie)

	return movie.ID, nil
}

func (s *Service) getMovie(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.movies.GetById(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrMovieNotFound
		}

		return nil, err
	}

	return movie, nil
}

func (s *Service) saveMovie(ctx context.Context, movie *domain.Movie) error {
	err := s.movies.Update(ctx, movie)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ErrMovieNotFound
	}

	return err
}

// releasePoster undoes a poster write after the record step failed with
// cause. A unique violation means a committed record from another writer
// already references the name, so the file now belongs to that record and
// stays.
func (s *Service) releasePoster(ctx context.Context, name string, cause error) {
	if errors.Is(cause, domain.ErrFileAlreadyExists) {
		s.logger.Warn("poster name claimed by another record", "poster", name)
		return
	}

	s.discardPoster(ctx, name)
}

// discardPoster removes a poster written by a step that later failed.
func (s *Service) discardPoster(ctx context.Context, name string) {
	err := s.posters.Delete(context.WithoutCancel(ctx), name)
	if err != nil {
		s.logger.Error("failed to remove unreferenced poster", "poster", name, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, eventType string, movie *domain.Movie) {
	event := events.MovieEvent{
		Type:       eventType,
		MovieID:    movie.ID,
		Title:      movie.Title,
		Poster:     movie.Poster,
		OccurredAt: time.Now().UTC(),
	}

	err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.logger.Warn("failed to publish movie event", "type", eventType, "movieId", movie.ID, "error", err)
	}
}

func (s *Service) view(movie *domain.Movie) *domain.MovieView {
	view := domain.NewMovieView(movie, s.baseUrl)
	return &view
}

func (s *Service) views(movies []*domain.Movie) []domain.MovieView {
	views := make([]domain.MovieView, len(movies))
	for i, movie := range movies {
		views[i] = domain.NewMovieView(movie, s.baseUrl)
	}

	return views
}

func fileKey(name string) string {
	return "file:" + name
}

func movieKey(id int) string {
	return "movie:" + strconv.Itoa(id)
}
