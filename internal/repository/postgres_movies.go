package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const movieColumns = `id, title, director, studio, movie_cast, release_year, poster, created_at, updated_at`

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, director, studio, movie_cast, release_year, poster)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Director,
		movie.Studio,
		movie.Cast,
		movie.ReleaseYear,
		movie.Poster).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFileAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return movie, nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id ASC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMovies(rows)
}

// GetPage reads the count and the page in one repeatable-read snapshot so
// the reported total matches the returned rows.
func (p *PostgresMovieRepository) GetPage(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, int, error) {
	// Column comes from the domain allow-list, never from raw input.
	query := fmt.Sprintf(`SELECT `+movieColumns+`
		FROM movies
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, filters.Sort.Column, filters.Sort.Direction())

	var (
		movies       []*domain.Movie
		totalRecords int
	)

	txOptions := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	err := runInTx(ctx, p.db, txOptions, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&totalRecords)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx, query, filters.Limit(), filters.Offset())
		if err != nil {
			return err
		}
		defer rows.Close()

		movies, err = collectMovies(rows)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return movies, totalRecords, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, director = $2, studio = $3, movie_cast = $4, release_year = $5, poster = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Director,
		movie.Studio,
		movie.Cast,
		movie.ReleaseYear,
		movie.Poster,
		movie.ID).Scan(&movie.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrRecordNotFound
		case isUniqueViolation(err):
			return domain.ErrFileAlreadyExists
		default:
			return err
		}
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var movie domain.Movie

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Director,
		&movie.Studio,
		&movie.Cast,
		&movie.ReleaseYear,
		&movie.Poster,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func collectMovies(rows pgx.Rows) ([]*domain.Movie, error) {
	movies := []*domain.Movie{}

	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// isUniqueViolation reports a clash on the unique poster column.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
