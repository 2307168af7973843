package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	return insertUser(ctx, p.db, user)
}

func (p *PostgresUserRepository) CreateWithToken(
	ctx context.Context,
	user *domain.User,
	newToken func(*domain.User) (*domain.RefreshToken, error)) error {

	err := runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := insertUser(ctx, tx, user)
		if err != nil {
			return err
		}

		token, err := newToken(user)
		if err != nil {
			return err
		}

		return insertRefreshToken(ctx, tx, token)
	})
	if err != nil {
		user.ID = 0
		return err
	}

	return nil
}

func insertUser(ctx context.Context, q queryRower, user *domain.User) error {
	query := `INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := q.QueryRow(ctx, query, user.Username, user.Password.Hash).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`

	return p.getUser(ctx, query, username)
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`

	return p.getUser(ctx, query, id)
}

func (p *PostgresUserRepository) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User

	err := p.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Password.Hash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}
