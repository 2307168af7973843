package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type PostgresRefreshTokenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRefreshTokenRepository(db *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{
		db: db,
	}
}

func (p *PostgresRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	return insertRefreshToken(ctx, p.db, token)
}

func insertRefreshToken(ctx context.Context, q queryRower, token *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (hash, user_id, expiry)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return q.QueryRow(ctx, query, token.Hash, token.UserID, token.Expiry).Scan(&token.ID, &token.CreatedAt)
}

// GetByHash locks the token row in share mode, so a lookup waits for an
// in-flight revocation of the same token and then observes it.
func (p *PostgresRefreshTokenRepository) GetByHash(ctx context.Context, hash []byte) (*domain.RefreshToken, error) {
	query := `SELECT t.id, t.hash, t.user_id, t.expiry, t.revoked, t.created_at,
			u.id, u.username, u.password_hash, u.created_at
		FROM refresh_tokens t
		INNER JOIN users u ON u.id = t.user_id
		WHERE t.hash = $1
		FOR SHARE OF t`

	var (
		token domain.RefreshToken
		user  domain.User
	)

	err := p.db.QueryRow(ctx, query, hash).Scan(
		&token.ID,
		&token.Hash,
		&token.UserID,
		&token.Expiry,
		&token.Revoked,
		&token.CreatedAt,
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

	token.User = &user

	return &token, nil
}

func (p *PostgresRefreshTokenRepository) Revoke(ctx context.Context, hash []byte) error {
	result, err := p.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE hash = $1 AND NOT revoked`, hash)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := p.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expiry <= $1 OR revoked`, now)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
