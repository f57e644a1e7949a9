package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raulbellosom/travel-sub002/internal/domain"
	"github.com/raulbellosom/travel-sub002/internal/identity"
)

// UserRepository implements identity.Provider against the local users mirror.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (identity.User, error) {
	const query = `
SELECT id, email, email_verified, name, phone
FROM users
WHERE id = $1`

	var u identity.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID,
		&u.Email,
		&u.EmailVerified,
		&u.Name,
		&u.Phone,
	)
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return identity.User{}, domain.ErrAuthRequired
		}
		return identity.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
