package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/pkg/cache"
)

// userCacheTTL balances freshness of the profile against DB load.
const userCacheTTL = 15 * time.Minute

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository wires the user repository with its Redis cache layer.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// FindByID implements cache-aside: cache first, then DB, then fill the cache.
// Cache failures never fail the request.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := user.CacheKey(id)

	var u user.User
	found, err := r.cache.Get(ctx, cacheKey, &u)
	if err == nil && found {
		return &u, nil
	}
	if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("user cache read failed")
	}

	query := `
		SELECT
			id, email, full_name, role, language,
			password_hash IS NOT NULL AS has_set_password,
			created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var role string
	err = r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&role,
		&u.Language,
		&u.HasSetPassword,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	u.Role = user.Role(role)

	if err := r.cache.Set(ctx, cacheKey, &u, userCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("user cache write failed")
	}

	return &u, nil
}

func (r *postgresRepository) UpdateLanguage(ctx context.Context, id uuid.UUID, language string) error {
	query := `UPDATE users SET language = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, language)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return r.Invalidate(ctx, id)
}

func (r *postgresRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := r.cache.Delete(ctx, user.CacheKey(id)); err != nil {
		return fmt.Errorf("invalidate user cache: %w", err)
	}
	return nil
}
