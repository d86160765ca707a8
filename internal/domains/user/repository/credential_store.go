package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"dashboard-backend/internal/domains/user"
	"dashboard-backend/pkg/database"
)

// DefaultBcryptCost matches the cost used for every stored hash.
const DefaultBcryptCost = 12

type bcryptCredentialStore struct {
	pool *pgxpool.Pool
	cost int
}

// NewCredentialStore returns a bcrypt-backed user.CredentialStore. A cost
// outside bcrypt's range falls back to DefaultBcryptCost.
func NewCredentialStore(pool *pgxpool.Pool, cost int) user.CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &bcryptCredentialStore{pool: pool, cost: cost}
}

func (s *bcryptCredentialStore) VerifyPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	var hash *string
	err := s.pool.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, user.ErrUserNotFound
		}
		return false, fmt.Errorf("load password hash: %w", err)
	}

	return compareHash(hash, password)
}

// UpdatePassword locks the row so the same-password check and the write see
// the same hash.
func (s *bcryptCredentialStore) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		var current *string
		err := tx.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.ErrUserNotFound
			}
			return fmt.Errorf("lock password hash: %w", err)
		}

		same, err := compareHash(current, password)
		if err != nil {
			return err
		}
		if same {
			return user.ErrSamePassword
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
			id, string(hashed),
		)
		if err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		return nil
	})
}

func compareHash(hash *string, password string) (bool, error) {
	if hash == nil || *hash == "" {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password hash: %w", err)
	}
}
