package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the user data access contract.
type Repository interface {
	// FindByID reads through the cache (key CacheKey(id)).
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpdateLanguage stores the language preference and drops the cached user.
	UpdateLanguage(ctx context.Context, id uuid.UUID, language string) error

	// Invalidate drops the cached user.
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// CredentialStore owns password hashes.
type CredentialStore interface {
	// VerifyPassword reports whether password matches the stored hash.
	// An account without a password never matches.
	VerifyPassword(ctx context.Context, id uuid.UUID, password string) (bool, error)

	// UpdatePassword replaces the hash. Returns ErrSamePassword when password
	// equals the current one.
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
}
