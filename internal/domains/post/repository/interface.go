package repository

import (
	"context"

	"github.com/google/uuid"

	"dashboard-backend/internal/domains/post/model"
)

// MutateFunc edits a locked post in place; returning an error aborts the update.
type MutateFunc func(p *model.Post) error

type PostRepository interface {
	// CountByStatus runs count_posts(uid). Rows come back in database order.
	CountByStatus(ctx context.Context, userID uuid.UUID) ([]model.StatusCount, error)

	// Create inserts a post and fills ID and timestamps.
	Create(ctx context.Context, post *model.Post) error

	// GetByID returns ErrPostNotFound when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// Update locks the row, applies fn and persists the result in one transaction.
	Update(ctx context.Context, id uuid.UUID, fn MutateFunc) (*model.Post, error)
}
