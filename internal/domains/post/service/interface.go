package service

import (
	"context"

	"github.com/google/uuid"

	"dashboard-backend/internal/domains/post/model"
)

type ServiceInterface interface {
	// CountPosts returns the per-status counts of userID ordered by status
	// priority, plus their sum. Database errors are returned unwrapped.
	CountPosts(ctx context.Context, userID uuid.UUID) (*model.CountResult, error)

	CreatePost(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (*model.Post, error)
	GetPost(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Post, error)
	UpdatePost(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)

	// PreviewSlug is the slug CreatePost/UpdatePost would store.
	PreviewSlug(title, slug string) string
}
