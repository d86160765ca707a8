package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dashboard-backend/internal/domains/post/editor"
	"dashboard-backend/internal/domains/post/model"
	"dashboard-backend/internal/domains/post/repository"
)

type postService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository) ServiceInterface {
	return &postService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// =====================================================
// COUNT
// =====================================================

func (s *postService) CountPosts(ctx context.Context, userID uuid.UUID) (*model.CountResult, error) {
	rows, err := s.postRepo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	sorted := model.SortByPriority(rows)
	return &model.CountResult{
		Data:  sorted,
		Count: model.TotalCount(sorted),
	}, nil
}

// =====================================================
// CREATE / READ / UPDATE
// =====================================================

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:  userID,
		Title:   req.Title,
		Slug:    editor.Derive(req.Title, req.Slug),
		Content: req.Content,
		Status:  model.StatusDraft,
	}

	if req.Status != "" && req.Status != model.StatusDraft {
		if err := post.ApplyStatus(req.Status, req.PublishedAt, s.now()); err != nil {
			return nil, err
		}
	} else if req.PublishedAt != nil {
		post.PublishedAt = req.PublishedAt
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Info().
		Str("post_id", post.ID.String()).
		Str("user_id", userID.String()).
		Str("status", post.Status.String()).
		Msg("post created")

	return post, nil
}

func (s *postService) GetPost(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(post) {
		// hide other users' posts
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	post, err := s.postRepo.Update(ctx, id, func(p *model.Post) error {
		if !actor.CanAccess(p) {
			return model.ErrPostNotFound
		}

		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Content != nil {
			p.Content = *req.Content
		}
		if req.Slug != nil {
			p.Slug = editor.Derive(p.Title, *req.Slug)
		} else if p.Slug == "" {
			p.Slug = editor.Derive(p.Title, "")
		}

		switch {
		case req.Status != nil:
			return p.ApplyStatus(*req.Status, req.PublishedAt, now)
		case req.PublishedAt != nil:
			return p.ApplyStatus(p.Status, req.PublishedAt, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("post_id", post.ID.String()).
		Str("status", post.Status.String()).
		Msg("post updated")

	return post, nil
}

func (s *postService) PreviewSlug(title, slug string) string {
	return editor.Derive(title, slug)
}
