package model

import (
	"time"

	"github.com/google/uuid"
)

// Post maps the posts table.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns the post.
func (p *Post) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// ApplyStatus moves the post to next, enforcing the workflow rules.
// publish stamps PublishedAt when unset; future requires a PublishedAt after now.
func (p *Post) ApplyStatus(next Status, publishedAt *time.Time, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !p.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	at := p.PublishedAt
	if publishedAt != nil {
		at = publishedAt
	}

	switch next {
	case StatusPublish:
		if at == nil {
			stamped := now
			at = &stamped
		}
	case StatusFuture:
		if at == nil || !at.After(now) {
			return ErrFutureDateRequired
		}
	}

	p.PublishedAt = at
	p.Status = next
	return nil
}

// Actor is the authenticated caller of a post operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanAccess reports whether the actor may read or edit p.
func (a Actor) CanAccess(p *Post) bool {
	return a.IsAdmin || p.IsOwnedBy(a.UserID)
}
