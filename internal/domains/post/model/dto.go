package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CountResult is the per-status aggregate after ordering.
type CountResult struct {
	Data  []StatusCount `json:"data"`
	Count int           `json:"count"`
}

// CreatePostRequest - POST /posts/:uid
type CreatePostRequest struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Length(0, 255)),
		validation.Field(&r.Status, validation.When(r.Status != "", validation.By(validStatus))),
	)
}

// UpdatePostRequest - PUT /post/:id. Nil fields are left untouched.
type UpdatePostRequest struct {
	Title       *string    `json:"title,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.When(r.Title != nil, validation.Required, validation.Length(1, 255))),
		validation.Field(&r.Slug, validation.When(r.Slug != nil, validation.Length(0, 255))),
		validation.Field(&r.Status, validation.When(r.Status != nil, validation.By(validStatus))),
	)
}

func validStatus(value interface{}) error {
	var s Status
	switch v := value.(type) {
	case Status:
		s = v
	case *Status:
		if v == nil {
			return nil
		}
		s = *v
	}
	if !s.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
