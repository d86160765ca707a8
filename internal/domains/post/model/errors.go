package model

import "errors"

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrSlugTaken          = errors.New("slug already used by another post")
	ErrInvalidStatus      = errors.New("invalid post status")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrFutureDateRequired = errors.New("future status requires a published_at in the future")
)
