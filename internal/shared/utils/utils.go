package utils

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ParseStringToUUID parses a user or resource id. Empty and malformed values are errors.
func ParseStringToUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, errors.New("empty id")
	}
	uid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse id %q: %w", s, err)
	}
	return uid, nil
}
