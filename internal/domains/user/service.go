package user

import (
	"context"

	"github.com/google/uuid"

	"dashboard-backend/pkg/jwt"
)

// Service defines the user business logic contract.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)

	// ChangePassword returns ErrUserNotFound or a *PasswordError on failure.
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest, ipAddress string) error

	UpdateLanguage(ctx context.Context, userID uuid.UUID, req UpdateLanguageRequest) (*UserDTO, error)

	Authorizer
}

// Authorizer resolves the user a request may act as for the uid in its path.
type Authorizer interface {
	// Authorize returns nil unless claims are present, uid names an existing
	// user and the caller is that user or an admin.
	Authorize(ctx context.Context, claims *jwt.Claims, uid string) *User
}
