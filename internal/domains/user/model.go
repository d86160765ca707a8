package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps the users table. The password hash never leaves the credential
// store; HasSetPassword is derived from its presence.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	FullName       string    `db:"full_name" json:"full_name"`
	Role           Role      `db:"role" json:"role"`
	Language       string    `db:"language" json:"language"`
	HasSetPassword bool      `db:"has_set_password" json:"has_set_password"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// CacheKey is the Redis key of the cached user resource.
func CacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}
