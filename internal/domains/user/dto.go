package user

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"dashboard-backend/internal/shared/i18n"
)

// Error codes of the custom rules; handlers translate them.
const (
	CodeConfirmMismatch = "validation_confirm_password_mismatch"
	CodeInvalidLanguage = "validation_invalid_language"
)

const (
	passwordMinLength = 6
	passwordMaxLength = 72 // bcrypt input limit
)

// ========================================
// PASSWORD DTOs
// ========================================

// ChangePasswordRequest - PUT /users/me/password
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword,
			validation.When(r.OldPassword != "", validation.Length(passwordMinLength, passwordMaxLength)),
		),
		validation.Field(&r.NewPassword,
			validation.Required,
			validation.Length(passwordMinLength, passwordMaxLength),
		),
		validation.Field(&r.ConfirmNewPassword,
			validation.Required,
			validation.Length(passwordMinLength, passwordMaxLength),
			validation.By(func(value interface{}) error {
				if value.(string) != r.NewPassword {
					return validation.NewError(CodeConfirmMismatch, "passwords do not match")
				}
				return nil
			}),
		),
	)
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateLanguageRequest - PUT /users/me/language
type UpdateLanguageRequest struct {
	Language string `json:"language"`
}

func (r UpdateLanguageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Language,
			validation.Required,
			validation.By(func(value interface{}) error {
				if !i18n.IsSupported(value.(string)) {
					return validation.NewError(CodeInvalidLanguage, "unsupported language")
				}
				return nil
			}),
		),
	)
}

// UserDTO - Public user representation
type UserDTO struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           Role      `json:"role"`
	Language       string    `json:"language"`
	HasSetPassword bool      `json:"has_set_password"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToDTO converts User entity to UserDTO
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		Language:       u.Language,
		HasSetPassword: u.HasSetPassword,
		CreatedAt:      u.CreatedAt,
	}
}

// LanguagesResponse - GET /languages
type LanguagesResponse struct {
	Languages []i18n.Language `json:"languages"`
	Current   string          `json:"current"`
}
