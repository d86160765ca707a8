package user

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Service-level errors
var (
	ErrOldPasswordRequired = errors.New("old password is required")
	ErrOldPasswordMismatch = errors.New("old password does not match")
	ErrSamePassword        = errors.New("new password should be different from the old password")
)

// ErrorKind classifies a failed password change. The set is closed.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindRequired     ErrorKind = "required"
	KindMismatch     ErrorKind = "mismatch"
	KindSamePassword ErrorKind = "same_password"
	KindRemote       ErrorKind = "remote"
)

// Form fields a password error can point at.
const (
	FieldOldPassword        = "old_password"
	FieldNewPassword        = "new_password"
	FieldConfirmNewPassword = "confirm_new_password"
)

// PasswordError is returned by ChangePassword for every failure except a
// missing user. Field is empty for KindRemote and KindValidation.
type PasswordError struct {
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *PasswordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("change password (%s on %s): %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("change password (%s): %v", e.Kind, e.Err)
}

func (e *PasswordError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a *PasswordError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var pe *PasswordError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func newPasswordError(kind ErrorKind, field string, err error) *PasswordError {
	return &PasswordError{Kind: kind, Field: field, Err: err}
}

// NewValidationError wraps DTO validation failures.
func NewValidationError(err error) *PasswordError {
	return newPasswordError(KindValidation, "", err)
}

// NewRequiredError: the account has a password but none was supplied.
func NewRequiredError() *PasswordError {
	return newPasswordError(KindRequired, FieldOldPassword, ErrOldPasswordRequired)
}

// NewMismatchError: the supplied old password is wrong.
func NewMismatchError() *PasswordError {
	return newPasswordError(KindMismatch, FieldOldPassword, ErrOldPasswordMismatch)
}

// NewSamePasswordError: the credential store refused an unchanged password.
func NewSamePasswordError() *PasswordError {
	return newPasswordError(KindSamePassword, FieldNewPassword, ErrSamePassword)
}

// NewRemoteError wraps any credential store failure.
func NewRemoteError(err error) *PasswordError {
	return newPasswordError(KindRemote, "", err)
}
