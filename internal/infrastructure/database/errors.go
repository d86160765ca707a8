package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes mapped to domain errors.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeInvalidTextRep      = "22P02"
)

// ErrorPayload is the wire form of a database error, passed to clients unchanged.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// IsUniqueViolation reports whether err wraps a unique_violation.
func IsUniqueViolation(err error) bool {
	return HasCode(err, CodeUniqueViolation)
}

// HasCode reports whether err wraps a *pgconn.PgError with the given code.
func HasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// Payload extracts the database error fields from err. Non-Postgres errors only
// fill Message.
func Payload(err error) *ErrorPayload {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &ErrorPayload{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
		}
	}

	return &ErrorPayload{Message: err.Error()}
}
