package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmulenga/internhub-be/internal/models"
)

// Failures callers can act on. Handlers map these to HTTP statuses; anything
// else is an internal error and reported generically.
var (
	// ErrInvalidCredentials deliberately covers both "no such account" and
	// "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrNotFound           = errors.New("account not found")
	// ErrStaleToken means the token predates a password change.
	ErrStaleToken = errors.New("token is no longer valid")
)

// ValidationError reports missing or malformed input the user can correct.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func missingFieldsError(userType models.UserType, fields []string) *ValidationError {
	return validationErrorf("missing required fields for %s: %s", userType, strings.Join(fields, ", "))
}

// DuplicateAccountError reports a registration against an email that already
// has an account, and which user type it belongs to.
type DuplicateAccountError struct {
	ExistingType models.UserType
}

func (e *DuplicateAccountError) Error() string {
	return "an account already exists with this email"
}
