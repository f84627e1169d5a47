// Package apperr defines the error kinds surfaced to callers of the
// recipe, household and shopping services.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks operations on lists, items or recipes that do not
	// exist or do not belong to the acting user.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input such as an empty required name.
	ErrValidation = errors.New("validation failed")
)

// Error carries a user-facing message and unwraps to its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "application error"
}

func (e *Error) Unwrap() error { return e.Kind }

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds an ErrValidation error.
func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
