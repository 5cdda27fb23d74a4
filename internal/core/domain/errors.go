package domain

import "errors"

var (
	// ErrForbidden is returned when the caller is not allowed to touch a resource.
	ErrForbidden = errors.New("access forbidden")
	// ErrMissingIdentity is returned when a mutating request carries no usable X-User-Id.
	ErrMissingIdentity = errors.New("X-User-Id header is required")
)

// ValidationError describes malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
