package dispatch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the dispatch taxonomy. Handlers map these onto HTTP
// statuses; everything else is treated as an internal failure.
var (
	// ErrNotFound means the booking or offer does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is not the resource owner or lacks the
	// required role.
	ErrForbidden = errors.New("access denied")

	// ErrConflict means an optimistic transition lost: the offer was already
	// processed, the booking was already claimed, or an illegal lifecycle
	// step was attempted. Clients treat this as normal flow, not a fault.
	ErrConflict = errors.New("already processed")
)

// ValidationError reports malformed or missing input, checked before any
// mutation begins.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
