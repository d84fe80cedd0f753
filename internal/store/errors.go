package store

import (
	"errors"
	"fmt"

	"github.com/forgeboard/forgeboard/internal/validation"
)

var (
	ErrNotFound         = errors.New("project request not found")
	ErrDraftRequired    = errors.New("request is no longer a draft")
	ErrAlreadyPublished = errors.New("request is already published")
	ErrValidation       = errors.New("validation failed")
	ErrStorage          = errors.New("storage unavailable")
)

// ValidationFailedError carries the per-field failures behind ErrValidation.
// errors.Is(err, ErrValidation) matches it; errors.As recovers the fields.
type ValidationFailedError struct {
	Errors []validation.ValidationError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed (%d field errors)", len(e.Errors))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidation
}

// newValidationError wraps field errors, or returns nil when there are none.
func newValidationError(errs []validation.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationFailedError{Errors: errs}
}
