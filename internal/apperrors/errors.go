package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain. Services wrap these with context via
// fmt.Errorf("%w: ...") and handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// ErrEmptyCart is a validation failure: checkout was attempted with no cart lines.
// It wraps ErrValidation so boundary mapping treats it as a 400.
var ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrValidation)
