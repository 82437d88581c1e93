package domain

import "errors"

// Validation errors. Caller-input faults, never retried.
var (
	ErrInvalidURL          = errors.New("url must start with http:// or https://")
	ErrCodeLength          = errors.New("custom code must be between 3 and 10 characters")
	ErrCodeNotAlphanumeric = errors.New("custom code must contain only letters and digits")
)

// Conflict errors.
var (
	// ErrCodeExists is returned when the pre-insert existence check finds the code taken.
	ErrCodeExists = errors.New("short code already exists")
	// ErrDuplicateCode is returned by a LinkRepository when the store's unique
	// constraint rejects an insert.
	ErrDuplicateCode = errors.New("duplicate short code")
	// ErrCodeConflict is what callers of Shorten see when ErrDuplicateCode
	// was raised after the pre-check passed.
	ErrCodeConflict = errors.New("short code was taken by a concurrent request")
)

var (
	ErrLinkNotFound        = errors.New("link not found")
	ErrGenerationExhausted = errors.New("unable to allocate a unique short code")
)

// IsValidation reports whether err is a caller-input fault.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrCodeLength) ||
		errors.Is(err, ErrCodeNotAlphanumeric)
}

// IsConflict reports whether err means the requested code is taken.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCodeExists) || errors.Is(err, ErrCodeConflict)
}
