package apperrors

import "errors"

// Every failure in the data layer resolves to one of these sentinels so
// the delivery layer can map them to responses with errors.Is.
var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)
