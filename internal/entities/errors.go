package entities

import "errors"

// Error categories shared across the data access layer. Callers wrap
// these with fmt.Errorf("...: %w", ...) and handlers map them to
// HTTP status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
