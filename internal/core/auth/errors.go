package auth

import "errors"

// Authentication errors. Both map to UNAUTHENTICATED.
var (
	ErrMissingKey = errors.New("API key required in x-api-key metadata")
	ErrInvalidKey = errors.New("invalid API key")
)
