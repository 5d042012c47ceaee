package domain

import "errors"

var (
	// ErrNotFound means the estimate does not exist or does not belong to
	// the given project (and company, when scoped).
	ErrNotFound = errors.New("not found")
	// ErrNoActiveCatalog means no active labor-rate catalog is configured.
	ErrNoActiveCatalog = errors.New("no active golden price list configured")
	// ErrInvalidInput marks request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
