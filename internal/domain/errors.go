package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotFoundOrUnauthorized is returned when an event is missing or the
	// caller is not its organizer. The two cases are deliberately not
	// distinguishable to the caller.
	ErrNotFoundOrUnauthorized = errors.New("event not found or unauthorized")
	// ErrInvalidInput is returned when a caller-supplied value fails a
	// service-level check.
	ErrInvalidInput = errors.New("invalid input")
)
