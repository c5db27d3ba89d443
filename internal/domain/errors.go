package domain

import "errors"

var (
	// ErrUnauthenticated is returned before any service call when an
	// operation requires a signed-in user and none is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotFound is returned when a lecture does not exist or belongs
	// to a different user.
	ErrNotFound = errors.New("lecture not found")
)
