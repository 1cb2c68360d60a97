package library

import "errors"

// Error classes surfaced by collection operations. Callers route them to
// distinct user-facing treatments: a login prompt, a warning, or a generic
// failure notice.
var (
	// ErrAuthRequired is returned by mutating operations invoked without an
	// active session. No remote call is attempted in that case.
	ErrAuthRequired = errors.New("authentication required")

	// ErrValidation marks input rejected before any remote call.
	ErrValidation = errors.New("validation failed")

	// ErrNotOwner is returned when a playlist mutation targets a playlist
	// outside the user's owned list.
	ErrNotOwner = errors.New("playlist not owned by current user")

	// ErrSuperseded marks a completion discarded because a newer request for
	// the same entity was issued while it was in flight.
	ErrSuperseded = errors.New("operation superseded by a newer request")
)
