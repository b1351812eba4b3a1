package models

import "errors"

// Error taxonomy shared by services and handlers. Handlers map these to
// HTTP statuses; everything else is reported as a generic retry-later
// failure.
var (
	// ErrAuthRequired tells the client to open its sign-in prompt
	// instead of rendering an error.
	ErrAuthRequired = errors.New("authentication required")

	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
)
