package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a project file, manifest, or package layout is invalid.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a directory, module, or file reference did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrUsage indicates an API was called on an object that does not support it.
	ErrUsage = errors.New("usage error")
)
