package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrGenerationFailed marks an AI generation call that exhausted retries.
	ErrGenerationFailed = errors.New("generation failed")
)
