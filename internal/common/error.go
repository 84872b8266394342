package common

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned for ids absent from a local collection.
	ErrNotFound = errors.New("not found")
)
