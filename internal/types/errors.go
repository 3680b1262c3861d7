package types

import (
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by cache stores when a key is absent or expired.
// Callers treat both cases identically.
var ErrCacheMiss = errors.New("cache: key not found")

// GenerationError means the model call returned unusable output (not JSON, or
// JSON missing the expected top-level shape). It is fatal for the current
// request and its result is never cached.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// InvalidRequestError rejects a request before any external call is made,
// e.g. a search with no destination.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}
