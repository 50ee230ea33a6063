package models

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned for any operation referencing an unknown
// session id. It is surfaced to the caller verbatim and never retried.
var ErrSessionNotFound = errors.New("session not found")

// ErrGenerationUnavailable marks the narrative collaborator as unconfigured
// or unreachable. It is never escalated to a hard failure: callers degrade to
// a fixed placeholder string.
var ErrGenerationUnavailable = errors.New("story generation unavailable")

// ValidationError reports the first missing or invalid telemetry field. The
// request is rejected before any model is invoked.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid telemetry: field %q %s", e.Field, e.Reason)
}

// ModelUnavailableError indicates a required model artifact failed to load or
// is absent at call time. Distinct from ValidationError: the input was valid
// but the service is misconfigured, so it maps to a server-side error class.
type ModelUnavailableError struct {
	Model string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("model %q not loaded", e.Model)
}
