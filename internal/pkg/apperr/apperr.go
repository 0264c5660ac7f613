package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the generic sentinel for missing entities.
	ErrNotFound = errors.New("not found")
	// ErrPrecursorMissing signals that a required upstream artifact does not
	// exist yet (e.g. no codebase analysis before master plan generation).
	ErrPrecursorMissing = errors.New("precursor missing")
	// ErrInvalidPath signals a path that escapes its repository root.
	ErrInvalidPath = errors.New("invalid path")
)

// UpstreamError is returned when the completion backend is unreachable or
// answers with a non-2xx status. It is never retried inline; the next
// scheduled sweep is the retry mechanism.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("completion backend unreachable: %s", e.Body)
	}
	return fmt.Sprintf("completion backend http %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// ParseError is returned when no JSON value could be recovered from a raw
// completion. Raw keeps the head of the response for diagnosis.
type ParseError struct {
	Raw string
}

const parseErrorPreview = 200

func (e *ParseError) Error() string {
	raw := e.Raw
	if len(raw) > parseErrorPreview {
		raw = raw[:parseErrorPreview]
	}
	return fmt.Sprintf("could not parse JSON from response: %s", raw)
}
