package engine

import (
	"errors"
	"fmt"
)

// Engine error codes, as reported in GraphQL error extensions.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidSelection = "INVALID_SELECTION"
	CodeUpstream         = "UPSTREAM_FAILURE"
)

// Error is a failure reported by (or while reaching) the booking engine.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the engine error code, or CodeUpstream for transport-level
// failures that never produced a structured engine response.
func CodeOf(err error) string {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return CodeUpstream
}
