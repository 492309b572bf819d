package reservation

import (
	"errors"
	"fmt"

	"tourbook/services/engine"
)

// Flow error codes. Handlers map these onto HTTP statuses; none are ever
// swallowed.
const (
	CodeNotFound         = "notFound"         // reservation or item missing upstream
	CodeInvalidSelection = "invalidSelection" // option combination or attach precondition rejected
	CodeMissingConsent   = "missingConsent"   // terms not accepted; caught before any network call
	CodePricingNotReady  = "pricingNotReady"  // pricing requested before options complete
	CodeUpstreamFailure  = "upstreamFailure"  // transport/timeout/5xx from the engine
	CodePartialProgress  = "partialProgress"  // submission failed after answers may have landed
)

// FlowError is a classified failure in the assembly/commit flow.
type FlowError struct {
	Code    string
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func newFlowError(code, message string) error {
	return &FlowError{Code: code, Message: message}
}

// CodeOf extracts the flow error code, defaulting to upstreamFailure for
// unclassified errors.
func CodeOf(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return CodeUpstreamFailure
}

// IsCode reports whether err carries the given flow error code.
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}

// fromEngine classifies an engine client error into the flow taxonomy.
func fromEngine(err error, message string) error {
	code := CodeUpstreamFailure
	switch engine.CodeOf(err) {
	case engine.CodeNotFound:
		code = CodeNotFound
	case engine.CodeInvalidSelection:
		code = CodeInvalidSelection
	}
	return &FlowError{Code: code, Message: message, Err: err}
}
