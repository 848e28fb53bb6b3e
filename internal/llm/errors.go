package llm

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates the generation service replied without the
// expected text payload (no content blocks, or no text block).
var ErrMalformedResponse = errors.New("malformed response from generation service")

// ServiceError wraps a failed generation call with the name of the component
// that made it. The underlying cause is preserved for errors.Is/As matching,
// including ErrMalformedResponse.
type ServiceError struct {
	// Component is the name of the caller that issued the request,
	// e.g. an agent name or "orchestrator".
	Component string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: generation service call failed: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with the responsible component's name.
func NewServiceError(component string, err error) *ServiceError {
	return &ServiceError{Component: component, Err: err}
}
