package orchestrator

import (
	"fmt"
	"strings"
)

// PlanningError indicates the plan could not be obtained or decoded.
// When the planner responded but the payload could not be parsed, RawResponse
// holds the original text to aid diagnosis.
type PlanningError struct {
	// RawResponse is the planner's raw reply, empty if the call itself failed.
	RawResponse string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PlanningError) Error() string {
	if e.RawResponse != "" {
		return fmt.Sprintf("planning failed: %v. Raw response: %s", e.Err, e.RawResponse)
	}
	return fmt.Sprintf("planning failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PlanningError) Unwrap() error {
	return e.Err
}

// UnknownAgentError indicates a plan item references an agent name absent
// from the registry. Known lists the valid declared names.
type UnknownAgentError struct {
	// Name is the offending agent reference from the plan.
	Name string
	// Known is the set of registered agent names.
	Known []string
}

// Error implements the error interface.
func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("unknown agent %q in plan. Available agents: %s",
		e.Name, strings.Join(e.Known, ", "))
}
