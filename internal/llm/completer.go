package llm

import "context"

// Request describes a single generation call: one system instruction, one
// user message, and the sampling temperature.
type Request struct {
	// Model identifies the backing model configuration. Empty uses the
	// client's default.
	Model string
	// System is the system-level instruction (persona or planner role).
	System string
	// User is the user-level message, passed verbatim.
	User string
	// Temperature is the sampling temperature in [0,1].
	Temperature float64
}

// Completer is the boundary to the text-generation service. Implementations
// return the primary generated text with surrounding whitespace trimmed.
// The agent and orchestrator layers depend on this interface rather than the
// concrete client so they can be tested with stubs.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Compile-time verification that Client implements Completer.
var _ Completer = (*Client)(nil)
