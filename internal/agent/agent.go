// Package agent provides the specialized worker agents for Conductor.
// Each agent wraps a fixed persona and delegates text generation for a
// single instruction; the orchestrator treats all agents uniformly.
package agent

import (
	"context"
	"strings"

	"github.com/conductor-agent/conductor/internal/llm"
)

// Agent is a named, stateless text-transformation unit bound to a fixed
// role prompt. Agents are constructed once at startup and are immutable
// afterwards; they are safe to share across runs.
type Agent struct {
	// Name uniquely identifies the agent within a roster. Lookup is
	// case-insensitive, but results are keyed by this declared form.
	Name string `yaml:"name"`
	// RolePrompt is the system-level persona statement.
	RolePrompt string `yaml:"role"`
	// Model optionally overrides the default model for this agent.
	Model string `yaml:"model,omitempty"`
}

// Execute runs the agent on one instruction. The role prompt is sent as the
// system message and the instruction verbatim as the user message. Returns
// the generated text with surrounding whitespace trimmed.
//
// A failed or malformed service call is returned as a *llm.ServiceError
// naming this agent; there are no retries.
func (a *Agent) Execute(ctx context.Context, completer llm.Completer, instruction string, temperature float64) (string, error) {
	out, err := completer.Complete(ctx, llm.Request{
		Model:       a.Model,
		System:      a.RolePrompt,
		User:        instruction,
		Temperature: temperature,
	})
	if err != nil {
		return "", llm.NewServiceError(a.Name, err)
	}

	return strings.TrimSpace(out), nil
}

// Summary returns the first sentence of the role prompt, used when listing
// agents in planner prompts and CLI output.
func (a *Agent) Summary() string {
	prompt := strings.TrimSpace(a.RolePrompt)
	if i := strings.Index(prompt, "."); i >= 0 {
		return prompt[:i+1]
	}
	return prompt
}
