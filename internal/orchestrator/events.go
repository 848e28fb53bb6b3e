package orchestrator

import (
	"time"

	"github.com/conductor-agent/conductor/pkg/models"
)

// EventType represents the type of orchestrator event.
type EventType string

const (
	// EventPlanReady indicates planning finished and dispatch is starting.
	EventPlanReady EventType = "plan_ready"
	// EventAgentStarted indicates an agent began executing a plan item.
	EventAgentStarted EventType = "agent_started"
	// EventAgentCompleted indicates an agent finished a plan item.
	EventAgentCompleted EventType = "agent_completed"
	// EventRunDone indicates the run completed successfully.
	EventRunDone EventType = "run_done"
	// EventRunFailed indicates the run aborted with an error.
	EventRunFailed EventType = "run_failed"
)

// Event is a progress notification emitted during a run. Events feed the TUI
// and the plain-text progress printer; dropping them never affects the run.
type Event struct {
	// Type is the kind of event.
	Type EventType
	// Plan is the parsed plan, set on EventPlanReady.
	Plan models.Plan
	// Index is the zero-based plan position for agent events.
	Index int
	// AgentName is the declared name of the agent involved.
	AgentName string
	// Task is the subtask text for agent events.
	Task string
	// Output is the agent's produced text, set on EventAgentCompleted.
	Output string
	// Err carries the failure for EventRunFailed.
	Err error
	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event without blocking. Slow or absent consumers lose
// events, never stall dispatch.
func (o *Orchestrator) emit(ev Event) {
	ev.Timestamp = time.Now()
	select {
	case o.events <- ev:
	default:
	}
}

// Events returns the channel of run progress events.
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}
