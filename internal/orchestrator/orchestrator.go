// Package orchestrator turns a high-level goal into an ordered plan of
// subtasks and dispatches each to a registered agent, aggregating outputs
// into a result map keyed by agent name.
package orchestrator

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/conductor-agent/conductor/internal/agent"
	"github.com/conductor-agent/conductor/internal/config"
	"github.com/conductor-agent/conductor/internal/llm"
	"github.com/conductor-agent/conductor/pkg/models"
)

// eventBuffer sizes the event channel; dispatch never blocks on it.
const eventBuffer = 64

// Orchestrator owns a registry of agents and runs the planning-and-dispatch
// loop. It is read-only after construction; a single Run executes its call
// sequence strictly in order with no parallelism.
type Orchestrator struct {
	// registry maps lowercased agent names to agents. When two agents
	// share a name case-insensitively, the last registration wins.
	registry map[string]*agent.Agent
	// keys holds registry keys in first-registration order, for stable
	// listings and error messages.
	keys []string

	completer    llm.Completer
	plannerModel string
	planningTemp float64
	execTemp     float64

	events chan Event
	log    zerolog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPlannerModel sets the model used for the planning call.
func WithPlannerModel(model string) Option {
	return func(o *Orchestrator) { o.plannerModel = model }
}

// WithTemperatures overrides the planning and execution temperatures.
func WithTemperatures(planning, execution float64) Option {
	return func(o *Orchestrator) {
		o.planningTemp = planning
		o.execTemp = execution
	}
}

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// New creates an Orchestrator over the given agents. The registry is built
// once here and is immutable afterwards.
func New(completer llm.Completer, agents []*agent.Agent, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:     make(map[string]*agent.Agent, len(agents)),
		completer:    completer,
		planningTemp: config.DefaultPlanningTemperature,
		execTemp:     config.DefaultExecutionTemperature,
		events:       make(chan Event, eventBuffer),
		log:          zerolog.Nop(),
	}

	for _, a := range agents {
		key := strings.ToLower(a.Name)
		if _, exists := o.registry[key]; !exists {
			o.keys = append(o.keys, key)
		}
		o.registry[key] = a
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Agents returns the registered agents in first-registration order.
func (o *Orchestrator) Agents() []*agent.Agent {
	agents := make([]*agent.Agent, len(o.keys))
	for i, key := range o.keys {
		agents[i] = o.registry[key]
	}
	return agents
}

// AgentNames returns the declared names of the registered agents.
func (o *Orchestrator) AgentNames() []string {
	names := make([]string, len(o.keys))
	for i, key := range o.keys {
		names[i] = o.registry[key].Name
	}
	return names
}

// Lookup resolves an agent by case-insensitive name.
func (o *Orchestrator) Lookup(name string) (*agent.Agent, bool) {
	a, ok := o.registry[strings.ToLower(name)]
	return a, ok
}

// Plan asks the planner to decompose the goal into subtasks assigned to
// registered agents. The response is fence-stripped and decoded; items with
// empty fields are dropped. A failed call or undecodable payload is returned
// as a *PlanningError; agent-name validity is deliberately not checked here.
func (o *Orchestrator) Plan(ctx context.Context, goal string) (models.Plan, error) {
	raw, err := o.completer.Complete(ctx, llm.Request{
		Model:       o.plannerModel,
		System:      plannerSystemPrompt,
		User:        buildPlannerPrompt(goal, o.Agents()),
		Temperature: o.planningTemp,
	})
	if err != nil {
		return nil, &PlanningError{Err: err}
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		return nil, &PlanningError{RawResponse: raw, Err: err}
	}

	o.log.Debug().
		Str("goal", goal).
		Int("items", len(plan)).
		Strs("agents", plan.AgentNames()).
		Msg("plan parsed")

	return plan, nil
}

// Run executes the full orchestration loop: plan the goal, dispatch each
// plan item to its agent in order, and aggregate outputs keyed by the
// agent's declared name. Any error at any stage aborts the run; the caller
// sees either a complete result map or an error, never partial results.
func (o *Orchestrator) Run(ctx context.Context, goal string) (models.ResultMap, error) {
	runID := uuid.NewString()
	log := o.log.With().Str("run_id", runID).Logger()
	log.Debug().Str("goal", goal).Msg("run started")

	plan, err := o.Plan(ctx, goal)
	if err != nil {
		o.emit(Event{Type: EventRunFailed, Err: err})
		return nil, err
	}
	o.emit(Event{Type: EventPlanReady, Plan: plan})

	results := make(models.ResultMap, len(plan))
	for i, item := range plan {
		a, ok := o.Lookup(item.AgentName)
		if !ok {
			err := &UnknownAgentError{Name: item.AgentName, Known: o.AgentNames()}
			o.emit(Event{Type: EventRunFailed, Index: i, AgentName: item.AgentName, Err: err})
			return nil, err
		}

		o.emit(Event{Type: EventAgentStarted, Index: i, AgentName: a.Name, Task: item.Task})
		log.Debug().Int("item", i).Str("agent", a.Name).Str("task", item.Task).Msg("dispatching")

		output, err := a.Execute(ctx, o.completer, composeInstruction(item.Task, goal), o.execTemp)
		if err != nil {
			o.emit(Event{Type: EventRunFailed, Index: i, AgentName: a.Name, Err: err})
			return nil, err
		}

		// Keyed by the agent's declared name, not the plan's spelling.
		// A repeated agent overwrites its earlier result.
		results[a.Name] = output
		o.emit(Event{Type: EventAgentCompleted, Index: i, AgentName: a.Name, Task: item.Task, Output: output})
	}

	log.Debug().Int("results", len(results)).Msg("run done")
	o.emit(Event{Type: EventRunDone})
	return results, nil
}
