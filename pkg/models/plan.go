package models

// PlanItem assigns one subtask to a named agent.
type PlanItem struct {
	// AgentName is the plan's reference to an agent. It is resolved
	// case-insensitively against the registry at dispatch time, not at
	// parse time.
	AgentName string `json:"agent"`
	// Task is the free-text description of the subtask.
	Task string `json:"task"`
}

// Plan is an ordered sequence of plan items. Insertion order is execution
// order. A plan may be empty, which is a valid plan with zero work to do.
type Plan []PlanItem

// AgentNames returns the agent names referenced by the plan, in plan order.
func (p Plan) AgentNames() []string {
	names := make([]string, len(p))
	for i, item := range p {
		names[i] = item.AgentName
	}
	return names
}

// ResultMap maps an agent's declared name to the text it produced.
// If the same agent appears in multiple plan items, the later result
// overwrites the earlier one.
type ResultMap map[string]string
