package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/conductor-agent/conductor/pkg/models"
)

// planEntry is the JSON structure the planner returns for a single subtask.
type planEntry struct {
	Agent string `json:"agent"`
	Task  string `json:"task"`
}

// StripCodeFence removes optional Markdown code-fence delimiters wrapping a
// planner response: a leading fence line (with or without a language tag) and
// a trailing fence line are discarded. Text without fences passes through
// unchanged. This cleanup is a separate stage from JSON decoding so both can
// be tested independently.
func StripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParsePlan decodes a planner response into an ordered plan. The response is
// fence-stripped, then decoded as a JSON array of {agent, task} records.
// Items whose agent or task is empty after trimming are silently dropped;
// order is preserved otherwise. Agent names are not resolved here — an
// unknown name surfaces at dispatch time, not parse time.
func ParsePlan(response string) (models.Plan, error) {
	cleaned := StripCodeFence(response)

	var entries []planEntry
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("decoding plan JSON: %w", err)
	}

	plan := make(models.Plan, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Agent)
		task := strings.TrimSpace(e.Task)
		if name == "" || task == "" {
			continue
		}
		plan = append(plan, models.PlanItem{AgentName: name, Task: task})
	}

	return plan, nil
}
