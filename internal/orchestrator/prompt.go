package orchestrator

import (
	"fmt"
	"strings"

	"github.com/conductor-agent/conductor/internal/agent"
)

// plannerSystemPrompt instructs the model to act as the decomposition planner.
const plannerSystemPrompt = "You are a Task Orchestrator Agent. Your job is to break complex goals into " +
	"manageable subtasks and assign them to appropriate specialized agents. " +
	"Return your plan as a JSON array. Each entry must have two keys: " +
	"'agent' (the name of the agent to perform the task) and 'task' (a short description of the subtask)."

// plannerUserPrompt carries the goal and the agent listing to the planner.
const plannerUserPrompt = `Goal: %s

Available agents:
%s

Please propose a decomposition of the goal into subtasks. Use only the provided agent names when assigning tasks. Format your response as JSON.`

// instructionPrompt frames a subtask for an agent with the overall goal as
// context, so the agent knows both the specific task and the objective.
const instructionPrompt = `Subtask: %s

Context: The overall goal is '%s'. Perform your role on this specific subtask.`

// agentListing renders one "- Name: summary" line per agent, in roster order.
func agentListing(agents []*agent.Agent) string {
	lines := make([]string, len(agents))
	for i, a := range agents {
		lines[i] = fmt.Sprintf("- %s: %s", a.Name, a.Summary())
	}
	return strings.Join(lines, "\n")
}

// buildPlannerPrompt returns the user-level planning message for a goal.
func buildPlannerPrompt(goal string, agents []*agent.Agent) string {
	return fmt.Sprintf(plannerUserPrompt, goal, agentListing(agents))
}

// composeInstruction builds the instruction passed to an agent for one
// plan item.
func composeInstruction(task, goal string) string {
	return fmt.Sprintf(instructionPrompt, task, goal)
}
