package agent

// Default agent names.
const (
	NameResearch    = "ResearchAgent"
	NameCopywriting = "CopywritingAgent"
	NameAdDesign    = "AdDesignAgent"
)

// researchRolePrompt instructs the fact-gathering persona.
const researchRolePrompt = "You are a Research Agent. Your job is to gather relevant facts, data, and " +
	"context about the subject or question you are assigned. For the given " +
	"task, search for information from general knowledge (no web access) and " +
	"provide a concise summary with references to any important considerations."

// copywritingRolePrompt instructs the persuasive-writing persona.
const copywritingRolePrompt = "You are a Copywriting Agent. You write engaging and persuasive text for " +
	"marketing and communications. When given a task, produce high-quality " +
	"copy tailored to the specified audience and objective. Emphasize clarity, " +
	"benefits, and calls to action where appropriate."

// adDesignRolePrompt instructs the advertising-concept persona.
const adDesignRolePrompt = "You are an Ad Design Agent. You create creative advertising concepts, " +
	"slogans, headlines, and campaign ideas. For the assigned task, deliver " +
	"concise and imaginative advertising ideas that align with the brand and " +
	"target audience."

// DefaultRoster returns the agents shipped with Conductor. The model
// parameter overrides the default model for every agent; empty keeps the
// client default. New personas are added via a roster file (LoadRoster),
// never by modifying the orchestrator.
func DefaultRoster(model string) []*Agent {
	return []*Agent{
		{Name: NameResearch, RolePrompt: researchRolePrompt, Model: model},
		{Name: NameCopywriting, RolePrompt: copywritingRolePrompt, Model: model},
		{Name: NameAdDesign, RolePrompt: adDesignRolePrompt, Model: model},
	}
}
