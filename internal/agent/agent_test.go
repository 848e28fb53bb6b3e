package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/conductor-agent/conductor/internal/llm"
)

// recordingCompleter captures the request and returns a canned reply.
type recordingCompleter struct {
	req  llm.Request
	text string
	err  error
}

func (r *recordingCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	r.req = req
	return r.text, r.err
}

func TestExecute_BuildsRequest(t *testing.T) {
	a := &Agent{Name: "ResearchAgent", RolePrompt: "You are a Research Agent. You gather facts.", Model: "some-model"}
	rec := &recordingCompleter{text: "  generated text  "}

	out, err := a.Execute(context.Background(), rec, "Summarize X", 0.7)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if rec.req.System != a.RolePrompt {
		t.Errorf("System = %q, want the role prompt", rec.req.System)
	}
	if rec.req.User != "Summarize X" {
		t.Errorf("User = %q, instruction must pass through verbatim", rec.req.User)
	}
	if rec.req.Model != "some-model" {
		t.Errorf("Model = %q", rec.req.Model)
	}
	if rec.req.Temperature != 0.7 {
		t.Errorf("Temperature = %g", rec.req.Temperature)
	}
	if out != "generated text" {
		t.Errorf("Output = %q, want trimmed text", out)
	}
}

func TestExecute_WrapsErrorWithAgentName(t *testing.T) {
	cause := errors.New("connection refused")
	a := &Agent{Name: "CopywritingAgent", RolePrompt: "You are a Copywriting Agent. You write copy."}
	rec := &recordingCompleter{err: cause}

	_, err := a.Execute(context.Background(), rec, "task", 0.7)
	if err == nil {
		t.Fatal("Expected error")
	}

	var svcErr *llm.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Expected *llm.ServiceError, got %T", err)
	}
	if svcErr.Component != "CopywritingAgent" {
		t.Errorf("Component = %q, want the agent's name", svcErr.Component)
	}
	if !errors.Is(err, cause) {
		t.Error("Underlying cause not preserved")
	}
}

func TestExecute_MalformedResponse(t *testing.T) {
	a := &Agent{Name: "AdDesignAgent", RolePrompt: "You are an Ad Design Agent. You make ads."}
	rec := &recordingCompleter{err: llm.ErrMalformedResponse}

	_, err := a.Execute(context.Background(), rec, "task", 0.7)
	if !errors.Is(err, llm.ErrMalformedResponse) {
		t.Errorf("Expected ErrMalformedResponse to be matchable, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "first sentence",
			prompt: "You are a Research Agent. Your job is to gather facts.",
			want:   "You are a Research Agent.",
		},
		{
			name:   "no period",
			prompt: "You gather facts",
			want:   "You gather facts",
		},
		{
			name:   "leading whitespace",
			prompt: "  You write copy. Keep it short.",
			want:   "You write copy.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Agent{Name: "X", RolePrompt: tt.prompt}
			if got := a.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultRoster(t *testing.T) {
	roster := DefaultRoster("override-model")

	if len(roster) != 3 {
		t.Fatalf("Expected 3 default agents, got %d", len(roster))
	}

	names := map[string]bool{}
	for _, a := range roster {
		names[a.Name] = true
		if a.RolePrompt == "" {
			t.Errorf("Agent %s has empty role prompt", a.Name)
		}
		if a.Model != "override-model" {
			t.Errorf("Agent %s model = %q", a.Name, a.Model)
		}
	}

	for _, want := range []string{NameResearch, NameCopywriting, NameAdDesign} {
		if !names[want] {
			t.Errorf("Missing default agent %s", want)
		}
	}

	if err := ValidateRoster(roster); err != nil {
		t.Errorf("Default roster should validate: %v", err)
	}
}
