// Package tui renders run progress for Conductor.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conductor-agent/conductor/internal/orchestrator"
)

// stepStatus tracks a plan item's progress in the view.
type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepDone
	stepFailed
)

// step is one plan item rendered in the progress list.
type step struct {
	agentName string
	task      string
	status    stepStatus
}

// EventMsg wraps an orchestrator event for the TUI.
type EventMsg struct {
	Event orchestrator.Event
}

// DoneMsg signals that the run finished; Err is nil on success.
type DoneMsg struct {
	Err error
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	taskStyle   = lipgloss.NewStyle().Faint(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RunModel is a bubbletea model that shows the plan and per-step status
// while the orchestrator runs.
type RunModel struct {
	goal     string
	spinner  spinner.Model
	planning bool
	steps    []step
	done     bool
	err      error
}

// NewRunModel creates a progress view for the given goal.
func NewRunModel(goal string) RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return RunModel{
		goal:     goal,
		spinner:  s,
		planning: true,
	}
}

// Init implements tea.Model.
func (m RunModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.apply(msg.Event)
		return m, nil

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// apply folds an orchestrator event into the view state.
func (m *RunModel) apply(ev orchestrator.Event) {
	switch ev.Type {
	case orchestrator.EventPlanReady:
		m.planning = false
		m.steps = make([]step, len(ev.Plan))
		for i, item := range ev.Plan {
			m.steps[i] = step{agentName: item.AgentName, task: item.Task}
		}
	case orchestrator.EventAgentStarted:
		if ev.Index < len(m.steps) {
			m.steps[ev.Index].status = stepRunning
			m.steps[ev.Index].agentName = ev.AgentName
		}
	case orchestrator.EventAgentCompleted:
		if ev.Index < len(m.steps) {
			m.steps[ev.Index].status = stepDone
		}
	case orchestrator.EventRunFailed:
		m.planning = false
		if ev.Index < len(m.steps) {
			m.steps[ev.Index].status = stepFailed
		}
	}
}

// View implements tea.Model.
func (m RunModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Goal: "+m.goal) + "\n\n")

	if m.planning {
		b.WriteString(fmt.Sprintf("%s planning...\n", m.spinner.View()))
		return b.String()
	}

	if len(m.steps) == 0 {
		b.WriteString("Plan is empty; nothing to do.\n")
		return b.String()
	}

	for _, s := range m.steps {
		var marker string
		switch s.status {
		case stepRunning:
			marker = m.spinner.View()
		case stepDone:
			marker = doneStyle.Render("✓")
		case stepFailed:
			marker = failedStyle.Render("✗")
		default:
			marker = " "
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker,
			agentStyle.Render(s.agentName), taskStyle.Render(s.task)))
	}

	if m.done && m.err == nil {
		b.WriteString("\n" + doneStyle.Render("All subtasks complete.") + "\n")
	}

	return b.String()
}
