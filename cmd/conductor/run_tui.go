package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conductor-agent/conductor/internal/orchestrator"
	"github.com/conductor-agent/conductor/internal/tui"
	"github.com/conductor-agent/conductor/pkg/models"
)

// runOutcome carries the orchestrator's result across goroutines.
type runOutcome struct {
	results models.ResultMap
	err     error
}

// runWithTUI executes the run behind a bubbletea progress view.
// Quitting the TUI (ctrl+c) cancels the run via cancel.
func runWithTUI(ctx context.Context, cancel context.CancelFunc, orch *orchestrator.Orchestrator, goal string) (models.ResultMap, error) {
	program := tea.NewProgram(tui.NewRunModel(goal))

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case ev := <-orch.Events():
				program.Send(tui.EventMsg{Event: ev})
			case <-stop:
				return
			}
		}
	}()

	done := make(chan runOutcome, 1)
	go func() {
		results, err := orch.Run(ctx, goal)
		done <- runOutcome{results: results, err: err}
		program.Send(tui.DoneMsg{Err: err})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		close(stop)
		return nil, fmt.Errorf("tui: %w", err)
	}
	close(stop)

	// The TUI can exit before the run finishes (ctrl+c); cancel and wait
	// for the orchestrator to unwind.
	select {
	case outcome := <-done:
		return outcome.results, outcome.err
	default:
		cancel()
		outcome := <-done
		return outcome.results, outcome.err
	}
}
