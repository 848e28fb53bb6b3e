package models

import "time"

// RunStatus represents the outcome of a completed run.
type RunStatus string

const (
	// RunStatusCompleted indicates the run produced a full result map.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusFailed indicates the run aborted with an error.
	RunStatusFailed RunStatus = "failed"
)

// RunRecord captures a finished orchestration run for the history store.
// Only completed runs are persisted; no intermediate state is written while
// a run is in flight.
type RunRecord struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// Goal is the high-level objective the run was asked to achieve.
	Goal string `json:"goal"`
	// Status is the final outcome of the run.
	Status RunStatus `json:"status"`
	// Error holds the failure message for failed runs.
	Error string `json:"error,omitempty"`
	// Results maps agent names to their produced text.
	Results ResultMap `json:"results,omitempty"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run completed or failed.
	FinishedAt time.Time `json:"finished_at"`
	// InputTokens is the total prompt tokens consumed by the run.
	InputTokens int64 `json:"input_tokens"`
	// OutputTokens is the total completion tokens produced by the run.
	OutputTokens int64 `json:"output_tokens"`
}
