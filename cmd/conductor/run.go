package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/conductor-agent/conductor/internal/agent"
	"github.com/conductor-agent/conductor/internal/config"
	"github.com/conductor-agent/conductor/internal/llm"
	"github.com/conductor-agent/conductor/internal/orchestrator"
	"github.com/conductor-agent/conductor/internal/state"
	"github.com/conductor-agent/conductor/pkg/models"
)

var (
	runAPIKey       string
	runModel        string
	runPlannerModel string
	runAgentsFile   string
	runOutput       string
	runHeadless     bool
	runNoSave       bool
	runVerbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run <goal>",
	Short: "Decompose a goal and delegate subtasks to agents",
	Long: `Run the full orchestration loop on a high-level goal.

The goal is decomposed by a planning call into an ordered list of
(agent, task) assignments. Each assignment is executed in order by the
named agent, and the outputs are aggregated into a JSON object keyed by
agent name.

The API key is resolved from --api-key, then ANTHROPIC_API_KEY, then the
config file. With bedrock.enabled, credentials come from the AWS
environment instead.

Completed runs are recorded in the history database unless --no-save is
given; use 'conductor history' to browse them.`,
	Args: cobra.ExactArgs(1),
	RunE: runGoal,
}

func init() {
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Explicit Anthropic API key (defaults to ANTHROPIC_API_KEY)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model for agent execution (overrides config)")
	runCmd.Flags().StringVar(&runPlannerModel, "planner-model", "", "Model for the planning call (overrides config)")
	runCmd.Flags().StringVar(&runAgentsFile, "agents", "", "Path to a YAML roster of custom agents")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Write the JSON results to a file instead of stdout")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without the TUI progress view")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "Skip recording the run in history")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging to stderr")
}

func runGoal(cmd *cobra.Command, args []string) error {
	goal := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	orch, client, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()

	var results models.ResultMap
	if runHeadless {
		results, err = runHeadlessLoop(ctx, orch, goal)
	} else {
		results, err = runWithTUI(ctx, cancel, orch, goal)
	}

	finishedAt := time.Now()

	if !runNoSave {
		saveHistory(goal, results, err, client.Tracker(), startedAt, finishedAt)
	}

	if err != nil {
		return err
	}

	return printResults(results)
}

// buildOrchestrator assembles the client, roster, and orchestrator from
// config and flags.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, *llm.Client, error) {
	var apiKey string
	if !cfg.Bedrock.Enabled {
		var err error
		apiKey, err = config.GetAPIKey(runAPIKey, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	agentModel := cfg.Models.Agent
	if runModel != "" {
		agentModel = runModel
	}

	client, err := llm.NewClient(llm.ClientConfig{
		Model:         agentModel,
		APIKey:        apiKey,
		UseAWSBedrock: cfg.Bedrock.Enabled,
		AWSRegion:     cfg.Bedrock.Region,
		AWSProfile:    cfg.Bedrock.Profile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create client: %w", err)
	}

	roster, err := loadRoster(cfg)
	if err != nil {
		return nil, nil, err
	}

	plannerModel := cfg.Models.Planner
	if runPlannerModel != "" {
		plannerModel = runPlannerModel
	}

	orch := orchestrator.New(client, roster,
		orchestrator.WithPlannerModel(plannerModel),
		orchestrator.WithTemperatures(cfg.Temperatures.Planning, cfg.Temperatures.Execution),
		orchestrator.WithLogger(debugLogger()),
	)

	return orch, client, nil
}

// loadRoster returns the custom roster if one is configured, otherwise the
// built-in agents.
func loadRoster(cfg *config.Config) ([]*agent.Agent, error) {
	rosterPath := runAgentsFile
	if rosterPath == "" {
		rosterPath = cfg.Agents.File
	}

	if rosterPath != "" {
		return agent.LoadRoster(rosterPath)
	}

	return agent.DefaultRoster(""), nil
}

// debugLogger returns a stderr debug logger when --verbose or
// CONDUCTOR_DEBUG is set, and a no-op logger otherwise.
func debugLogger() zerolog.Logger {
	if !runVerbose && os.Getenv("CONDUCTOR_DEBUG") == "" {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

// runHeadlessLoop executes the run while printing plain progress lines.
func runHeadlessLoop(ctx context.Context, orch *orchestrator.Orchestrator, goal string) (models.ResultMap, error) {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		for {
			select {
			case ev := <-orch.Events():
				printEvent(ev)
			case <-stop:
				return
			}
		}
	}()

	return orch.Run(ctx, goal)
}

// printEvent writes one progress line for an orchestrator event.
func printEvent(ev orchestrator.Event) {
	switch ev.Type {
	case orchestrator.EventPlanReady:
		fmt.Fprintf(os.Stderr, "%s plan ready: %d subtask(s)\n", color.CyanString("•"), len(ev.Plan))
	case orchestrator.EventAgentStarted:
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", color.YellowString("→"), ev.AgentName, ev.Task)
	case orchestrator.EventAgentCompleted:
		fmt.Fprintf(os.Stderr, "%s %s done\n", color.GreenString("✓"), ev.AgentName)
	case orchestrator.EventRunFailed:
		fmt.Fprintf(os.Stderr, "%s run failed: %v\n", color.RedString("✗"), ev.Err)
	}
}

// printResults serializes the result map as indented JSON to stdout or to
// the --output file.
func printResults(results models.ResultMap) error {
	serialized, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize results: %w", err)
	}

	if runOutput != "" {
		path, err := filepath.Abs(runOutput)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.WriteFile(path, append(serialized, '\n'), 0644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Printf("Results written to %s\n", path)
		return nil
	}

	fmt.Println(string(serialized))
	return nil
}

// saveHistory records the finished run. History failures are warnings, not
// run failures.
func saveHistory(goal string, results models.ResultMap, runErr error, tracker *llm.TokenTracker, startedAt, finishedAt time.Time) {
	db, err := state.OpenDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: open history db: %v\n", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: migrate history db: %v\n", err)
		return
	}

	input, output := tracker.Total()
	rec := &models.RunRecord{
		ID:           uuid.NewString(),
		Goal:         goal,
		Status:       models.RunStatusCompleted,
		Results:      results,
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		InputTokens:  input,
		OutputTokens: output,
	}
	if runErr != nil {
		rec.Status = models.RunStatusFailed
		rec.Error = runErr.Error()
		rec.Results = nil
	}

	if err := db.SaveRun(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: save run history: %v\n", err)
	}
}
