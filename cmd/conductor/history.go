package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conductor-agent/conductor/internal/state"
	"github.com/conductor-agent/conductor/pkg/models"
)

var (
	historyLimit     int
	historyOlderThan time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded runs",
	Long: `Browse runs recorded in the history database.

Subcommands:
  list            Show recent runs (default)
  show <run-id>   Print a run's full results as JSON
  clear           Delete old runs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRuns()
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRuns()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a run's full results as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		rec, err := db.GetRun(args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("run %s not found", args[0])
		}

		serialized, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize run: %w", err)
		}
		fmt.Println(string(serialized))
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := db.PurgeRuns(historyOlderThan)
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %d run(s) older than %s\n", count, historyOlderThan)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyClearCmd.Flags().DurationVar(&historyOlderThan, "older-than", 0, "Only delete runs older than this duration (0 deletes all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openHistory opens and migrates the history database.
func openHistory() (*state.DB, error) {
	db, err := state.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return db, nil
}

// listRuns prints recent runs, newest first.
func listRuns() error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, rec := range runs {
		marker := color.GreenString("✓")
		if rec.Status != models.RunStatusCompleted {
			marker = color.RedString("✗")
		}
		goal := rec.Goal
		if len(goal) > 60 {
			goal = goal[:57] + "..."
		}
		fmt.Printf("%s %s  %s  %s\n", marker, rec.ID,
			rec.StartedAt.Local().Format("2006-01-02 15:04"), goal)
	}

	return nil
}
