package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "conductor",
	Short: "Goal decomposition and agent delegation",
	Long: `Conductor breaks a high-level goal into subtasks and delegates each
subtask to a specialized agent (research, copywriting, ad design, or your
own personas from a roster file), then aggregates the outputs.

A planning call decomposes the goal into an ordered list of (agent, task)
assignments; each assignment is executed sequentially and the results are
collected into a single map keyed by agent name.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
