package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conductor-agent/conductor/internal/agent"
	"github.com/conductor-agent/conductor/internal/config"
)

var agentsFile string

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the available agents",
	Long: `List the agents available for delegation.

Without --agents, shows the built-in roster (plus any roster configured
via agents.file). Each agent is shown with the first sentence of its role
prompt, which is also what the planner sees when assigning subtasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		rosterPath := agentsFile
		if rosterPath == "" {
			rosterPath = cfg.Agents.File
		}

		var roster []*agent.Agent
		if rosterPath != "" {
			roster, err = agent.LoadRoster(rosterPath)
			if err != nil {
				return err
			}
			fmt.Printf("Agents from %s:\n\n", rosterPath)
		} else {
			roster = agent.DefaultRoster("")
			fmt.Print("Built-in agents:\n\n")
		}

		for _, a := range roster {
			fmt.Fprintf(os.Stdout, "  %s  %s\n", color.CyanString("%-18s", a.Name), a.Summary())
			if a.Model != "" {
				fmt.Printf("  %-18s  model: %s\n", "", a.Model)
			}
		}

		return nil
	},
}

func init() {
	agentsCmd.Flags().StringVar(&agentsFile, "agents", "", "Path to a YAML roster of custom agents")
}
