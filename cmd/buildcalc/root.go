package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configs  string
	host     string
	scenario string
	commit   bool
	logLevel string
	human    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "buildcalc",
		Short:         "Preview and commit starbase build transactions against a planet scenario",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.configs, "configs", "configs", "Directory holding the ship list JSON files")
	cmd.PersistentFlags().StringVar(&flags.host, "host", "", "Host configuration YAML (defaults when empty)")
	cmd.PersistentFlags().StringVar(&flags.scenario, "scenario", "", "Scenario JSON file")
	cmd.PersistentFlags().BoolVar(&flags.commit, "commit", false, "Commit the transaction and print the resulting planet")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Human readable log output")

	cmd.AddCommand(newShipCmd(flags))
	cmd.AddCommand(newPartsCmd(flags))
	cmd.AddCommand(newStarbaseCmd(flags))
	cmd.AddCommand(newAmmoCmd(flags))
	cmd.AddCommand(newStructuresCmd(flags))
	cmd.AddCommand(newTechCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
