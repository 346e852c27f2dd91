package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(wire wireFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zurboctl",
		Short:         "Operator tooling for the zurbo marketplace",
		Long:          "zurboctl inspects and resets usage limits, retries stuck escrow releases, creates users and applies the database schema.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newUsageCmd(wire),
		newEscrowCmd(wire),
		newUserCmd(wire),
		newMigrateCmd(loadConfig, newAtlasApplier),
	)

	return rootCmd
}
