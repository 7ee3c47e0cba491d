// Package cli provides the command-line interface over the enrollment
// engine and record aggregator. Commands only format result rows; all
// semantics live in the services.
package cli

import (
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ucms",
		Short:         "University course management core",
		Long:          "ucms manages academic records: enrollments, grades, transcripts and derived analytics over a PostgreSQL store.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newDemoCmd(),
		newEnrollCmd(),
		newGradeCmd(),
		newWithdrawCmd(),
		newReportCmd(),
		newExportCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
