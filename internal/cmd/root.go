package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pollos",
	Short: "Roast chicken order board",
	Long: `pollos keeps the daily order board of a roast chicken stand: orders per
day and route, delivery tracking, oven stock and client suggestions.

Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServer,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
