package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "datanyx",
	Short: "Student finance metrics service",
	Long: "Computes loan amortization, debt-to-income risk and savings projections " +
		"for student financial profiles, and serves them over a JSON API.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
