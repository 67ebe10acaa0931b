// Package main provides the entry point for the phase similarity CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "phase_sim",
	Short:         "Job phase similarity analysis",
	Long:          "phase_sim segments the I/O codings of batch jobs into phases and scores how similar jobs are by aligning their phases.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
