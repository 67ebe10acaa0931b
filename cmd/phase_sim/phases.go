package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/phase-similarity/internal/phases"
	"github.com/spf13/cobra"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "Segment a coding into phases",
	Long:  "Splits a colon separated coding into its non-zero phases and prints them as a JSON array.",
	RunE:  runPhases,
}

var phasesCoding string

func init() {
	phasesCmd.Flags().StringVarP(&phasesCoding, "coding", "c", "", "Colon separated coding, e.g. 2:2:0:8 (required)")

	if err := phasesCmd.MarkFlagRequired("coding"); err != nil {
		panic(fmt.Sprintf("failed to mark coding flag as required: %v", err))
	}

	rootCmd.AddCommand(phasesCmd)
}

func runPhases(cmd *cobra.Command, _ []string) error {
	coding, err := phases.ParseCoding(phasesCoding)
	if err != nil {
		return fmt.Errorf("failed to parse coding: %w", err)
	}

	jsonOutput, err := json.Marshal(phases.Segment(coding))
	if err != nil {
		return fmt.Errorf("failed to marshal phases to JSON: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
	return nil
}
