package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/phase-similarity/internal/combination"
	"github.com/jonathan/phase-similarity/internal/observability"
	"github.com/jonathan/phase-similarity/internal/phases"
	"github.com/jonathan/phase-similarity/internal/schemas"
	"github.com/jonathan/phase-similarity/internal/similarity"
	"github.com/jonathan/phase-similarity/internal/types"
	schemafiles "github.com/jonathan/phase-similarity/schemas"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Score the similarity of two codings",
	Long:  "Segments two colon separated codings into phases and prints the job similarity found by searching every order-preserving phase matching.",
	RunE:  runCompare,
}

var (
	compareA    string
	compareB    string
	compareJSON bool
)

func init() {
	compareCmd.Flags().StringVar(&compareA, "a", "", "Coding of the first job (required)")
	compareCmd.Flags().StringVar(&compareB, "b", "", "Coding of the second job (required)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the comparison as JSON")

	if err := compareCmd.MarkFlagRequired("a"); err != nil {
		panic(fmt.Sprintf("failed to mark a flag as required: %v", err))
	}
	if err := compareCmd.MarkFlagRequired("b"); err != nil {
		panic(fmt.Sprintf("failed to mark b flag as required: %v", err))
	}

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	codingA, err := phases.ParseCoding(compareA)
	if err != nil {
		return fmt.Errorf("failed to parse coding a: %w", err)
	}
	codingB, err := phases.ParseCoding(compareB)
	if err != nil {
		return fmt.Errorf("failed to parse coding b: %w", err)
	}

	cmp := buildComparison(phases.Segment(codingA), phases.Segment(codingB))

	if compareJSON {
		if err := schemas.ValidateValue(schemafiles.Comparison, cmp); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Comparison validation failed: %v\n", err)
		}
		jsonOutput, err := json.MarshalIndent(cmp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal comparison to JSON: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintComparison(cmp)
	return nil
}

func buildComparison(a, b phases.JobPhases) *types.Comparison {
	l1, l2 := min(len(a), len(b)), max(len(a), len(b))
	return &types.Comparison{
		A:            phaseSummary("a", a),
		B:            phaseSummary("b", b),
		Combinations: combination.Count(l1, l2),
		Similarity:   similarity.JobSimilarity(a, b),
	}
}

func phaseSummary(id string, jp phases.JobPhases) types.PhaseSummary {
	out := make([][]uint16, len(jp))
	for i, p := range jp {
		out[i] = []uint16(p)
	}
	return types.PhaseSummary{
		JobID:       id,
		Phases:      out,
		PhaseCount:  len(jp),
		TotalLength: jp.TotalLength(),
	}
}
