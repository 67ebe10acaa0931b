package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/phase-similarity/internal/config"
	"github.com/jonathan/phase-similarity/internal/dataset"
	"github.com/jonathan/phase-similarity/internal/db"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print stored similarity rows of a run",
	Long:  "Reads the similarity rows of an analysis run from PostgreSQL and prints them as CSV, most similar first.",
	RunE:  runResults,
}

var (
	resultsDatabaseURL   string
	resultsRunID         string
	resultsMinSimilarity float64
)

func init() {
	resultsCmd.Flags().StringVar(&resultsDatabaseURL, "database-url", "", "PostgreSQL URL (default $DATABASE_URL)")
	resultsCmd.Flags().StringVar(&resultsRunID, "run-id", "", "Analysis run ID (required)")
	resultsCmd.Flags().Float64VarP(&resultsMinSimilarity, "min-similarity", "m", 0, "Only print rows scoring strictly above this similarity")

	if err := resultsCmd.MarkFlagRequired("run-id"); err != nil {
		panic(fmt.Sprintf("failed to mark run-id flag as required: %v", err))
	}

	rootCmd.AddCommand(resultsCmd)
}

func runResults(cmd *cobra.Command, _ []string) error {
	runID, err := uuid.Parse(resultsRunID)
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", resultsRunID, err)
	}

	databaseURL := resultsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv(config.DatabaseURLEnv)
	}
	if databaseURL == "" {
		return fmt.Errorf("a database URL is required (--database-url or $%s)", config.DatabaseURLEnv)
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	run, err := database.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	rows, err := database.ListSimilarities(ctx, runID, resultsMinSimilarity)
	if err != nil {
		return err
	}

	sink := dataset.NewCSVSink(cmd.OutOrStdout())
	if err := sink.WriteRows(ctx, rows); err != nil {
		return err
	}
	return sink.Flush()
}
