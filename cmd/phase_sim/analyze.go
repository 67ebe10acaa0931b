package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/phase-similarity/internal/analysis"
	"github.com/jonathan/phase-similarity/internal/config"
	"github.com/jonathan/phase-similarity/internal/dataset"
	"github.com/jonathan/phase-similarity/internal/db"
	"github.com/jonathan/phase-similarity/internal/observability"
	"github.com/jonathan/phase-similarity/internal/phases"
	"github.com/jonathan/phase-similarity/internal/schemas"
	"github.com/jonathan/phase-similarity/internal/types"
	schemafiles "github.com/jonathan/phase-similarity/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score all job pairs of a dataset",
	Long: `Reads a CSV dataset of job codings (columns jobid and coding), scores every pair of jobs
among the first --take jobs, and writes the pairs whose similarity exceeds --min-similarity
as CSV. Rows can additionally be stored in PostgreSQL with --database-url.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigFile    string
	analyzeDataset       string
	analyzeOutput        string
	analyzeSummary       string
	analyzeTake          int
	analyzeMinSimilarity float64
	analyzeDatabaseURL   string
	analyzeVerbose       bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigFile, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().StringVarP(&analyzeDataset, "dataset", "d", "", "Path to input CSV dataset")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output CSV of similar pairs")
	analyzeCmd.Flags().StringVar(&analyzeSummary, "summary", "", "Path to write a JSON run summary")
	analyzeCmd.Flags().IntVarP(&analyzeTake, "take", "n", 0, "Only consider the first N jobs (0 = all)")
	analyzeCmd.Flags().Float64VarP(&analyzeMinSimilarity, "min-similarity", "m", config.DefaultMinSimilarity, "Emit pairs scoring strictly above this similarity")
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "database-url", "", "PostgreSQL URL to also store results in (default $DATABASE_URL)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print progress and a run summary")

	rootCmd.AddCommand(analyzeCmd)
}

// resolveAnalyzeConfig merges command line flags over the optional config file.
func resolveAnalyzeConfig(cmd *cobra.Command) (config.Config, error) {
	var fileCfg config.Config
	if analyzeConfigFile != "" {
		if err := schemas.ValidateFile(schemafiles.Config, analyzeConfigFile); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Config validation failed: %v\n", err)
		}
		loaded, err := config.LoadConfig(analyzeConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	cliCfg := config.Config{
		Dataset:     analyzeDataset,
		Output:      analyzeOutput,
		Summary:     analyzeSummary,
		Take:        analyzeTake,
		DatabaseURL: analyzeDatabaseURL,
		Verbose:     analyzeVerbose || fileCfg.Verbose,
	}
	if cmd.Flags().Changed("min-similarity") {
		v := analyzeMinSimilarity
		cliCfg.MinSimilarity = &v
	}

	cfg := cliCfg.MergeWithDefaults(fileCfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Dataset == "" {
		return config.Config{}, fmt.Errorf("a dataset is required (--dataset or config 'dataset')")
	}
	if cfg.Output == "" {
		return config.Config{}, fmt.Errorf("an output path is required (--out or config 'output')")
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := resolveAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	printer := observability.Discard()
	if cfg.Verbose {
		printer = observability.NewPrinter(cmd.OutOrStdout())
	}

	// 1. Load dataset
	jobs, err := dataset.LoadJobs(cfg.Dataset)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		jobPhases := make([]phases.JobPhases, len(jobs))
		for i, job := range jobs {
			jobPhases[i] = job.Phases
		}
		printer.PrintDataset(cfg.Dataset, jobPhases)
	}

	// 2. Open sinks
	if err := ensureDir(cfg.Output); err != nil {
		return err
	}
	outFile, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", cfg.Output, err)
	}
	defer func() { _ = outFile.Close() }()

	csvSink := dataset.NewCSVSink(outFile)
	sinks := analysis.MultiSink{csvSink}
	opts := analysis.Options{
		Dataset:       cfg.Dataset,
		Take:          cfg.Take,
		MinSimilarity: cfg.Threshold(),
		Verbose:       cfg.Verbose,
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		opts.RunID, err = database.CreateRun(ctx, cfg.Dataset, cfg.Take, opts.MinSimilarity)
		if err != nil {
			return err
		}
		sinks = append(sinks, database.Sink(opts.RunID))
	}

	// 3. Score all pairs
	summary, runErr := analysis.Run(ctx, jobs, opts, sinks, printer)

	if err := csvSink.Flush(); err != nil && runErr == nil {
		runErr = err
	}
	if err := outFile.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close output file %s: %w", cfg.Output, err)
	}
	if database != nil {
		status := summary.Status
		if runErr != nil && status == types.RunStatusCompleted {
			status = types.RunStatusFailed
		}
		if err := database.CompleteRun(ctx, opts.RunID, status, summary.RowsEmitted); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	// 4. Write summary (optional)
	if cfg.Summary != "" {
		if err := writeSummary(cfg.Summary, summary); err != nil {
			if runErr == nil {
				runErr = err
			}
		} else if err := schemas.ValidateFile(schemafiles.RunSummary, cfg.Summary); err != nil {
			// Output validation is a safety check, not a requirement
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Summary validation failed: %v\n", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	printer.PrintSummary(summary)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully compared %d job pairs, wrote %d rows to %s\n",
		summary.PairsCompared, summary.RowsEmitted, cfg.Output)
	return nil
}

func writeSummary(path string, summary *types.RunSummary) error {
	jsonOutput, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary to JSON: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write run summary to %s: %w", path, err)
	}
	return nil
}

// ensureDir creates the parent directory of path if needed
func ensureDir(path string) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	return nil
}
