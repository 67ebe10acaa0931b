package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/phase-similarity/internal/combination"
	"github.com/jonathan/phase-similarity/internal/dataset"
	"github.com/jonathan/phase-similarity/internal/observability"
	"github.com/jonathan/phase-similarity/internal/similarity"
	"github.com/jonathan/phase-similarity/internal/types"
)

// Sink receives the similarity rows that pass the threshold. The rows slice
// is reused by the caller and must not be retained after WriteRows returns.
type Sink interface {
	WriteRows(ctx context.Context, rows []dataset.Row) error
}

// Options controls a pairwise analysis run.
type Options struct {
	// RunID identifies the run; a new one is generated when nil
	RunID uuid.UUID
	// Dataset names the input for the summary
	Dataset string
	// Take bounds the run to the first Take jobs; zero or negative means all jobs
	Take int
	// MinSimilarity is the exclusive lower bound a pair must exceed to be emitted
	MinSimilarity float64
	// Verbose prints a progress line per outer job
	Verbose bool
}

// Run scores every unordered pair among the first opts.Take jobs and writes
// the pairs whose similarity exceeds opts.MinSimilarity to sink. Pairs where
// either job has no phases are skipped. Rows are flushed to the sink once per
// outer job, and the context is checked between outer jobs.
//
// The returned summary is populated even when an error is returned.
func Run(ctx context.Context, jobs []dataset.Job, opts Options, sink Sink, printer *observability.Printer) (*types.RunSummary, error) {
	if printer == nil {
		printer = observability.Discard()
	}
	runID := opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}

	considered := jobs
	if opts.Take > 0 && opts.Take < len(jobs) {
		considered = jobs[:opts.Take]
	}

	summary := &types.RunSummary{
		RunID:          runID,
		Dataset:        opts.Dataset,
		Status:         types.RunStatusRunning,
		Jobs:           len(jobs),
		JobsConsidered: len(considered),
		MinSimilarity:  opts.MinSimilarity,
		StartedAt:      time.Now().UTC(),
	}
	for _, job := range considered {
		if len(job.Phases) == 0 {
			summary.ZeroPhaseJobs++
		}
	}

	finish := func(status string, err error) (*types.RunSummary, error) {
		summary.Status = status
		summary.DurationMS = time.Since(summary.StartedAt).Milliseconds()
		return summary, err
	}

	scorer := similarity.NewScorer()
	rows := make([]dataset.Row, 0)
	for i, p1 := range considered {
		if err := ctx.Err(); err != nil {
			return finish(types.RunStatusCancelled, &Error{Message: "analysis interrupted", Cause: err})
		}
		if opts.Verbose {
			printer.PrintProgress(i, p1.ID)
		}

		rows = rows[:0]
		for _, p2 := range considered[i+1:] {
			if len(p1.Phases) == 0 || len(p2.Phases) == 0 {
				summary.PairsSkipped++
				continue
			}

			l1, l2 := len(p1.Phases), len(p2.Phases)
			summary.MaxCombinations = max(summary.MaxCombinations, combination.Count(min(l1, l2), max(l1, l2)))

			sim := scorer.Score(p1.Phases, p2.Phases)
			summary.PairsCompared++
			if sim > opts.MinSimilarity {
				rows = append(rows, dataset.Row{
					JobID1:     p1.ID,
					JobID2:     p2.ID,
					NumPhases1: l1,
					NumPhases2: l2,
					Similarity: sim,
				})
			}
		}

		if len(rows) > 0 {
			if err := sink.WriteRows(ctx, rows); err != nil {
				return finish(types.RunStatusFailed, &Error{Message: "failed to write similarity rows", Cause: err})
			}
			summary.RowsEmitted += len(rows)
		}
	}

	return finish(types.RunStatusCompleted, nil)
}
