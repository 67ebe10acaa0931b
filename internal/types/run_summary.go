// Package types provides type definitions for structured data shared by the
// analysis driver, its sinks and the CLI.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses recorded for an analysis run
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusCancelled = "cancelled"
)

// RunSummary describes a completed (or aborted) pairwise analysis run
type RunSummary struct {
	RunID          uuid.UUID `json:"run_id"`
	Dataset        string    `json:"dataset,omitempty"`
	Status         string    `json:"status"`
	Jobs           int       `json:"jobs"`
	JobsConsidered int       `json:"jobs_considered"`
	ZeroPhaseJobs  int       `json:"zero_phase_jobs"`
	PairsCompared  int       `json:"pairs_compared"`
	PairsSkipped   int       `json:"pairs_skipped"`
	RowsEmitted    int       `json:"rows_emitted"`
	MinSimilarity  float64   `json:"min_similarity"`
	// MaxCombinations is the largest number of phase combinations searched for a single pair
	MaxCombinations uint64    `json:"max_combinations"`
	StartedAt       time.Time `json:"started_at"`
	DurationMS      int64     `json:"duration_ms"`
}

// Duration returns the run duration
func (s *RunSummary) Duration() time.Duration {
	return time.Duration(s.DurationMS) * time.Millisecond
}
