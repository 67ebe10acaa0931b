package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/phase-similarity/internal/types"
)

// Run status values stored in analysis_runs.status
const (
	RunStatusRunning   = types.RunStatusRunning
	RunStatusCompleted = types.RunStatusCompleted
	RunStatusFailed    = types.RunStatusFailed
	RunStatusCancelled = types.RunStatusCancelled
)

// Table and column names of the similarity rows
const (
	TableRuns         = "analysis_runs"
	TableSimilarities = "job_similarities"
)

// SimilarityColumns lists the job_similarities columns filled by RowSink, in copy order
var SimilarityColumns = []string{"run_id", "jobid_1", "jobid_2", "num_phases_1", "num_phases_2", "sim"}

// Schema is the DDL for the analysis tables
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	dataset        TEXT NOT NULL,
	take           INTEGER NOT NULL DEFAULT 0,
	min_similarity DOUBLE PRECISION NOT NULL,
	status         TEXT NOT NULL,
	rows_emitted   INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at   TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS job_similarities (
	run_id       UUID NOT NULL REFERENCES analysis_runs(id) ON DELETE CASCADE,
	jobid_1      BIGINT NOT NULL,
	jobid_2      BIGINT NOT NULL,
	num_phases_1 INTEGER NOT NULL,
	num_phases_2 INTEGER NOT NULL,
	sim          DOUBLE PRECISION NOT NULL
);

ALTER TABLE job_similarities DROP CONSTRAINT IF EXISTS job_similarities_pkey;
CREATE INDEX IF NOT EXISTS job_similarities_run_sim_idx ON job_similarities (run_id, sim DESC);
CREATE INDEX IF NOT EXISTS job_similarities_jobs_idx ON job_similarities (jobid_1, jobid_2);
`

// Run represents a stored analysis run
type Run struct {
	ID            uuid.UUID  `json:"id"`
	Dataset       string     `json:"dataset"`
	Take          int        `json:"take"`
	MinSimilarity float64    `json:"min_similarity"`
	Status        string     `json:"status"`
	RowsEmitted   int        `json:"rows_emitted"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
