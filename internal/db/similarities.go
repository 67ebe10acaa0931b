package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/phase-similarity/internal/dataset"
)

// RowSink copies similarity rows of one run into job_similarities
type RowSink struct {
	db    *DB
	runID uuid.UUID
}

// Sink returns a RowSink that stores rows under runID
func (db *DB) Sink(runID uuid.UUID) *RowSink {
	return &RowSink{db: db, runID: runID}
}

// WriteRows bulk-inserts rows with COPY
func (s *RowSink) WriteRows(ctx context.Context, rows []dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}
	n, err := s.db.pool.CopyFrom(ctx,
		pgx.Identifier{TableSimilarities},
		SimilarityColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return similarityValues(s.runID, rows[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy %d similarity rows: %w", len(rows), err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("failed to copy similarity rows: copied %d of %d", n, len(rows))
	}
	return nil
}

// similarityValues orders a row's values to match SimilarityColumns
func similarityValues(runID uuid.UUID, row dataset.Row) []any {
	return []any{
		runID,
		int64(row.JobID1),
		int64(row.JobID2),
		int32(row.NumPhases1),
		int32(row.NumPhases2),
		row.Similarity,
	}
}

// ListSimilarities returns the rows of a run scoring above minSimilarity,
// most similar first
func (db *DB) ListSimilarities(ctx context.Context, runID uuid.UUID, minSimilarity float64) ([]dataset.Row, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT jobid_1, jobid_2, num_phases_1, num_phases_2, sim
		 FROM job_similarities
		 WHERE run_id = $1 AND sim > $2
		 ORDER BY sim DESC, jobid_1, jobid_2`,
		runID, minSimilarity,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list similarities: %w", err)
	}
	defer rows.Close()

	var result []dataset.Row
	for rows.Next() {
		var (
			r        dataset.Row
			id1, id2 int64
		)
		if err := rows.Scan(&id1, &id2, &r.NumPhases1, &r.NumPhases2, &r.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan similarity: %w", err)
		}
		r.JobID1, r.JobID2 = uint32(id1), uint32(id2)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list similarities: %w", err)
	}
	return result, nil
}
