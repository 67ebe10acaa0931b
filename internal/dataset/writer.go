package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row is one similarity result between two jobs.
type Row struct {
	JobID1     uint32  `json:"jobid_1"`
	JobID2     uint32  `json:"jobid_2"`
	NumPhases1 int     `json:"num_phases_1"`
	NumPhases2 int     `json:"num_phases_2"`
	Similarity float64 `json:"sim"`
}

// OutputHeader is the header row written by CSVSink.
var OutputHeader = []string{"jobid_1", "jobid_2", "num_phases_1", "num_phases_2", "sim"}

// CSVSink writes similarity rows as CSV. The header is written before the
// first batch, even an empty one.
type CSVSink struct {
	w             *csv.Writer
	headerWritten bool
}

// NewCSVSink returns a CSVSink writing to w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// WriteRows writes rows to the underlying writer.
func (s *CSVSink) WriteRows(_ context.Context, rows []Row) error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	for _, row := range rows {
		if err := s.w.Write(formatRow(row)); err != nil {
			return fmt.Errorf("failed to write row %d,%d: %w", row.JobID1, row.JobID2, err)
		}
	}
	return nil
}

// Flush writes any buffered data and reports the first write error.
func (s *CSVSink) Flush() error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func (s *CSVSink) writeHeader() error {
	if s.headerWritten {
		return nil
	}
	if err := s.w.Write(OutputHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	s.headerWritten = true
	return nil
}

func formatRow(row Row) []string {
	return []string{
		strconv.FormatUint(uint64(row.JobID1), 10),
		strconv.FormatUint(uint64(row.JobID2), 10),
		strconv.Itoa(row.NumPhases1),
		strconv.Itoa(row.NumPhases2),
		strconv.FormatFloat(row.Similarity, 'g', -1, 64),
	}
}
