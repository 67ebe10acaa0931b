package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/phase-similarity/internal/phases"
)

// Column names expected in the dataset header.
const (
	ColumnJobID  = "jobid"
	ColumnCoding = "coding"
)

// byteOrderMark prefixes the header of UTF-8 CSV exports from spreadsheets.
const byteOrderMark = "\ufeff"

// Job is one dataset row: a job identifier, its raw coding and the phases
// segmented from it.
type Job struct {
	ID     uint32
	Coding phases.Coding
	Phases phases.JobPhases
}

// LoadJobs reads the dataset at path.
func LoadJobs(path string) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	jobs, err := ReadJobs(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return jobs, nil
}

// ReadJobs parses CSV with a header row naming at least the jobid and coding
// columns. Other columns are ignored. Each coding is segmented into phases.
func ReadJobs(r io.Reader) ([]Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &Error{Line: 1, Message: "missing header"}
	}
	if err != nil {
		return nil, &Error{Line: 1, Message: "failed to read header", Cause: err}
	}

	header[0] = strings.TrimPrefix(header[0], byteOrderMark)

	idCol, codingCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnJobID:
			idCol = i
		case ColumnCoding:
			codingCol = i
		}
	}
	if idCol < 0 || codingCol < 0 {
		return nil, &Error{Line: 1, Message: fmt.Sprintf("header must contain %q and %q columns", ColumnJobID, ColumnCoding)}
	}

	jobs := make([]Job, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			line := 0
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, &Error{Line: line, Message: "failed to read record", Cause: err}
		}
		line, _ := reader.FieldPos(0)
		if idCol >= len(record) || codingCol >= len(record) {
			return nil, &Error{Line: line, Message: fmt.Sprintf("expected at least %d fields, got %d", max(idCol, codingCol)+1, len(record))}
		}

		id, err := strconv.ParseUint(strings.TrimSpace(record[idCol]), 10, 32)
		if err != nil {
			return nil, &Error{Line: line, Message: "invalid job id", Cause: err}
		}
		coding, err := phases.ParseCoding(record[codingCol])
		if err != nil {
			return nil, &Error{Line: line, Message: fmt.Sprintf("invalid coding for job %d", id), Cause: err}
		}

		jobs = append(jobs, Job{
			ID:     uint32(id),
			Coding: coding,
			Phases: phases.Segment(coding),
		})
	}
	return jobs, nil
}
