package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/phase-similarity/internal/types"
	schemafiles "github.com/jonathan/phase-similarity/schemas"
)

const personSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func validSummary() *types.RunSummary {
	return &types.RunSummary{
		RunID:          uuid.New(),
		Dataset:        "coding.csv",
		Status:         types.RunStatusCompleted,
		Jobs:           5,
		JobsConsidered: 5,
		ZeroPhaseJobs:  1,
		PairsCompared:  6,
		PairsSkipped:   4,
		RowsEmitted:    2,
		MinSimilarity:  0.6,
		StartedAt:      time.Now().UTC(),
		DurationMS:     12,
	}
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := validateJSONString(personSchema, `{"name": "job", "age": 3}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_MissingField(t *testing.T) {
	err := validateJSONString(personSchema, `{"age": 3}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := validateJSONString(personSchema, `{"name": "job", "age": "three"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "age", validationErr.Errors[0].Field)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := validateJSONString(`{ not json`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateValue_RunSummary(t *testing.T) {
	assert.NoError(t, ValidateValue(schemafiles.RunSummary, validSummary()))
}

func TestValidateValue_RunSummaryInvalid(t *testing.T) {
	summary := validSummary()
	summary.Status = "exploded"

	err := ValidateValue(schemafiles.RunSummary, summary)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "status", validationErr.Errors[0].Field)
}

func TestValidate_Comparison(t *testing.T) {
	valid := `{
		"a": {"job_id": "a", "phases": [[8], [8]], "phase_count": 2, "total_length": 2},
		"b": {"job_id": "b", "phases": [[8]], "phase_count": 1, "total_length": 1},
		"combinations": 2,
		"similarity": 0.5
	}`
	assert.NoError(t, Validate(schemafiles.Comparison, []byte(valid)))

	zeroInPhase := `{
		"a": {"job_id": "a", "phases": [[0]], "phase_count": 1, "total_length": 1},
		"b": {"job_id": "b", "phases": [], "phase_count": 0, "total_length": 0},
		"combinations": 1,
		"similarity": 0
	}`
	assert.Error(t, Validate(schemafiles.Comparison, []byte(zeroInPhase)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidateFile_Config(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"dataset": "jobs.csv", "take": 10, "min_similarity": 0.7}`), 0644))
	require.NoError(t, os.WriteFile(bad, []byte(`{"take": -1, "threshold": 2}`), 0644))

	assert.NoError(t, ValidateFile(schemafiles.Config, good))

	err := ValidateFile(schemafiles.Config, bad)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Len(t, validationErr.Errors, 2)

	err = ValidateFile(schemafiles.Config, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read JSON file")
}
