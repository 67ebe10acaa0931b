package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/phase-similarity/internal/config"
)

func TestResultsCommand_InvalidRunID(t *testing.T) {
	_, _, err := executeCommand(t, "results", "--run-id", "not-a-uuid", "--database-url", "postgres://localhost/phases")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run ID")
}

func TestResultsCommand_MissingDatabaseURL(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	_, _, err := executeCommand(t, "results", "--run-id", uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a database URL is required")
}
