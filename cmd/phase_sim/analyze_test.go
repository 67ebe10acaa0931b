package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/phase-similarity/internal/config"
	"github.com/jonathan/phase-similarity/internal/types"
)

const testDataset = `jobid,coding
1,8:0:8:0:32:175:128:128
2,8:0:8:0:32:175:128:128:0
3,0:0:0
4,2:2:9:3:0:9:1:1
5,2:2:2:2:8:2:0:0:0:1:0:8:1:1:0
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coding.csv")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestAnalyzeCommand(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	datasetPath := writeDataset(t)
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "nested", "similarity.csv")
	summaryPath := filepath.Join(outDir, "summary.json")

	stdout, stderr, err := executeCommand(t, "analyze",
		"--dataset", datasetPath,
		"--out", outPath,
		"--summary", summaryPath,
		"--min-similarity", "0.6")
	require.NoError(t, err)
	assert.Empty(t, stderr, "summary should validate without warnings")
	assert.Contains(t, stdout, "Successfully compared 6 job pairs, wrote 2 rows")

	lines := readLines(t, outPath)
	require.Len(t, lines, 3)
	assert.Equal(t, "jobid_1,jobid_2,num_phases_1,num_phases_2,sim", lines[0])
	assert.Equal(t, "1,2,3,3,1", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "4,5,2,3,0.644"), lines[2])

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	var summary types.RunSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, types.RunStatusCompleted, summary.Status)
	assert.Equal(t, 4, summary.PairsSkipped)
	assert.Equal(t, 0.6, summary.MinSimilarity)
}

func TestAnalyzeCommand_DefaultThreshold(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	outPath := filepath.Join(t.TempDir(), "similarity.csv")

	_, _, err := executeCommand(t, "analyze", "-d", writeDataset(t), "-o", outPath)
	require.NoError(t, err)

	// only the identical pair clears the default 0.7 threshold
	lines := readLines(t, outPath)
	assert.Equal(t, []string{"jobid_1,jobid_2,num_phases_1,num_phases_2,sim", "1,2,3,3,1"}, lines)
}

func TestAnalyzeCommand_ConfigFile(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	dir := t.TempDir()
	outPath := filepath.Join(dir, "from_config.csv")
	cfg := map[string]any{
		"dataset":        writeDataset(t),
		"output":         outPath,
		"take":           2,
		"min_similarity": 0.0,
		"verbose":        true,
	}
	cfgBytes, err := json.Marshal(cfg)
	require.NoError(t, err)
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, cfgBytes, 0644))

	stdout, stderr, err := executeCommand(t, "analyze", "--config", cfgPath)
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "LOADED DATASET")
	assert.Contains(t, stdout, "ANALYSIS SUMMARY")
	assert.Contains(t, stdout, "0 1\n")

	lines := readLines(t, outPath)
	assert.Len(t, lines, 2)
}

func TestAnalyzeCommand_FlagOverridesConfigFile(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.csv")
	cfgPath := filepath.Join(dir, "config.json")
	cfgJSON := `{"dataset": "` + filepath.ToSlash(writeDataset(t)) + `", "output": "` + filepath.ToSlash(outPath) + `", "min_similarity": 0.0}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgJSON), 0644))

	_, _, err := executeCommand(t, "analyze", "--config", cfgPath, "--min-similarity", "0.99")
	require.NoError(t, err)

	lines := readLines(t, outPath)
	assert.Len(t, lines, 2)
}

func TestAnalyzeCommand_MissingDataset(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	_, _, err := executeCommand(t, "analyze", "--out", filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a dataset is required")
}

func TestAnalyzeCommand_InvalidThreshold(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	_, _, err := executeCommand(t, "analyze",
		"--dataset", writeDataset(t),
		"--out", filepath.Join(t.TempDir(), "out.csv"),
		"--min-similarity", "1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_similarity")
}

func TestAnalyzeCommand_MalformedDataset(t *testing.T) {
	t.Setenv(config.DatabaseURLEnv, "")
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("jobid,coding\n1,1:2\n2,1:oops\n"), 0644))

	_, _, err := executeCommand(t, "analyze", "--dataset", path, "--out", filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}
