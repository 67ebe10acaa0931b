// Package schemas embeds the JSON Schemas describing the documents the CLI
// reads and writes.
package schemas

import "embed"

// Schema file names
const (
	RunSummary = "run_summary.schema.json"
	Config     = "config.schema.json"
	Comparison = "comparison.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
