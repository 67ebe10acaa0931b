// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/phase-similarity/internal/phases"
	"github.com/jonathan/phase-similarity/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Discard returns a Printer that drops all output
func Discard() *Printer {
	return &Printer{out: io.Discard}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDataset outputs how many jobs were loaded and how their phase counts are distributed.
func (p *Printer) PrintDataset(path string, jobPhases []phases.JobPhases) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source:   %s\n", path))
	sb.WriteString(fmt.Sprintf("Jobs:     %d\n", len(jobPhases)))

	histogram := make(map[int]int)
	maxPhases, longestPhase := 0, 0
	for _, jp := range jobPhases {
		histogram[len(jp)]++
		maxPhases = max(maxPhases, len(jp))
		for _, n := range jp.Lengths() {
			longestPhase = max(longestPhase, n)
		}
	}
	sb.WriteString(fmt.Sprintf("Zero-phase jobs: %d\n", histogram[0]))
	sb.WriteString(fmt.Sprintf("Longest phase:   %d samples\n", longestPhase))
	sb.WriteString("\nPhase counts:\n")
	shown := 0
	for n := 0; n <= maxPhases && shown < maxItemsToShow; n++ {
		if count, ok := histogram[n]; ok {
			sb.WriteString(fmt.Sprintf("  %2d phases: %d jobs\n", n, count))
			shown++
		}
	}
	if len(histogram) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(histogram)-maxItemsToShow))
	}

	p.printBox("LOADED DATASET", strings.TrimRight(sb.String(), "\n"))
}

// PrintProgress outputs a one-line progress marker for the outer job of the pair loop.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(counter int, jobID uint32) {
	fmt.Fprintf(p.out, "%d %d\n", counter, jobID)
}

// PrintComparison outputs both jobs' phases and their similarity.
func (p *Printer) PrintComparison(cmp *types.Comparison) {
	if cmp == nil {
		return
	}

	var sb strings.Builder
	for _, side := range []types.PhaseSummary{cmp.A, cmp.B} {
		sb.WriteString(fmt.Sprintf("Job %s: %d phases, %d samples\n", side.JobID, side.PhaseCount, side.TotalLength))
		for i, phase := range side.Phases {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(side.Phases)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, phases.Coding(phase).String()))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Combinations: %d\n", cmp.Combinations))
	sb.WriteString(fmt.Sprintf("Similarity:   %.4f", cmp.Similarity))

	p.printBox("JOB COMPARISON", sb.String())
}

// PrintSummary outputs the counters of a finished analysis run.
func (p *Printer) PrintSummary(summary *types.RunSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:      %s\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", summary.Status))
	sb.WriteString(fmt.Sprintf("Jobs:     %d (%d considered, %d without phases)\n", summary.Jobs, summary.JobsConsidered, summary.ZeroPhaseJobs))
	sb.WriteString(fmt.Sprintf("Pairs:    %d compared, %d skipped\n", summary.PairsCompared, summary.PairsSkipped))
	sb.WriteString(fmt.Sprintf("Rows:     %d above %.2f\n", summary.RowsEmitted, summary.MinSimilarity))
	sb.WriteString(fmt.Sprintf("Max combinations per pair: %d\n", summary.MaxCombinations))
	sb.WriteString(fmt.Sprintf("Duration: %s", summary.Duration()))

	p.printBox("ANALYSIS SUMMARY", sb.String())
}
