package types

// PhaseSummary describes one job's phases in a comparison report
type PhaseSummary struct {
	JobID       string     `json:"job_id"`
	Phases      [][]uint16 `json:"phases"`
	PhaseCount  int        `json:"phase_count"`
	TotalLength int        `json:"total_length"`
}

// Comparison is the result of scoring one pair of jobs
type Comparison struct {
	A            PhaseSummary `json:"a"`
	B            PhaseSummary `json:"b"`
	Combinations uint64       `json:"combinations"`
	Similarity   float64      `json:"similarity"`
}
