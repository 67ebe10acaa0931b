// Package phases splits a job's sampled coding into its non-zero phases.
package phases

// Value is one quantized sample of a job's coding.
type Value = uint16

// Coding is the raw ordered series sampled for one job.
type Coding []Value

// Phase is a maximal contiguous run of non-zero values taken from a Coding.
type Phase []Value

// JobPhases holds a job's phases in the order they occurred.
type JobPhases []Phase

// Segment splits coding into its phases. Zero values separate phases and are
// never part of one; an empty or all-zero coding has no phases.
func Segment(coding Coding) JobPhases {
	result := make(JobPhases, 0)
	n := len(coding)
	idx := 0
	for idx < n {
		for idx < n && coding[idx] == 0 {
			idx++
		}
		start := idx
		for idx < n && coding[idx] != 0 {
			idx++
		}
		if idx > start {
			phase := make(Phase, idx-start)
			copy(phase, coding[start:idx])
			result = append(result, phase)
		}
	}
	return result
}

// Lengths returns the length of each phase.
func (jp JobPhases) Lengths() []int {
	lengths := make([]int, len(jp))
	for i, p := range jp {
		lengths[i] = len(p)
	}
	return lengths
}

// TotalLength returns the number of samples covered by all phases.
func (jp JobPhases) TotalLength() int {
	total := 0
	for _, p := range jp {
		total += len(p)
	}
	return total
}
