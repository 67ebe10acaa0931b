package similarity

import (
	"github.com/jonathan/phase-similarity/internal/combination"
	"github.com/jonathan/phase-similarity/internal/phases"
)

// Weighted is a similarity score weighted by the length of the phase it
// belongs to.
type Weighted struct {
	Score  float64
	Length int
}

// WeightedMean returns sum(score*length) / sum(length). An empty input or one
// whose lengths sum to zero has mean 0.0.
func WeightedMean(pairs []Weighted) float64 {
	totalLen := 0
	sum := 0.0
	for _, p := range pairs {
		totalLen += p.Length
		sum += p.Score * float64(p.Length)
	}
	if totalLen == 0 {
		return 0.0
	}
	return sum / float64(totalLen)
}

// Scorer computes job similarities while reusing its scratch buffers between
// calls. A Scorer is not safe for concurrent use.
type Scorer struct {
	used    []int
	unused  []int
	weights []Weighted
	aligned map[[2]int]Weighted
}

// NewScorer returns an empty Scorer.
func NewScorer() *Scorer {
	return &Scorer{aligned: make(map[[2]int]Weighted)}
}

// Score returns the similarity of two jobs in [0, 1]: the maximum, over every
// order-preserving matching of the job with fewer phases into the other job's
// phases, of the length-weighted mean of the matched alignment scores, where
// each unmatched phase counts as similarity 0 weighted by its own length.
// The result is symmetric in a and b.
func (s *Scorer) Score(a, b phases.JobPhases) float64 {
	c1, c2 := a, b
	if len(c1) > len(c2) {
		c1, c2 = c2, c1
	}
	l1, l2 := len(c1), len(c2)

	s.used = resize(s.used, l1)
	s.unused = resize(s.unused, l2-l1)
	if cap(s.weights) < l2 {
		s.weights = make([]Weighted, 0, l2)
	}
	clear(s.aligned)

	best := 0.0
	gen := combination.NewGenerator(l1, l2)
	for gen.NextInto(s.used, s.unused) {
		weights := s.weights[:0]
		for i, j := range s.used {
			weights = append(weights, s.align(c1, c2, i, j))
		}
		for _, j := range s.unused {
			weights = append(weights, Weighted{Score: 0.0, Length: len(c2[j])})
		}
		if mean := WeightedMean(weights); mean > best {
			best = mean
		}
		s.weights = weights
	}
	return best
}

// align memoizes AlignPhases per (short index, long index) pair; the same pair
// recurs across many combinations and its score never changes.
func (s *Scorer) align(c1, c2 phases.JobPhases, i, j int) Weighted {
	key := [2]int{i, j}
	if w, ok := s.aligned[key]; ok {
		return w
	}
	score, length := AlignPhases(c1[i], c2[j])
	w := Weighted{Score: score, Length: length}
	s.aligned[key] = w
	return w
}

func resize(buf []int, n int) []int {
	if cap(buf) < n {
		return make([]int, n)
	}
	return buf[:n]
}

// JobSimilarity scores two jobs with a fresh Scorer.
func JobSimilarity(a, b phases.JobPhases) float64 {
	return NewScorer().Score(a, b)
}
