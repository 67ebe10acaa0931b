package similarity

import (
	"testing"

	"github.com/jonathan/phase-similarity/internal/phases"
	"github.com/stretchr/testify/assert"
)

func TestSumQuotients_Identical(t *testing.T) {
	inputs := [][]phases.Value{
		{1},
		{8, 8},
		{32, 175, 128, 128},
		{65535, 1, 300},
	}
	for _, in := range inputs {
		assert.Equal(t, float64(len(in)), SumQuotients(in, in))
	}
}

func TestSumQuotients_KnownValues(t *testing.T) {
	a := []phases.Value{1, 1, 1, 1}
	b := []phases.Value{2, 1, 1, 1}
	assert.Equal(t, 3.5, SumQuotients(a, b))
	// mean quotient per position
	assert.Equal(t, 0.875, SumQuotients(a, b)/float64(len(a)))

	short := []phases.Value{2, 2, 9, 3}
	assert.InDelta(t, 2.889, SumQuotients(short, []phases.Value{2, 2, 2, 2}), 0.001)
	assert.InDelta(t, 2.597, SumQuotients(short, []phases.Value{2, 2, 2, 8}), 0.001)
	assert.InDelta(t, 3.556, SumQuotients(short, []phases.Value{2, 2, 8, 2}), 0.001)
}

func TestSumQuotients_Symmetric(t *testing.T) {
	a := []phases.Value{3, 90, 4, 17, 1}
	b := []phases.Value{6, 45, 4, 2, 200}
	assert.Equal(t, SumQuotients(a, b), SumQuotients(b, a))
}

func TestSumQuotients_Empty(t *testing.T) {
	assert.Equal(t, 0.0, SumQuotients(nil, nil))
}

func TestSumQuotients_UnequalLengthsPanics(t *testing.T) {
	assert.Panics(t, func() {
		SumQuotients([]phases.Value{1, 2}, []phases.Value{1})
	})
}

func TestAlignPhases(t *testing.T) {
	sim, length := AlignPhases(phases.Phase{8}, phases.Phase{8})
	assert.Equal(t, 1.0, sim)
	assert.Equal(t, 1, length)

	sim, length = AlignPhases(phases.Phase{32, 175, 128, 128}, phases.Phase{32, 175, 128, 128})
	assert.Equal(t, 1.0, sim)
	assert.Equal(t, 4, length)
}

func TestAlignPhases_BestShift(t *testing.T) {
	short := phases.Phase{2, 2, 9, 3}
	long := phases.Phase{2, 2, 2, 2, 8, 2}

	sim, length := AlignPhases(short, long)
	assert.Equal(t, 6, length)
	// offset 2 aligns 9 with 8 and 3 with 2
	assert.InDelta(t, (2.0+8.0/9.0+2.0/3.0)/6.0, sim, 1e-12)

	swappedSim, swappedLen := AlignPhases(long, short)
	assert.Equal(t, sim, swappedSim)
	assert.Equal(t, length, swappedLen)
}

func TestAlignPhases_ScoreRange(t *testing.T) {
	pairs := [][2]phases.Phase{
		{{1}, {65535}},
		{{5, 5}, {1, 2, 3, 4, 5}},
		{{9, 1, 1}, {1}},
		{{7}, {7, 7, 7, 7}},
	}
	for _, p := range pairs {
		sim, length := AlignPhases(p[0], p[1])
		assert.Greater(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
		assert.Equal(t, max(len(p[0]), len(p[1])), length)
	}

	// a short phase fully matched inside a longer one is penalized by the length ratio
	sim, _ := AlignPhases(phases.Phase{7}, phases.Phase{7, 7, 7, 7})
	assert.Equal(t, 0.25, sim)
}
