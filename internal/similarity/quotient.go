// Package similarity scores how alike two jobs are from their phases.
package similarity

import (
	"fmt"

	"github.com/jonathan/phase-similarity/internal/phases"
)

// SumQuotients returns the sum over all positions of min(a[i], b[i]) / max(a[i], b[i]).
// Equal values contribute 1.0. Both slices must have the same length; the
// values are expected to be non-zero, which holds for any phase.
func SumQuotients(a, b []phases.Value) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("similarity: SumQuotients on unequal lengths %d and %d", len(a), len(b)))
	}
	sum := 0.0
	for i := range a {
		x, y := a[i], b[i]
		if x < y {
			sum += float64(x) / float64(y)
		} else {
			sum += float64(y) / float64(x)
		}
	}
	return sum
}

// AlignPhases slides the shorter phase along the longer one and returns the
// best quotient sum normalized by the longer phase's length, together with
// that length. Offsets are scanned in ascending order and the first maximum
// wins. The score lies in (0, 1].
func AlignPhases(a, b phases.Phase) (float64, int) {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(long) == 0 {
		return 0.0, 0
	}

	best := 0.0
	for shift := 0; shift+len(short) <= len(long); shift++ {
		s := SumQuotients(short, long[shift:shift+len(short)])
		if shift == 0 || s > best {
			best = s
		}
	}
	return best / float64(len(long)), len(long)
}
