// Package combination enumerates the order-preserving ways to match the phases
// of a shorter job against a subset of the phases of a longer job.
package combination

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

// Combination pairs the indices of the longer job that are matched (Used,
// strictly increasing) with the indices left unmatched (Unused, ascending).
// Together they partition [0, l2).
type Combination struct {
	Used   []int
	Unused []int
}

// Generator lazily produces every Combination for a (l1, l2) pair, one per
// call to Next. A Generator cannot be restarted.
//
// The emission order follows a high-to-low recursive choice of indices: the
// largest index is fixed first and the smallest one varies fastest, so for
// (2, 3) the sequence is [1 2], [0 2], [0 1].
type Generator struct {
	l1, l2  int
	used    []int
	started bool
	done    bool
}

// NewGenerator returns a Generator for choosing l1 of l2 indices.
// It panics if l1 > l2 or either value is negative.
func NewGenerator(l1, l2 int) *Generator {
	if l1 < 0 || l2 < 0 {
		panic(fmt.Sprintf("combination: negative size (l1=%d, l2=%d)", l1, l2))
	}
	if l1 > l2 {
		panic(fmt.Sprintf("combination: l1=%d must not exceed l2=%d", l1, l2))
	}
	return &Generator{l1: l1, l2: l2, used: make([]int, l1)}
}

// Next returns the next Combination, or false once the sequence is exhausted.
// The returned slices are freshly allocated and owned by the caller.
func (g *Generator) Next() (Combination, bool) {
	if !g.advance() {
		return Combination{}, false
	}
	used := make([]int, g.l1)
	copy(used, g.used)
	return Combination{Used: used, Unused: complement(g.l2, g.used)}, true
}

// NextInto is Next without allocation: the current Combination is written into
// used and unused, which must have lengths l1 and l2-l1.
func (g *Generator) NextInto(used, unused []int) bool {
	if len(used) != g.l1 || len(unused) != g.l2-g.l1 {
		panic(fmt.Sprintf("combination: buffers of length %d/%d, want %d/%d", len(used), len(unused), g.l1, g.l2-g.l1))
	}
	if !g.advance() {
		return false
	}
	copy(used, g.used)
	fillComplement(unused, g.l2, g.used)
	return true
}

// advance moves the cursor to the next index set in g.used.
func (g *Generator) advance() bool {
	if g.done {
		return false
	}
	if !g.started {
		g.started = true
		// highest set first: [l2-l1, ..., l2-1]
		for i := range g.used {
			g.used[i] = g.l2 - g.l1 + i
		}
		return true
	}

	// Lower the smallest position that still has room below it and refill the
	// positions beneath it with their largest values.
	for i := 0; i < g.l1; i++ {
		if g.used[i] > i {
			v := g.used[i] - 1
			g.used[i] = v
			for j := 0; j < i; j++ {
				g.used[j] = v - (i - j)
			}
			return true
		}
	}
	g.done = true
	return false
}

func complement(l2 int, used []int) []int {
	unused := make([]int, l2-len(used))
	fillComplement(unused, l2, used)
	return unused
}

// fillComplement writes the ascending indices of [0, l2) absent from the
// ascending slice used into dst.
func fillComplement(dst []int, l2 int, used []int) {
	k, n := 0, 0
	for idx := 0; idx < l2; idx++ {
		if k < len(used) && used[k] == idx {
			k++
			continue
		}
		dst[n] = idx
		n++
	}
}

// All returns a range-over-func sequence over a fresh Generator for (l1, l2).
func All(l1, l2 int) iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		g := NewGenerator(l1, l2)
		for {
			c, ok := g.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Count returns C(l2, l1), the number of Combinations a Generator for (l1, l2)
// produces. It saturates at math.MaxUint64 and is 0 when l1 > l2.
func Count(l1, l2 int) uint64 {
	if l1 < 0 || l2 < 0 || l1 > l2 {
		return 0
	}
	if l1 > l2-l1 {
		l1 = l2 - l1
	}
	result := uint64(1)
	for i := 1; i <= l1; i++ {
		// result * (l2-l1+i) / i stays integral at every step
		hi, lo := bits.Mul64(result, uint64(l2-l1+i))
		if hi >= uint64(i) {
			return math.MaxUint64
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
	}
	return result
}
