// internal/game/rand.go
//
// Deterministic pseudo-random stream and shuffle.
//
// Boards must be reproducible from a shared seed string with no dependence on
// system time or math/rand's global state, so the stream here derives each
// value from its integer counter alone: frac(sin(seed) * 10000). The counter
// advances by one per draw, so repeated shuffles from the same stream produce
// independent-looking permutations.
//
// This is a gameplay-fairness generator, not a statistically uniform or
// cryptographic one; the sine fold is kept because identical seeds must keep
// producing identical boards for everyone who shares a room ID.

package game

import "math"

// stream is a deterministic source of floats in [0,1).
type stream struct {
	seed int64
}

func newStream(seed int64) *stream {
	return &stream{seed: seed}
}

// next returns the next value in [0,1) and advances the seed.
func (s *stream) next() float64 {
	x := math.Sin(float64(s.seed)) * 10000
	s.seed++
	return x - math.Floor(x)
}

// intn returns a value in [0,n) drawn from the stream.
func (s *stream) intn(n int) int {
	return int(s.next() * float64(n))
}

// shuffle permutes n elements in place via Fisher–Yates driven by the stream.
// An explicit permutation avoids the comparator-stability bugs that a
// sort-by-random-comparator shuffle can hit across runtimes.
func (s *stream) shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.intn(i + 1)
		swap(i, j)
	}
}
