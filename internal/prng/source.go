// Package prng provides the deterministic random source behind every
// probabilistic outcome in a run. The generator state is a single exported
// cursor so it can be saved with the run and restored exactly; identical
// seeds always replay the identical sequence.
package prng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source is a splitmix64 generator. The zero value is usable but every run
// should create one from its stored seed via New, or restore a saved cursor
// via Restore.
type Source struct {
	State uint64
}

// New creates a Source from a run seed.
func New(seed int64) *Source {
	return &Source{State: uint64(seed)}
}

// Restore recreates a Source from a previously saved cursor.
func Restore(state uint64) *Source {
	return &Source{State: state}
}

// NewSeed mints a fresh run seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Uint64 advances the cursor and returns the next raw value.
func (s *Source) Uint64() uint64 {
	s.State += 0x9e3779b97f4a7c15
	z := s.State
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a value in [0, n). Panics if n <= 0, matching math/rand.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("prng: Intn argument must be positive")
	}
	return int(s.Uint64() % uint64(n))
}

// Range returns a value in [lo, hi] inclusive. lo must not exceed hi.
func (s *Source) Range(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / float64(1<<53)
}

// Chance returns true with probability p (clamped to [0,1]).
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.Float64() < p
}

// Shuffle permutes n elements using the provided swap function
// (Fisher-Yates, identical ordering for identical cursors).
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
