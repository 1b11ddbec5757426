// Package synth generates the synthetic hospital dataset. Every generator
// draws from a single explicitly passed Source so that a seed and a
// configuration reproduce the same tables byte for byte.
package synth

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Source is the random stream shared by all generators. The faker and the
// numeric generator read from the same PCG state, so the interleaving of
// their calls is part of the reproducible output.
type Source struct {
	rng  *rand.Rand
	fake *gofakeit.Faker
}

// NewSource returns a Source seeded for reproducibility.
func NewSource(seed uint64) *Source {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{
		rng:  rand.New(pcg),
		fake: gofakeit.NewFaker(pcg, false),
	}
}

// between returns a uniform int in [lo, hi].
func (s *Source) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi).
func (s *Source) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// chance reports true with probability p.
func (s *Source) chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *Source) coin() bool {
	return s.rng.IntN(2) == 0
}

func pick[T any](s *Source, pool []T) T {
	return pool[s.rng.IntN(len(pool))]
}

// sampleDistinct returns k distinct items of pool in draw order.
func sampleDistinct[T any](s *Source, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	perm := s.rng.Perm(len(pool))
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

// sampleIndexes selects round(fraction*n) distinct indexes out of n and
// returns them ascending.
func (s *Source) sampleIndexes(n int, fraction float64) []int {
	k := int(math.Round(fraction * float64(n)))
	if k > n {
		k = n
	}
	idx := s.rng.Perm(n)[:k]
	slices.Sort(idx)
	return idx
}

func (s *Source) phone() string {
	return s.fake.Phone()
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// dayOf truncates t to midnight UTC.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// floorDays is the number of whole days from a to b, rounded towards
// negative infinity.
func floorDays(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
