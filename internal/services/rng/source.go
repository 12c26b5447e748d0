// Package rng provides the standard-normal sampling primitive every
// simulator consumes. Randomness is always an injected capability, never an
// ambient global, so tests can pin a seed and replay a simulation exactly.
package rng

import (
	"math"
	"math/rand"
	"time"
)

// Source produces standard normal variates with the Box-Muller transform.
// Each draw consumes two independent uniform(0,1) variates. Not safe for
// concurrent use; give each worker its own Source.
type Source struct {
	u *rand.Rand
}

// New returns a Source seeded with the given value.
func New(seed int64) *Source {
	return &Source{u: rand.New(rand.NewSource(seed))}
}

// NewNondeterministic returns a time-seeded Source for production use.
func NewNondeterministic() *Source {
	return New(time.Now().UnixNano())
}

// NormFloat64 returns one standard normal variate:
// sqrt(-2·ln(u))·cos(2π·v). Uniforms equal to 0 are re-drawn so ln(0)
// never occurs.
func (s *Source) NormFloat64() float64 {
	u := s.u.Float64()
	for u == 0 {
		u = s.u.Float64()
	}
	v := s.u.Float64()
	for v == 0 {
		v = s.u.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// Uniform returns one uniform(0,1) draw, used for jump indicators.
func (s *Source) Uniform() float64 { return s.u.Float64() }
