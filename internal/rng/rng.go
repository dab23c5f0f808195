// Package rng provides the small deterministic generator that drives the
// pet's randomized idle, movement and blink decisions.
package rng

import "time"

const (
	multiplier = 1103515245
	increment  = 12345

	floatMask = 0xFFFFFF
	floatSpan = floatMask + 1
)

// LCG is a 64-bit linear congruential generator. It is not safe for
// concurrent use and is not cryptographically secure.
type LCG struct {
	state uint64
}

// New creates a generator seeded from the wall clock in nanoseconds.
func New() *LCG {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded creates a generator with a fixed seed. Two generators with the
// same seed produce the same sequence.
func NewSeeded(seed uint64) *LCG {
	return &LCG{state: seed}
}

// Next advances the state and returns it.
func (r *LCG) Next() uint64 {
	r.state = r.state*multiplier + increment
	return r.state
}

// Float32 returns a value in [0, 1) built from the low 24 bits of Next.
func (r *LCG) Float32() float32 {
	return float32(r.Next()&floatMask) / floatSpan
}
