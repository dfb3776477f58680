// Package rng defines the uniform randomness source consumed by all
// glitchfx effects, plus a few implementations.
//
// Effects only ever ask for values in [0, 1), so any generator can be
// adapted by implementing [Source]. Tests should use [Sequence] or a
// seeded [Mulberry32] to get reproducible parameters.
package rng

import "math/rand/v2"

// The interface for glitchfx randomness sources.
type Source interface {
	// Returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// Default is backed by the math/rand/v2 global generator.
var Default Source = globalSource{}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Or returns src, or [Default] if src is nil.
func Or(src Source) Source {
	if src == nil {
		return Default
	}
	return src
}

// Range returns a value uniformly distributed in [min, max).
func Range(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// Sequence replays a fixed list of values in a loop. The zero value
// returns 0 forever.
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence creates a sequence that cycles through the given values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

func (self *Sequence) Float64() float64 {
	if len(self.Values) == 0 {
		return 0
	}
	value := self.Values[self.next%len(self.Values)]
	self.next += 1
	return value
}

// Returns how many values have been drawn so far.
func (self *Sequence) Draws() int {
	return self.next
}
