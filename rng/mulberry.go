package rng

// Mulberry32 is a tiny seeded generator, handy when an effect has to
// look the same on every run (screenshots, recordings, tests).
type Mulberry32 struct {
	state       uint32
	initialSeed uint32
}

// NewMulberry32 creates a generator with the given seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed, initialSeed: seed}
}

// Reset rewinds the generator to its initial seed.
func (self *Mulberry32) Reset() {
	self.state = self.initialSeed
}

func (self *Mulberry32) Float64() float64 {
	self.state += 0x6D2B79F5
	t := self.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}
