// This package implements the organic "handheld camera" tremor used by
// glitchfx: a few sine waves with decreasing amplitude and increasing,
// slightly jittered frequencies are summed every frame to produce a 2D
// offset for a surface.
//
// The synthesis is split in two, so it can be tested without any
// rendering backend:
//   - [NewLayers] derives all random parameters once, at effect start.
//   - [Oscillator.Offsets] is a pure function of time.
//
// [Start] is the thin part that applies the offsets to a surface on
// every frame.
package shaker

// The interface for glitchfx shakers.
//
// Given a time in seconds, Offsets() returns the translation to apply
// to the surface. Implementations should be pure: calling Offsets()
// twice with the same time must return the same values.
type Shaker interface {
	Offsets(t float64) (float64, float64)
}
