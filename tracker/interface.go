// This package defines a [Tracker] interface used to ease a surface
// offset toward a moving target, and provides a few built-ins.
//
// Effects that pick discrete target positions (like drift) don't jump
// straight to them; a tracker decides how much of the remaining distance
// is covered on each frame. This keeps motion smooth regardless of how
// often new targets are chosen.
package tracker

import ebimath "github.com/edwinsyarief/ebi-math"

// The interface for glitchfx trackers.
//
// Given the current and target offsets and the time elapsed since the
// previous update (in seconds), Update() returns the change to apply to
// the current offset.
type Tracker interface {
	Update(current, target ebimath.Vector, delta float64) ebimath.Vector
}
