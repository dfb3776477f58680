package tracker

import ebimath "github.com/edwinsyarief/ebi-math"

type tracker = Tracker

// A few stateless built-in trackers.
var (
	// Update(...) always returns (0, 0).
	Frozen tracker = frozenTracker{}

	// Update(...) always returns (target - current).
	Instant tracker = instantTracker{}

	// Covers a fixed fraction of the remaining distance per second,
	// with a minimum speed so it doesn't crawl forever near the target.
	Linear tracker = linearTracker{Rate: 6.0, MinSpeed: 0.5}
)

type frozenTracker struct{}

func (frozenTracker) Update(current, target ebimath.Vector, delta float64) ebimath.Vector {
	return ebimath.V(0, 0)
}

type instantTracker struct{}

func (instantTracker) Update(current, target ebimath.Vector, delta float64) ebimath.Vector {
	return ebimath.V(target.X-current.X, target.Y-current.Y)
}

// A simple linear interpolation tracker.
type linearTracker struct {
	Rate     float64 // fraction of the remaining distance covered per second
	MinSpeed float64 // units per second
}

func (self linearTracker) Update(current, target ebimath.Vector, delta float64) ebimath.Vector {
	// stabilization
	if ebimath.Abs(target.X-current.X) < 0.001 && ebimath.Abs(target.Y-current.Y) < 0.001 {
		return ebimath.V(target.X-current.X, target.Y-current.Y)
	}

	// general update
	factor := min(self.Rate*delta, 1.0)
	minAdvance := self.MinSpeed * delta
	return ebimath.V(
		computeLinComponent(current.X, target.X, factor, minAdvance),
		computeLinComponent(current.Y, target.Y, factor, minAdvance),
	)
}

func computeLinComponent(current, target, factor, minAdvance float64) float64 {
	distance := target - current
	advance := distance * factor
	if ebimath.Abs(advance) >= minAdvance {
		return advance
	}
	// never overshoot when enforcing the minimum speed
	if ebimath.Abs(distance) <= minAdvance {
		return distance
	}
	if distance < 0 {
		return -minAdvance
	}
	return minAdvance
}
