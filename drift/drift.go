// Package drift nudges two surfaces horizontally in opposite directions
// at random intervals, like two halves of a misaligned scanline. Between
// moves, a [tracker.Tracker] eases both surfaces toward their targets on
// every frame.
package drift

import (
	"time"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/tracker"
)

// Shortest wait between two ticks, whatever the configured interval.
const MinTick = 16 * time.Millisecond

// Configuration for a drift. When both shifts or both intervals are
// zero, that pair falls back to the [DefaultConfig] values.
type Config struct {
	StillChance float64       // probability in [0, 1] of returning to rest on a tick
	MinShift    float64       // minimum displacement, in surface units
	MaxShift    float64       // maximum displacement, in surface units
	MinInterval time.Duration // minimum time between ticks
	MaxInterval time.Duration // maximum time between ticks
	StartDelay  time.Duration // time before the first tick

	// Easing toward each new target. Nil means [tracker.Linear].
	Tracker tracker.Tracker
}

// Returns the configuration used for the hero title rules.
func DefaultConfig() Config {
	return Config{
		StillChance: 0.35,
		MinShift:    4,
		MaxShift:    6,
		MinInterval: 2 * time.Second,
		MaxInterval: 5 * time.Second,
		StartDelay:  2 * time.Second,
		Tracker:     tracker.Linear,
	}
}

func (self Config) withDefaults() Config {
	def := DefaultConfig()
	if self.MinShift == 0 && self.MaxShift == 0 {
		self.MinShift, self.MaxShift = def.MinShift, def.MaxShift
	}
	if self.MinInterval == 0 && self.MaxInterval == 0 {
		self.MinInterval, self.MaxInterval = def.MinInterval, def.MaxInterval
	}
	if self.Tracker == nil {
		self.Tracker = def.Tracker
	}
	return self
}

// Target returns the signed displacement chosen for a tick: zero with
// probability StillChance, otherwise a value in [MinShift, MaxShift)
// with a random sign. Surface a moves by -dx and surface b by +dx.
func (self *Config) Target(src rng.Source) float64 {
	if src.Float64() < self.StillChance {
		return 0
	}
	sign := 1.0
	if src.Float64() < 0.5 {
		sign = -1.0
	}
	return sign * rng.Range(src, self.MinShift, self.MaxShift)
}

// Interval returns the wait before the next tick, never shorter than
// [MinTick].
func (self *Config) Interval(src rng.Source) time.Duration {
	interval := time.Duration(rng.Range(src, float64(self.MinInterval), float64(self.MaxInterval)))
	return max(interval, MinTick)
}

type mover struct {
	target   surface.Surface
	original surface.Transform
	current  ebimath.Vector
	goal     ebimath.Vector
}

func (self *mover) update(track tracker.Tracker, delta float64) {
	change := track.Update(self.current, self.goal, delta)
	self.current = ebimath.V(self.current.X+change.X, self.current.Y+change.Y)
	self.target.SetTransform(self.original.Translated(self.current.X, self.current.Y))
}

// Start drifts a and b until the handle is cancelled. Cancelling restores
// both original transforms. If either surface is absent (see
// [surface.Absent]), nothing happens.
func Start(a, b surface.Surface, scheduler sched.Scheduler, config Config, src rng.Source) *sched.Handle {
	if surface.Absent(a) || surface.Absent(b) {
		return sched.Noop()
	}
	src = rng.Or(src)
	config = config.withDefaults()
	track := config.Tracker
	movers := [2]*mover{
		{target: a, original: a.Transform()},
		{target: b, original: b.Transform()},
	}

	var timerToken, frameToken sched.Token
	handle := sched.NewHandle(func() {
		scheduler.Cancel(timerToken)
		scheduler.Cancel(frameToken)
		for _, m := range movers {
			m.target.SetTransform(m.original)
		}
	})

	var tick func()
	tick = func() {
		dx := config.Target(src)
		movers[0].goal = ebimath.V(-dx, 0)
		movers[1].goal = ebimath.V(dx, 0)
		timerToken = scheduler.After(config.Interval(src), tick)
	}

	var lastFrame time.Duration
	started := false
	var frame func(now time.Duration)
	frame = func(now time.Duration) {
		if started {
			delta := (now - lastFrame).Seconds()
			for _, m := range movers {
				m.update(track, delta)
			}
		}
		started, lastFrame = true, now
		frameToken = scheduler.NextFrame(frame)
	}

	timerToken = scheduler.After(config.StartDelay, tick)
	frameToken = scheduler.NextFrame(frame)
	return handle
}
