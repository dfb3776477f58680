package shaker

import (
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/surface"
)

// Start makes the target tremble until the returned handle is cancelled.
//
// The surface is scaled up by [OverscanScale] first, then translated on
// every frame by the oscillator offsets. Cancelling restores the exact
// transform the surface had when Start was called. An absent target
// (see [surface.Absent]) makes Start a no-op.
func Start(target surface.Surface, scheduler sched.Scheduler, config Config, src rng.Source) *sched.Handle {
	if surface.Absent(target) {
		return sched.Noop()
	}
	osc := &Oscillator{Layers: NewLayers(config, src)}
	return Run(target, scheduler, osc)
}

// Run is like [Start], but with a caller provided [Shaker].
func Run(target surface.Surface, scheduler sched.Scheduler, shaker Shaker) *sched.Handle {
	if surface.Absent(target) || shaker == nil {
		return sched.Noop()
	}

	original := target.Transform()
	scaled := original.Scaled(OverscanScale)
	target.SetTransform(scaled)

	var token sched.Token
	handle := sched.NewHandle(func() {
		scheduler.Cancel(token)
		target.SetTransform(original)
	})

	var tick func(now time.Duration)
	tick = func(now time.Duration) {
		x, y := shaker.Offsets(now.Seconds())
		target.SetTransform(scaled.Translated(x, y))
		token = scheduler.NextFrame(tick)
	}
	token = scheduler.NextFrame(tick)
	return handle
}
