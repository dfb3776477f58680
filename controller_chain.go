package glitchfx

import (
	"time"

	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/typewriter"
)

// A Stage is one step of a chain. It starts its work and must invoke
// done exactly once when the work ends naturally. A stage with nothing
// to do may return an inactive handle without calling done, and the
// chain moves on.
type Stage func(done func()) *sched.Handle

// --- stages ---

// Returns a stage firing a strip glitch for the given duration.
func (self *Composer) GlitchStage(target surface.Surface, duration time.Duration, intensity float64) Stage {
	return func(done func()) *sched.Handle {
		return strips.Fire(target, self.scheduler, strips.FireConfig{
			Duration:   duration,
			Intensity:  intensity,
			OnComplete: done,
		}, self.src)
	}
}

// Returns a stage running a step sequence until its completion.
func (self *Composer) TypewriterStage(total int, config typewriter.Config, onStep func(index int)) Stage {
	return func(done func()) *sched.Handle {
		return typewriter.Start(self.scheduler, total, config, onStep, done, self.src)
	}
}

// Returns a stage that just waits.
func (self *Composer) DelayStage(delay time.Duration) Stage {
	return func(done func()) *sched.Handle {
		var token sched.Token
		handle := sched.NewHandle(func() { self.scheduler.Cancel(token) })
		token = self.scheduler.After(delay, func() {
			handle.Finish()
			done()
		})
		return handle
	}
}

// Returns a stage that invokes fn and completes immediately.
func CallStage(fn func()) Stage {
	return func(done func()) *sched.Handle {
		fn()
		done()
		return sched.Noop()
	}
}

// --- chain ---

type chain struct {
	stages  []Stage
	index   int
	current *sched.Handle
	handle  *sched.Handle
}

// Chain runs the stages one after another, starting each one when the
// previous completes. The returned handle finishes with the last stage.
// Cancelling it cancels the stage in flight and no later stage starts.
func (self *Composer) Chain(stages ...Stage) *sched.Handle {
	if len(stages) == 0 {
		return sched.Noop()
	}
	c := &chain{stages: stages}
	c.handle = sched.NewHandle(func() { c.current.Cancel() })
	c.run(0)
	return self.track(c.handle)
}

func (self *chain) run(index int) {
	self.index = index
	self.current = nil
	if index >= len(self.stages) {
		self.handle.Finish()
		return
	}

	current := self.stages[index](func() {
		if self.handle.Active() && self.index == index {
			self.run(index + 1)
		}
	})
	if self.index != index {
		return // completed synchronously
	}
	if !current.Active() {
		self.run(index + 1)
		return
	}
	self.current = current
	current.OnRelease(func() {
		if current.Cancelled() {
			self.handle.Cancel()
		}
	})
}
