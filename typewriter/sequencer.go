package typewriter

import (
	"time"

	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
)

type sequencer struct {
	scheduler  sched.Scheduler
	config     Config
	src        rng.Source
	onStep     func(index int)
	onComplete func()
	handle     *sched.Handle
	token      sched.Token

	index int
	total int
}

// Start runs a sequence of total steps.
//
// After StartDelay, onStep(0) runs, and every following step waits for a
// delay drawn from the rules for the steps still remaining. Once all
// steps ran, one more delay is drawn (for zero remaining steps), then the
// sequence lingers for Linger and calls onComplete, exactly once.
//
// Cancelling the handle suppresses future steps and the completion, but
// steps already taken are not rolled back. With total <= 0 nothing is
// scheduled and the returned handle is inert.
func Start(scheduler sched.Scheduler, total int, config Config, onStep func(index int), onComplete func(), src rng.Source) *sched.Handle {
	if total <= 0 {
		return sched.Noop()
	}
	seq := &sequencer{
		scheduler:  scheduler,
		config:     config,
		src:        rng.Or(src),
		onStep:     onStep,
		onComplete: onComplete,
		total:      total,
	}
	seq.handle = sched.NewHandle(func() { seq.scheduler.Cancel(seq.token) })
	seq.schedule(config.StartDelay, seq.step)
	return seq.handle
}

func (self *sequencer) schedule(delay time.Duration, fn func()) {
	self.token = self.scheduler.After(delay, fn)
}

func (self *sequencer) step() {
	if self.index >= self.total {
		self.schedule(self.config.Linger, self.complete)
		return
	}
	if self.onStep != nil {
		self.onStep(self.index)
		if !self.handle.Active() {
			return // cancelled from inside onStep
		}
	}
	self.index += 1
	self.schedule(self.config.Delay(self.total-self.index, self.src), self.step)
}

func (self *sequencer) complete() {
	self.handle.Finish()
	if self.onComplete != nil {
		self.onComplete()
	}
}
