// Package glitchfx composes procedural visual effects (layered tremor,
// strip glitches, timed reveals and random drift) over host-owned
// surfaces, and chains them into short sequences.
//
// Every effect runs on a [sched.Scheduler] and returns a [sched.Handle].
// The [Composer] keeps track of running effects so they can be cancelled
// together, and offers latches so a sequence can't be retriggered while
// it is still playing.
package glitchfx

import (
	"time"

	"github.com/edwinsyarief/glitchfx/drift"
	"github.com/edwinsyarief/glitchfx/rng"
	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/edwinsyarief/glitchfx/shaker"
	"github.com/edwinsyarief/glitchfx/strips"
	"github.com/edwinsyarief/glitchfx/surface"
	"github.com/edwinsyarief/glitchfx/typewriter"
)

// Timings of the [Composer.Segfault] sequence.
const (
	SegfaultGlitchIn  = 800 * time.Millisecond
	SegfaultLinger    = 1200 * time.Millisecond
	SegfaultGlitchOut = 250 * time.Millisecond
)

// A Composer starts effects on a shared scheduler and randomness source.
//
// Like the scheduler it runs on, a Composer must only be used from a
// single goroutine.
type Composer struct {
	scheduler sched.Scheduler
	src       rng.Source
	active    map[*sched.Handle]struct{}
	latches   map[any]struct{}
}

// Creates a composer. A nil src uses [rng.Default].
func New(scheduler sched.Scheduler, src rng.Source) *Composer {
	return &Composer{
		scheduler: scheduler,
		src:       rng.Or(src),
		active:    make(map[*sched.Handle]struct{}),
		latches:   make(map[any]struct{}),
	}
}

// --- effects ---

// Starts a layered tremor on the target. See [shaker.Start].
func (self *Composer) Shake(target surface.Surface, config shaker.Config) *sched.Handle {
	return self.track(shaker.Start(target, self.scheduler, config, self.src))
}

// Fires a one-shot strip glitch on the target. See [strips.Fire].
func (self *Composer) Glitch(target surface.Surface, config strips.FireConfig) *sched.Handle {
	return self.track(strips.Fire(target, self.scheduler, config, self.src))
}

// Starts a timed step sequence. See [typewriter.Start].
func (self *Composer) Typewriter(total int, config typewriter.Config, onStep func(index int), onComplete func()) *sched.Handle {
	return self.track(typewriter.Start(self.scheduler, total, config, onStep, onComplete, self.src))
}

// Starts drifting two surfaces apart. See [drift.Start].
func (self *Composer) Drift(a, b surface.Surface, config drift.Config) *sched.Handle {
	return self.track(drift.Start(a, b, self.scheduler, config, self.src))
}

// Segfault plays the crash sequence on the target: an 800ms glitch,
// then the panel is attached and stays for 1200ms, then a 250ms glitch
// after which the panel is removed.
//
// The sequence is latched per target: triggering it again while it's
// playing does nothing and returns an inactive handle. Cancelling the
// handle removes the panel and any glitch in flight. An absent target
// is a no-op and doesn't take the latch.
func (self *Composer) Segfault(target surface.Surface, panel surface.Node) *sched.Handle {
	if surface.Absent(target) {
		return sched.Noop()
	}
	handle, _ := self.Guard(SegfaultKey(target),
		func() { target.DetachOverlay(panel) },
		self.GlitchStage(target, SegfaultGlitchIn, 1),
		CallStage(func() { target.AttachOverlay(panel) }),
		self.DelayStage(SegfaultLinger),
		self.GlitchStage(target, SegfaultGlitchOut, 1),
		CallStage(func() { target.DetachOverlay(panel) }),
	)
	return handle
}

type segfaultKey struct{ target surface.Surface }

// Returns the latch key used by [Composer.Segfault] for the target, to
// be used with [Composer.Latched].
func SegfaultKey(target surface.Surface) any {
	return segfaultKey{target}
}

// --- bookkeeping ---

// Returns the number of effects, chains and guarded sequences started
// by this composer that are still running.
func (self *Composer) Active() int {
	return len(self.active)
}

// Cancels every running effect started by this composer.
func (self *Composer) CancelAll() {
	handles := make([]*sched.Handle, 0, len(self.active))
	for handle := range self.active {
		handles = append(handles, handle)
	}
	for _, handle := range handles {
		handle.Cancel()
	}
}

func (self *Composer) track(handle *sched.Handle) *sched.Handle {
	if !handle.Active() {
		return handle
	}
	self.active[handle] = struct{}{}
	handle.OnRelease(func() { delete(self.active, handle) })
	return handle
}
