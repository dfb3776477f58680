package glitchfx

import "github.com/edwinsyarief/glitchfx/sched"

// Guard chains the stages under a latch identified by key.
//
// While a guarded chain for the same key is running, further triggers
// are dropped: Guard returns an inactive handle and false. The latch is
// released when the chain completes or is cancelled, and cleanup (if
// not nil) runs on cancellation only.
func (self *Composer) Guard(key any, cleanup func(), stages ...Stage) (*sched.Handle, bool) {
	if self.Latched(key) {
		return sched.Noop(), false
	}

	self.latches[key] = struct{}{}
	handle := self.Chain(stages...)
	handle.OnRelease(func() {
		delete(self.latches, key)
		if handle.Cancelled() && cleanup != nil {
			cleanup()
		}
	})
	return handle, true
}

// Returns whether a guarded chain is currently running for key.
func (self *Composer) Latched(key any) bool {
	_, held := self.latches[key]
	return held
}
