package sched

type handleState uint8

const (
	handleActive handleState = iota
	handleFinished
	handleCancelled
)

// Handle is the cancellation token returned by every effect.
//
// An active handle becomes inactive exactly once, either when the effect
// reaches its natural end ([Handle.Finish]) or when it's cancelled
// ([Handle.Cancel]). Cancelling an inactive handle does nothing, so it's
// always safe to cancel a handle you are holding.
type Handle struct {
	state    handleState
	rollback func()
	released []func()
}

// NewHandle creates an active handle. The given function is invoked once
// if the handle is cancelled while active, and must stop any pending
// work of the effect and undo the surface mutations it owns.
func NewHandle(rollback func()) *Handle {
	return &Handle{rollback: rollback}
}

// Noop returns an already inactive handle, used when an effect has
// nothing to do (missing surface, empty sequence).
func Noop() *Handle {
	return &Handle{state: handleFinished}
}

// Returns whether the effect is still running.
func (self *Handle) Active() bool {
	return self != nil && self.state == handleActive
}

// Returns whether the handle ended through [Handle.Cancel].
func (self *Handle) Cancelled() bool {
	return self != nil && self.state == handleCancelled
}

// Cancel stops the effect and runs its rollback, if still active.
func (self *Handle) Cancel() {
	if !self.Active() {
		return
	}
	self.state = handleCancelled
	if self.rollback != nil {
		self.rollback()
	}
	self.release()
}

// Finish marks the natural end of the effect. Effects call it right
// before invoking their completion continuation.
func (self *Handle) Finish() {
	if !self.Active() {
		return
	}
	self.state = handleFinished
	self.release()
}

// OnRelease registers fn to be invoked once when the handle stops being
// active, whatever the reason. On an inactive handle, fn runs right away.
func (self *Handle) OnRelease(fn func()) {
	if !self.Active() {
		fn()
		return
	}
	self.released = append(self.released, fn)
}

func (self *Handle) release() {
	released := self.released
	self.released = nil
	self.rollback = nil
	for _, fn := range released {
		fn()
	}
}
