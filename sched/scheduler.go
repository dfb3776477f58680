// Package sched provides the two suspension primitives every glitchfx
// effect is written against (a one-shot deadline timer and a per-frame
// callback) and the [Handle] type returned to callers of any effect.
//
// Scheduling is cooperative and single-threaded: nothing here blocks or
// sleeps, and "waiting" is always expressed as scheduling a callback.
// Within one effect instance, a new timer or frame request is only ever
// made from inside the previous callback, so ticks of the same instance
// never overlap.
package sched

import "time"

// Token identifies a scheduled callback so it can be cancelled.
// The zero Token never refers to a live callback.
type Token uint64

// The interface for glitchfx schedulers.
//
// Cancelling a token guarantees that its callback will not fire,
// but a callback that is already running completes normally.
// Cancelling an unknown or already fired token is a no-op.
type Scheduler interface {
	// Schedules fn to run once, after the given delay.
	After(delay time.Duration, fn func()) Token

	// Schedules fn to run on the next rendered frame. The callback
	// receives a monotonically increasing timestamp.
	NextFrame(fn func(now time.Duration)) Token

	// Cancels a pending callback.
	Cancel(token Token)
}
