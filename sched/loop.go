package sched

import (
	"container/heap"
	"time"
)

// Loop is a [Scheduler] driven explicitly by its owner. The host calls
// [Loop.Advance] once per update (an ebiten tick, a terminal ticker, or
// a test simulating time), and the loop fires everything that fell due.
//
// Timers run in deadline order. While a timer callback runs, [Loop.Now]
// reports the timer's own deadline, so follow-up timers scheduled from
// inside it are placed relative to when it was due rather than to the
// end of the advance. Timers that fall due within a single advance all
// fire during that call.
//
// Frame callbacks requested before an advance fire once at the end of
// it, with the advanced timestamp. Frame callbacks requested from inside
// a frame callback wait for the next advance.
//
// A Loop is not safe for concurrent use; drive it from one goroutine.
type Loop struct {
	now     time.Duration
	lastID  Token
	seq     uint64
	timers  timerQueue
	frames  []*frameRequest
	pending map[Token]cancelable
}

type cancelable interface{ cancel() }

type timer struct {
	id        Token
	deadline  time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (self *timer) cancel() { self.cancelled = true }

type frameRequest struct {
	id        Token
	fn        func(now time.Duration)
	cancelled bool
}

func (self *frameRequest) cancel() { self.cancelled = true }

// NewLoop creates a loop with its clock at zero.
func NewLoop() *Loop {
	return &Loop{pending: make(map[Token]cancelable)}
}

// Now returns the loop's current timestamp.
func (self *Loop) Now() time.Duration {
	return self.now
}

// Pending returns the number of timers and frame callbacks still waiting
// to fire.
func (self *Loop) Pending() int {
	return len(self.pending)
}

func (self *Loop) After(delay time.Duration, fn func()) Token {
	if delay < 0 {
		delay = 0
	}
	id := self.nextToken()
	self.seq += 1
	t := &timer{id: id, deadline: self.now + delay, seq: self.seq, fn: fn}
	heap.Push(&self.timers, t)
	self.pending[id] = t
	return id
}

func (self *Loop) NextFrame(fn func(now time.Duration)) Token {
	id := self.nextToken()
	req := &frameRequest{id: id, fn: fn}
	self.frames = append(self.frames, req)
	self.pending[id] = req
	return id
}

func (self *Loop) Cancel(token Token) {
	entry, found := self.pending[token]
	if !found {
		return
	}
	entry.cancel()
	delete(self.pending, token)
}

// Advance moves the clock forward by dt, firing due timers and then the
// frame callbacks that were waiting for this frame.
func (self *Loop) Advance(dt time.Duration) {
	if dt < 0 {
		panic("can't advance a sched.Loop backwards")
	}
	target := self.now + dt

	// timers, including those scheduled by earlier timers in this advance
	for len(self.timers) > 0 && self.timers[0].deadline <= target {
		t := heap.Pop(&self.timers).(*timer)
		if t.cancelled {
			continue
		}
		delete(self.pending, t.id)
		if t.deadline > self.now {
			self.now = t.deadline
		}
		t.fn()
	}
	self.now = target

	// frame callbacks
	frames := self.frames
	self.frames = nil
	for _, req := range frames {
		if req.cancelled {
			continue
		}
		delete(self.pending, req.id)
		req.fn(self.now)
	}
}

func (self *Loop) nextToken() Token {
	self.lastID += 1
	return self.lastID
}

// --- timer queue ---

type timerQueue []*timer

func (self timerQueue) Len() int { return len(self) }

func (self timerQueue) Less(i, j int) bool {
	if self[i].deadline == self[j].deadline {
		return self[i].seq < self[j].seq
	}
	return self[i].deadline < self[j].deadline
}

func (self timerQueue) Swap(i, j int) { self[i], self[j] = self[j], self[i] }

func (self *timerQueue) Push(x any) { *self = append(*self, x.(*timer)) }

func (self *timerQueue) Pop() any {
	old := *self
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*self = old[:n-1]
	return item
}
