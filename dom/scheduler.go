package dom

import (
	"time"

	"github.com/edwinsyarief/glitchfx/sched"
	"github.com/gopherjs/gopherjs/js"
)

type callKind uint8

const (
	callTimeout callKind = iota
	callFrame
)

type pendingCall struct {
	kind callKind
	id   int
}

// Scheduler implements [sched.Scheduler] with setTimeout and
// requestAnimationFrame. Frame timestamps are the ones reported by the
// browser.
type Scheduler struct {
	lastToken sched.Token
	pending   map[sched.Token]pendingCall
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[sched.Token]pendingCall)}
}

func (self *Scheduler) After(delay time.Duration, fn func()) sched.Token {
	token := self.nextToken()
	ms := float64(max(delay, 0)) / float64(time.Millisecond)
	id := js.Global.Call("setTimeout", func() {
		delete(self.pending, token)
		fn()
	}, ms).Int()
	self.pending[token] = pendingCall{kind: callTimeout, id: id}
	return token
}

func (self *Scheduler) NextFrame(fn func(now time.Duration)) sched.Token {
	token := self.nextToken()
	id := js.Global.Call("requestAnimationFrame", func(timestamp float64) {
		delete(self.pending, token)
		fn(time.Duration(timestamp * float64(time.Millisecond)))
	}).Int()
	self.pending[token] = pendingCall{kind: callFrame, id: id}
	return token
}

func (self *Scheduler) Cancel(token sched.Token) {
	call, found := self.pending[token]
	if !found {
		return
	}
	delete(self.pending, token)
	switch call.kind {
	case callTimeout:
		js.Global.Call("clearTimeout", call.id)
	case callFrame:
		js.Global.Call("cancelAnimationFrame", call.id)
	}
}

func (self *Scheduler) nextToken() sched.Token {
	self.lastToken += 1
	return self.lastToken
}
