// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"errors"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// errBehaviorPanic replaces the panic value when a behavior panics
// mid-step; the processor terminates abnormally, the process survives.
var errBehaviorPanic = errors.New("tact: behavior panicked")

// mailboxCapacity is the bounded capacity of a processor's mailbox.
// 64 absorbs bursts of deferred Begin traffic in transit without
// making TellWait the common path; senders block past it with
// adaptive backoff.
const mailboxCapacity = 64

// refAlive and refDead are the two values of a Ref's liveness flag.
const (
	refAlive uint32 = iota
	refDead
)

// watcher is a spawn-time termination registration: notice is
// delivered to ref as an ordinary message when the watched processor
// terminates, normally or abnormally.
type watcher struct {
	ref    *Ref
	notice any
}

// Ref is a handle to a spawned sequential processor. Sends are
// non-blocking at the mailbox boundary: Tell returns
// iox.ErrWouldBlock when the bounded mailbox is full.
type Ref struct {
	mbox     chan any
	stopCh   chan struct{}
	state    atomix.Uint32
	stopping atomix.Uint32
	watchers []watcher
}

// SpawnOption configures a processor at spawn time.
type SpawnOption func(*Ref)

// WithWatcher registers w for termination notification: when the
// spawned processor terminates — a normal stop, Stop, or a failure,
// indistinguishable to the watcher — notice is delivered to w as an
// ordinary message. Watch registrations are fixed at spawn so the
// watcher set needs no synchronization.
func WithWatcher(w *Ref, notice any) SpawnOption {
	return func(r *Ref) {
		r.watchers = append(r.watchers, watcher{ref: w, notice: notice})
	}
}

// Spawn starts a sequential processor running b on its own goroutine.
// setup receives the processor's own Ref before the first message is
// processed, so behaviors can schedule messages to self and hand out
// their handle. A panic inside a behavior terminates the processor
// abnormally, like a non-nil error return; it never escapes the loop.
func Spawn(setup func(self *Ref) Behavior, opts ...SpawnOption) *Ref {
	r := &Ref{
		mbox:   make(chan any, mailboxCapacity),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	b := setup(r)
	go r.loop(b)
	return r
}

// Tell delivers m to the processor's mailbox without blocking.
// Returns iox.ErrWouldBlock when the mailbox is full and
// ErrTerminated when the processor has terminated.
func (r *Ref) Tell(m any) error {
	if r.state.Load() == refDead {
		return ErrTerminated
	}
	select {
	case r.mbox <- m:
		return nil
	default:
		return iox.ErrWouldBlock
	}
}

// TellWait delivers m, blocking past a full mailbox with adaptive
// backoff. Returns ErrTerminated if the processor terminates before
// accepting m.
func (r *Ref) TellWait(m any) error {
	var bo iox.Backoff
	for {
		err := r.Tell(m)
		if err != iox.ErrWouldBlock {
			return err
		}
		bo.Wait()
	}
}

// Stop requests termination. Idempotent. The loop delivers a final
// Stopped signal to the current behavior and exits; messages still in
// the mailbox are discarded, and pending asks against this processor
// fail with ErrTerminated.
func (r *Ref) Stop() {
	if r.stopping.CompareAndSwap(0, 1) {
		close(r.stopCh)
	}
}

// Terminated reports whether the processor's loop has exited.
func (r *Ref) Terminated() bool {
	return r.state.Load() == refDead
}

// ScheduleOnce delivers m to this processor after d. The timer fires
// on its own goroutine and never blocks the sender; a late delivery
// against a terminated processor is dropped.
func (r *Ref) ScheduleOnce(d time.Duration, m any) {
	time.AfterFunc(d, func() {
		_ = r.TellWait(m)
	})
}

// loop is the sequential message loop: one message at a time, to
// completion. Unhandled messages at an undecorated top-level behavior
// are dropped; deferral is meaningful only under SelectiveReceive.
func (r *Ref) loop(b Behavior) {
	defer r.finish()
	for {
		select {
		case <-r.stopCh:
			// Last-gasp lifecycle notice; bypasses deferral decorators.
			_, _ = apply(b, Stopped{})
			return
		case m := <-r.mbox:
			next, err := apply(b, m)
			if err == ErrUnhandled {
				continue
			}
			if err != nil {
				// The failing behavior still gets the lifecycle
				// notice so it can stop watched children.
				_, _ = apply(b, Stopped{})
				return
			}
			if next == nil {
				return
			}
			b = next
		}
	}
}

// apply runs one behavior step, confining a panic in the behavior to
// the owning processor as abnormal termination.
func apply(b Behavior, m any) (next Behavior, err error) {
	defer func() {
		if recover() != nil {
			next, err = nil, errBehaviorPanic
		}
	}()
	return b(m)
}

// finish publishes termination and notifies watchers. Runs after the
// loop exits for any reason; normal and abnormal termination are
// indistinguishable to watchers.
func (r *Ref) finish() {
	r.state.Store(refDead)
	for _, w := range r.watchers {
		_ = w.ref.TellWait(w.notice)
	}
}
