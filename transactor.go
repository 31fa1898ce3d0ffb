// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"time"

	"code.hybscloud.com/atomix"
)

// defaultStashCapacity bounds the number of Begin attempts that may be
// deferred while a session is open. 30 is a static sizing choice:
// callers must size it to the worst-case number of requests arriving
// during one session, since overflow is fatal.
const defaultStashCapacity = 30

// Serial is a monotonically increasing session identifier. Stale
// timeout and commit notices are recognized by serial comparison.
type Serial = uint32

// serialCounter is the global monotonic counter for session serials.
var serialCounter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return serialCounter.Add(1)
}

// Messages of the transactor state machine.

// beginMsg asks the transactor to open a session; the *Session handle
// is delivered through reply once the transactor is idle.
type beginMsg struct {
	reply *replyPort
}

// committedMsg publishes a session's working value to its transactor.
type committedMsg struct {
	id    Serial
	value any
}

// rolledBackMsg ends the session identified by id: sent by the
// one-shot session timer, and delivered as the watch notice when a
// session processor terminates (explicit rollback and abnormal death
// look identical to the transactor).
type rolledBackMsg struct {
	id Serial
}

// Transactor owns a shared value and admits at most one session at a
// time. Each session receives a working copy; Commit publishes the
// working value, while rollback — explicit, timeout, or abnormal
// session termination — restores the value from immediately before
// the session began.
type Transactor struct {
	ref     *Ref
	timeout time.Duration
}

// TransactorOption configures a Transactor at construction.
type TransactorOption func(*transactorConfig)

type transactorConfig struct {
	stashCapacity int
}

// WithStashCapacity overrides the bound on concurrently-deferred
// Begin attempts (default 30). Exceeding it fails the transactor.
func WithStashCapacity(n int) TransactorOption {
	return func(cfg *transactorConfig) {
		cfg.stashCapacity = n
	}
}

// NewTransactor spawns a transactor holding initial. Sessions that
// neither commit nor roll back within sessionTimeout are rolled back
// autonomously. The state machine runs behind SelectiveReceive, so
// Begin attempts arriving while a session is open are deferred in
// arrival order rather than rejected.
func NewTransactor(initial any, sessionTimeout time.Duration, opts ...TransactorOption) *Transactor {
	cfg := transactorConfig{stashCapacity: defaultStashCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &Transactor{timeout: sessionTimeout}
	t.ref = Spawn(func(self *Ref) Behavior {
		c := &transactorCore{self: self, timeout: sessionTimeout}
		return SelectiveReceive(cfg.stashCapacity, c.idle(initial))
	})
	return t
}

// Begin opens a session and returns its handle. Blocks while another
// session is open: the request is deferred and resolved in FIFO order
// with any other pending Begin once the transactor returns to idle.
// Fails with ErrTerminated if the transactor has failed or stopped.
func (t *Transactor) Begin() (*Session, error) {
	p := newReplyPort()
	if err := t.ref.TellWait(beginMsg{reply: p}); err != nil {
		return nil, err
	}
	v, err := p.await(t.ref)
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Stop terminates the transactor. The current session, if any, is
// stopped with it; pending Begin attempts fail with ErrTerminated.
func (t *Transactor) Stop() {
	t.ref.Stop()
}

// transactorCore carries the per-transactor constants shared by the
// idle and inSession behaviors.
type transactorCore struct {
	self    *Ref
	timeout time.Duration
}

// idle is the state holding the committed value with no session open.
//
// A rolledBackMsg here is a late timer or watch notice for a session
// that already ended by another path; it is ignored rather than
// treated as fatal. Likewise a committedMsg from a session that
// outlived its transaction (post-commit commits land here) does not
// move the committed value: idle handles only Begin.
func (c *transactorCore) idle(value any) Behavior {
	var b Behavior
	b = func(m any) (Behavior, error) {
		msg, ok := m.(beginMsg)
		if !ok {
			return b, nil
		}
		id := nextSerial()
		session := spawnSession(value, c.self, id)
		c.self.ScheduleOnce(c.timeout, rolledBackMsg{id: id})
		msg.reply.complete(session)
		return c.inSession(value, id, session.ref), nil
	}
	return b
}

// inSession is the state with one open session. rollbackValue is the
// committed value from immediately before Begin was accepted; the
// timer scheduled at Begin is left running, so notices carrying a
// non-matching serial are stale and must be discarded.
func (c *transactorCore) inSession(rollbackValue any, id Serial, session *Ref) Behavior {
	var b Behavior
	b = func(m any) (Behavior, error) {
		switch msg := m.(type) {
		case rolledBackMsg:
			if msg.id != id {
				return b, nil
			}
			session.Stop()
			return c.idle(rollbackValue), nil
		case committedMsg:
			if msg.id != id {
				return b, nil
			}
			// The session stays alive after commit; its eventual
			// timer notice is stale in the successor state.
			return c.idle(msg.value), nil
		case beginMsg:
			return nil, ErrUnhandled
		case Stopped:
			session.Stop()
			return b, nil
		}
		return b, nil
	}
	return b
}
