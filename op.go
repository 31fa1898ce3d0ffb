// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"code.hybscloud.com/kont"
)

// txnContext carries the target transactor and, once a Begin has been
// performed, the open session the remaining operations act on.
type txnContext struct {
	tx   *Transactor
	sess *Session
}

// txnDispatcher is the structural interface for transaction effect
// operations. DispatchTxn performs the operation as a blocking
// request/reply round trip against the owning processor.
type txnDispatcher interface {
	DispatchTxn(ctx *txnContext) (kont.Resumed, error)
}

// Begin is the effect operation for opening a session.
// Perform(Begin{}) resumes with the *Session handle; subsequent
// operations in the script act on it implicitly.
type Begin struct {
	kont.Phantom[*Session]
}

// DispatchTxn handles Begin: resolves once the transactor is idle,
// in FIFO order with any other pending Begin.
func (Begin) DispatchTxn(ctx *txnContext) (kont.Resumed, error) {
	s, err := ctx.tx.Begin()
	if err != nil {
		return nil, err
	}
	ctx.sess = s
	return s, nil
}

// Extract is the effect operation for transforming the working value.
// Perform(Extract{F: f}) resumes with f(value); the result is also
// stored back as the new working value.
type Extract struct {
	kont.Phantom[any]
	F func(any) any
}

// DispatchTxn handles Extract on the open session.
func (e Extract) DispatchTxn(ctx *txnContext) (kont.Resumed, error) {
	if ctx.sess == nil {
		panic("tact: Extract outside an open session")
	}
	v, err := ctx.sess.Extract(e.F)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Modify is the effect operation for an idempotent mutation of the
// working value, deduplicated by ID within the session.
// Perform(Modify{...}) resumes with Ack whether or not this ID had
// already been applied.
type Modify struct {
	kont.Phantom[any]
	F   func(any) any
	ID  uint64
	Ack any
}

// DispatchTxn handles Modify on the open session.
func (m Modify) DispatchTxn(ctx *txnContext) (kont.Resumed, error) {
	if ctx.sess == nil {
		panic("tact: Modify outside an open session")
	}
	v, err := ctx.sess.Modify(m.F, m.ID, m.Ack)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Commit is the effect operation for publishing the working value to
// the transactor. Perform(Commit{Ack: a}) resumes with a; the session
// stays open.
type Commit struct {
	kont.Phantom[any]
	Ack any
}

// DispatchTxn handles Commit on the open session.
func (c Commit) DispatchTxn(ctx *txnContext) (kont.Resumed, error) {
	if ctx.sess == nil {
		panic("tact: Commit outside an open session")
	}
	v, err := ctx.sess.Commit(c.Ack)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Rollback is the effect operation for ending the session and
// discarding its uncommitted work. Perform(Rollback{}) leaves the
// script without an open session; a later Begin starts a fresh one.
type Rollback struct {
	kont.Phantom[struct{}]
}

// DispatchTxn handles Rollback. A session that already terminated
// (timed out, or stopped with its transactor) counts as rolled back.
func (Rollback) DispatchTxn(ctx *txnContext) (kont.Resumed, error) {
	if ctx.sess == nil {
		panic("tact: Rollback outside an open session")
	}
	if err := ctx.sess.Rollback(); err != nil && err != ErrTerminated {
		return nil, err
	}
	ctx.sess = nil
	return struct{}{}, nil
}
