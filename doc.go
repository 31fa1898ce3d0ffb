// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tact provides transactional actors: sequential message
// processors with selective receive, composed into a session-oriented
// transaction protocol over a shared value.
//
// # Architecture
//
//   - Processors: [Behavior] transition functions applied one message
//     at a time by [Spawn]'s sequential loop; state never crosses a
//     processor boundary.
//   - Deferral: [SelectiveReceive] stashes messages the current state
//     reports unhandled ([ErrUnhandled]) in a bounded [Stash] and
//     replays them, in arrival order, after every state transition.
//     Overflow ([ErrStashOverflow]) is fatal, never silent loss.
//   - Transport: bounded mailboxes with non-blocking [Ref.Tell]
//     returning [code.hybscloud.com/iox.ErrWouldBlock]; replies ride
//     one-shot SPSC rendezvous on [code.hybscloud.com/lfq].
//   - Transactions: a [Transactor] admits one [Session] at a time.
//     Commit publishes the session's working value; rollback —
//     explicit, timeout, or abnormal session death, all equivalent —
//     restores the pre-session value. [Session.Modify] is idempotent
//     under caller-supplied dedup ids.
//
// # API Topologies
//
//   - Handles: [NewTransactor], [Transactor.Begin], [Session.Extract],
//     [Session.Modify], [Session.Commit], [Session.Rollback].
//   - Cont-world scripts on [code.hybscloud.com/kont]: operations
//     [Begin], [Extract], [Modify], [Commit], [Rollback]; combinators
//     [BeginBind], [ExtractBind], [ModifyThen], [CommitThen],
//     [RollbackDone]; evaluation via [Exec], [ExecError], [Run].
//   - Runtime capability: [Spawn], [Ref.Tell], [Ref.TellWait],
//     [Ref.ScheduleOnce], [Ref.Stop], [WithWatcher].
//
// # Example
//
//	t := tact.NewTransactor(0, 5*time.Second)
//	defer t.Stop()
//	s, _ := t.Begin()
//	s.Modify(func(v any) any { return v.(int) + 1 }, 1, "ok")
//	s.Commit("done")
//	s2, _ := t.Begin() // resolves after the first session ends
package tact
