// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"code.hybscloud.com/kont"
)

// BeginBind opens a session and binds its handle.
func BeginBind[B any](k func(*Session) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Begin{}), k)
}

// BeginThen opens a session, then continues with next.
func BeginThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Begin{}), next)
}

// ExtractBind transforms the working value with f and binds the result.
func ExtractBind[B any](f func(any) any, k func(any) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Extract{F: f}), k)
}

// ModifyBind applies an idempotent mutation and binds the ack.
func ModifyBind[B any](f func(any) any, id uint64, ack any, k func(any) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Modify{F: f, ID: id, Ack: ack}), k)
}

// ModifyThen applies an idempotent mutation, then continues with next.
func ModifyThen[B any](f func(any) any, id uint64, ack any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Modify{F: f, ID: id, Ack: ack}), next)
}

// CommitBind publishes the working value and binds the ack.
func CommitBind[B any](ack any, k func(any) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Commit{Ack: ack}), k)
}

// CommitThen publishes the working value, then continues with next.
func CommitThen[B any](ack any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Commit{Ack: ack}), next)
}

// RollbackDone ends the session, discarding uncommitted work, and
// completes the script with a.
func RollbackDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Rollback{}), kont.Pure(a))
}

// RollbackThen ends the session, then continues with next (typically
// a BeginBind starting a fresh transaction).
func RollbackThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Rollback{}), next)
}
