// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import "errors"

// Behavior is one state of a sequential processor. Applying a message
// yields the successor behavior:
//
//   - (next, nil): handled; next is the new state. A behavior may
//     return itself — handled without visible state change.
//   - (nil, nil): handled; the processor stops normally.
//   - (nil, ErrUnhandled): the current state cannot process m yet;
//     state is unchanged and m may be redelivered later.
//   - (nil, err): the processor fails.
//
// A processor owns its state exclusively; the runtime applies its
// Behavior one message at a time, to completion, on one goroutine.
type Behavior func(m any) (Behavior, error)

// ErrUnhandled reports that a behavior defers the message. It is
// ordinary control flow, not a failure: under SelectiveReceive the
// message is stashed for redelivery after the next state transition.
var ErrUnhandled = errors.New("tact: message unhandled in current state")

// ErrStashOverflow reports that a stash exceeded its capacity.
// Fatal to the decorated processor; deferred messages are never
// silently dropped.
var ErrStashOverflow = errors.New("tact: stash capacity exceeded")

// ErrTerminated reports a send or ask against a processor that has
// already terminated, or whose termination raced with the operation.
var ErrTerminated = errors.New("tact: processor terminated")

// Signal is the marker for lifecycle notices. Signals bypass deferral:
// SelectiveReceive forwards them to the wrapped state directly,
// without stashing and without triggering a drain pass.
type Signal interface {
	signal()
}

// Stopped is delivered to a processor's current behavior as the final
// message before its loop exits in response to Stop.
type Stopped struct{}

func (Stopped) signal() {}
