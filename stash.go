// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

// Stash is a bounded FIFO buffer of deferred messages. Capacity is
// fixed at construction; Put fails with ErrStashOverflow rather than
// dropping or blocking. A Stash is owned by a single processor loop
// and is never shared across goroutines.
type Stash struct {
	buf      []any
	capacity int
}

// NewStash creates a stash with the given capacity. Capacity 0 is
// legal: every Put overflows, so a decorated processor must handle
// each message immediately.
func NewStash(capacity int) *Stash {
	if capacity < 0 {
		capacity = 0
	}
	return &Stash{capacity: capacity}
}

// Len returns the number of buffered messages.
func (s *Stash) Len() int {
	return len(s.buf)
}

// Full reports whether the stash is at capacity.
func (s *Stash) Full() bool {
	return len(s.buf) >= s.capacity
}

// Put appends m to the stash, preserving arrival order.
// Returns ErrStashOverflow when the stash is at capacity.
func (s *Stash) Put(m any) error {
	if s.Full() {
		return ErrStashOverflow
	}
	s.buf = append(s.buf, m)
	return nil
}

// Drain clears the stash and replays every buffered message into b,
// oldest first. Messages still unhandled by the evolving behavior are
// re-stashed in their original relative order; re-stashing cannot
// overflow because at most the drained count comes back. Returns the
// final behavior and whether any message was handled this pass.
//
// If b stops mid-drain the remaining messages are re-stashed and
// (nil, true, nil) is returned. If b fails, the failure propagates
// and the un-replayed tail is discarded with the processor.
func (s *Stash) Drain(b Behavior) (Behavior, bool, error) {
	pending := s.buf
	s.buf = make([]any, 0, s.capacity)

	progress := false
	for i, m := range pending {
		next, err := b(m)
		if err == ErrUnhandled {
			s.buf = append(s.buf, m)
			continue
		}
		if err != nil {
			return nil, progress, err
		}
		progress = true
		if next == nil {
			s.buf = append(s.buf, pending[i+1:]...)
			return nil, true, nil
		}
		b = next
	}
	return b, progress, nil
}
