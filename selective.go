// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

// selectiveReceive is the persistent state behind the deferral
// decorator: the bounded stash plus the current wrapped behavior.
type selectiveReceive struct {
	stash *Stash
	inner Behavior
}

// SelectiveReceive wraps inner in a message-deferral decorator.
//
// Messages the wrapped state reports as unhandled are stashed; every
// handled message triggers a drain of the stash against the new state,
// repeated until a full pass defers everything again, before the next
// external message is accepted. Replay preserves original arrival
// order. Signals bypass the stash entirely: they are forwarded to the
// wrapped state without a drain pass and are never stashed.
//
// Stash overflow is fatal to the decorator itself: the returned
// behavior fails with ErrStashOverflow and the enclosing processor
// terminates abnormally. With capacity 0 every message must be handled
// immediately.
func SelectiveReceive(capacity int, inner Behavior) Behavior {
	s := &selectiveReceive{stash: NewStash(capacity), inner: inner}
	return s.receive
}

// receive is the decorator behavior. It returns itself on every
// handled message; the evolving wrapped state lives in s.inner.
func (s *selectiveReceive) receive(m any) (Behavior, error) {
	if _, ok := m.(Signal); ok {
		next, err := s.inner(m)
		if err == ErrUnhandled {
			// Signals are not stashable; an indifferent state drops them.
			return s.receive, nil
		}
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		s.inner = next
		return s.receive, nil
	}

	next, err := s.inner(m)
	if err == ErrUnhandled {
		if err := s.stash.Put(m); err != nil {
			return nil, err
		}
		return s.receive, nil
	}
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}
	s.inner = next
	stop, err := s.drain()
	if err != nil {
		return nil, err
	}
	if stop {
		return nil, nil
	}
	return s.receive, nil
}

// drain replays the stash against the current state until a full pass
// handles nothing. Each handled replay may unlock earlier deferrals,
// so passes repeat to the fixpoint. Reports stop=true when the
// wrapped processor stopped during replay.
func (s *selectiveReceive) drain() (stop bool, err error) {
	for s.stash.Len() > 0 {
		next, progress, err := s.stash.Drain(s.inner)
		if err != nil {
			return false, err
		}
		if next == nil {
			return true, nil
		}
		s.inner = next
		if !progress {
			return false, nil
		}
	}
	return false, nil
}
