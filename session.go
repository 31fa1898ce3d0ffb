// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

// Messages of the session processor.

type extractMsg struct {
	f     func(any) any
	reply *replyPort
}

type modifyMsg struct {
	f     func(any) any
	id    uint64
	ack   any
	reply *replyPort
}

type commitMsg struct {
	ack   any
	reply *replyPort
}

type rollbackMsg struct{}

// sessionCore is the per-session state: the working value, the set of
// applied modification ids, and the parent transactor. Owned
// exclusively by the session's loop; created fresh per Begin and
// never reused across sessions.
type sessionCore struct {
	value   any
	applied map[uint64]struct{}
	parent  *Ref
	serial  Serial
}

// spawnSession starts a session processor working on a copy of value
// and returns its public handle. The parent transactor is registered
// for termination notification: a session that stops — explicit
// rollback or failure — delivers rolledBackMsg{serial} to it.
func spawnSession(value any, parent *Ref, serial Serial) *Session {
	core := &sessionCore{
		value:   value,
		applied: make(map[uint64]struct{}),
		parent:  parent,
		serial:  serial,
	}
	ref := Spawn(
		func(*Ref) Behavior { return core.receive },
		WithWatcher(parent, rolledBackMsg{id: serial}),
	)
	return &Session{ref: ref, serial: serial}
}

// receive handles one session operation. The session ignores foreign
// messages; it never defers.
func (s *sessionCore) receive(m any) (Behavior, error) {
	switch msg := m.(type) {
	case extractMsg:
		r := msg.f(s.value)
		msg.reply.complete(r)
		s.value = r
	case modifyMsg:
		if _, dup := s.applied[msg.id]; !dup {
			s.value = msg.f(s.value)
			s.applied[msg.id] = struct{}{}
		}
		msg.reply.complete(msg.ack)
	case commitMsg:
		// Parent gone means the transactor already collapsed; the
		// reply still resolves the client's ack.
		_ = s.parent.TellWait(committedMsg{id: s.serial, value: s.value})
		msg.reply.complete(msg.ack)
	case rollbackMsg:
		return nil, nil
	}
	return s.receive, nil
}

// Session is the handle to one open transaction. Exactly one client
// drives a session at a time; operations are applied sequentially by
// the session's own loop.
type Session struct {
	ref    *Ref
	serial Serial
}

// Serial returns the serial number identifying this session.
func (s *Session) Serial() Serial {
	return s.serial
}

// ask performs one request/reply round trip against the session loop.
func (s *Session) ask(m any, p *replyPort) (any, error) {
	if err := s.ref.TellWait(m); err != nil {
		return nil, err
	}
	return p.await(s.ref)
}

// Extract applies f to the working value, replies with the result,
// and stores the result back as the new working value: Extract
// commits its transformation, it is not a pure read.
func (s *Session) Extract(f func(any) any) (any, error) {
	p := newReplyPort()
	return s.ask(extractMsg{f: f, reply: p}, p)
}

// Modify applies f to the working value, deduplicated by id: the
// first application within this session mutates and records id, any
// resubmission of the same id returns ack without mutating. The
// applied-id set is scoped to this session's lifetime.
func (s *Session) Modify(f func(any) any, id uint64, ack any) (any, error) {
	p := newReplyPort()
	return s.ask(modifyMsg{f: f, id: id, ack: ack, reply: p}, p)
}

// Commit publishes the working value to the owning transactor and
// returns ack. The session is not terminated: it remains receivable
// for further operations until rolled back, timed out, or stopped.
// Note that once the transactor is idle again, only a Begin moves it;
// values committed by an already-superseded session are discarded.
func (s *Session) Commit(ack any) (any, error) {
	p := newReplyPort()
	return s.ask(commitMsg{ack: ack, reply: p}, p)
}

// Rollback terminates the session; no reply. The owning transactor
// observes the termination and restores its pre-session value, the
// same path taken on timeout or abnormal session death.
func (s *Session) Rollback() error {
	return s.ref.TellWait(rollbackMsg{})
}

// Terminated reports whether the session processor has exited.
func (s *Session) Terminated() bool {
	return s.ref.Terminated()
}
