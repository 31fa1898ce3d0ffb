// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// replyCapacity sizes a reply ring. A port carries exactly one value
// over its lifetime; 2 is the smallest capacity lfq.SPSC accepts.
const replyCapacity = 2

// replyPort is a one-shot request/reply rendezvous on a bounded
// lock-free SPSC queue: single producer (the answering processor's
// loop), single consumer (the asking client).
type replyPort struct {
	q    lfq.SPSC[any]
	slot any
}

func newReplyPort() *replyPort {
	p := &replyPort{}
	p.q.Init(replyCapacity)
	return p
}

// complete publishes the reply. Called at most once, from the owning
// processor's loop.
func (p *replyPort) complete(v any) {
	p.slot = v
	_ = p.q.Enqueue(&p.slot)
}

// await blocks until the reply arrives, backing off adaptively at the
// empty-queue boundary. If owner terminates first, one final dequeue
// catches a reply that raced with termination; otherwise the ask
// fails with ErrTerminated instead of waiting forever.
func (p *replyPort) await(owner *Ref) (any, error) {
	var bo iox.Backoff
	for {
		v, err := p.q.Dequeue()
		if err == nil {
			return v, nil
		}
		if owner.Terminated() {
			if v, err := p.q.Dequeue(); err == nil {
				return v, nil
			}
			return nil, ErrTerminated
		}
		bo.Wait()
	}
}
