// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"code.hybscloud.com/kont"
)

// txnHandler implements kont.Handler for transaction effects against
// one transactor. Operations block on their request/reply rendezvous;
// a collapsed transactor or session surfaces as a panic, since a
// plain script has no error channel of its own (ExecError adds one).
type txnHandler[R any] struct {
	ctx *txnContext
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h txnHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	top, ok := op.(txnDispatcher)
	if !ok {
		panic("tact: unhandled effect in txnHandler")
	}
	v, err := top.DispatchTxn(h.ctx)
	if err != nil {
		panic("tact: " + err.Error())
	}
	return v, true
}

// Exec runs a transaction script against t. Each operation is a
// blocking round trip; a Begin in the script resolves in FIFO order
// with any other client contending for a session.
func Exec[R any](t *Transactor, script kont.Eff[R]) R {
	ctx := txnContext{tx: t}
	h := txnHandler[R]{ctx: &ctx}
	return kont.Handle(script, h)
}
