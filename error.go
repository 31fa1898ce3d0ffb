// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"code.hybscloud.com/kont"
)

// txnErrorHandler handles both transaction and error effects.
// Transaction ops perform blocking round trips; error ops
// short-circuit on Throw.
type txnErrorHandler[E, A any] struct {
	ctx    *txnContext
	errCtx *kont.ErrorContext[E]
}

// Dispatch implements kont.Handler for the composed Transaction+Error
// handler. Dispatch order: Transaction → Error.
func (h txnErrorHandler[E, A]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	if top, ok := op.(txnDispatcher); ok {
		v, err := top.DispatchTxn(h.ctx)
		if err != nil {
			panic("tact: " + err.Error())
		}
		return v, true
	}
	if eop, ok := op.(interface {
		DispatchError(ctx *kont.ErrorContext[E]) (kont.Resumed, bool)
	}); ok {
		v, _ := eop.DispatchError(h.errCtx)
		if h.errCtx.HasErr {
			return kont.Left[E, A](h.errCtx.Err), false
		}
		return v, true
	}
	panic("tact: unhandled effect in txnErrorHandler")
}

// ExecError runs a transaction script with error handling against t.
// Returns Either[E, R] — Right on success, Left on Throw. A thrown
// error does not roll the session back by itself; scripts that may
// throw should either commit before the risky region or catch and
// perform Rollback explicitly.
func ExecError[E, R any](t *Transactor, script kont.Eff[R]) kont.Either[E, R] {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[E, R]](script, func(r R) kont.Either[E, R] {
		return kont.Right[E, R](r)
	})
	ctx := txnContext{tx: t}
	var errCtx kont.ErrorContext[E]
	h := txnErrorHandler[E, R]{ctx: &ctx, errCtx: &errCtx}
	return kont.Handle(wrapped, h)
}
