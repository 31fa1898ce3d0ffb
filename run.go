// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact

import (
	"time"

	"code.hybscloud.com/kont"
)

// Run creates a transactor holding initial, executes the script
// against it, stops the transactor, and returns the script result.
// One-call form for self-contained transaction programs; create the
// transactor explicitly to share it between concurrent scripts.
func Run[R any](initial any, sessionTimeout time.Duration, script kont.Eff[R]) R {
	t := NewTransactor(initial, sessionTimeout)
	defer t.Stop()
	return Exec(t, script)
}

// RunError is Run with error handling: returns Either[E, R] — Right
// on success, Left on Throw.
func RunError[E, R any](initial any, sessionTimeout time.Duration, script kont.Eff[R]) kont.Either[E, R] {
	t := NewTransactor(initial, sessionTimeout)
	defer t.Stop()
	return ExecError[E, R](t, script)
}
