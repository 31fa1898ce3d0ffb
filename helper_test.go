// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"
)

// pollTimeout bounds how long a test waits for a cross-goroutine
// condition before failing instead of hanging the suite.
const pollTimeout = 5 * time.Second

// waitFor blocks with adaptive backoff until cond holds, failing the
// test after pollTimeout.
func waitFor(tb testing.TB, what string, cond func() bool) {
	tb.Helper()
	deadline := time.Now().Add(pollTimeout)
	var bo iox.Backoff
	for !cond() {
		if time.Now().After(deadline) {
			tb.Fatalf("timed out waiting for %s", what)
		}
		bo.Wait()
	}
}
