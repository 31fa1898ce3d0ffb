// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tact_test

import (
	"testing"

	"code.hybscloud.com/tact"
)

// gate accepts ints only in ascending sequence starting at 0 and
// records them; anything out of order is deferred.
func gate(got *[]int) tact.Behavior {
	next := 0
	var b tact.Behavior
	b = func(m any) (tact.Behavior, error) {
		n, ok := m.(int)
		if !ok || n != next {
			return nil, tact.ErrUnhandled
		}
		*got = append(*got, n)
		next++
		return b, nil
	}
	return b
}

// apply feeds one message into a decorated behavior and returns the
// successor, failing the test on an unexpected error.
func apply(t *testing.T, b tact.Behavior, m any) tact.Behavior {
	t.Helper()
	next, err := b(m)
	if err != nil {
		t.Fatalf("apply(%v) failed: %v", m, err)
	}
	return next
}

func TestSelectiveReceiveReordersViaRecursiveDrain(t *testing.T) {
	var got []int
	sr := tact.SelectiveReceive(8, gate(&got))

	// 0 arrives last: everything defers until it lands, then one
	// handled message must unlock the whole chain in replay order.
	for _, n := range []int{3, 1, 2, 4, 0} {
		sr = apply(t, sr, n)
	}
	want := []int{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("handled %d messages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("handled[%d] got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSelectiveReceivePreservesArrivalOrderAmongDeferred(t *testing.T) {
	// Accepts only the release token, then everything.
	var got []any
	open := false
	var inner tact.Behavior
	inner = func(m any) (tact.Behavior, error) {
		if m == "release" {
			open = true
			return inner, nil
		}
		if !open {
			return nil, tact.ErrUnhandled
		}
		got = append(got, m)
		return inner, nil
	}

	sr := tact.SelectiveReceive(4, inner)
	for _, m := range []any{"a", "b", "c", "release"} {
		sr = apply(t, sr, m)
	}
	want := []any{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("replay[%d] got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSelectiveReceiveZeroCapacityFailsOnDeferral(t *testing.T) {
	sr := tact.SelectiveReceive(0, deferAll())
	if _, err := sr("m"); err != tact.ErrStashOverflow {
		t.Fatalf("got %v, want ErrStashOverflow", err)
	}
}

func TestSelectiveReceiveOverflowFailsDecorator(t *testing.T) {
	sr := tact.SelectiveReceive(2, deferAll())
	sr = apply(t, sr, 1)
	sr = apply(t, sr, 2)
	if _, err := sr(3); err != tact.ErrStashOverflow {
		t.Fatalf("third deferral got %v, want ErrStashOverflow", err)
	}
}

func TestSelectiveReceiveSignalBypassesStash(t *testing.T) {
	var seen []any
	open := false
	var inner tact.Behavior
	inner = func(m any) (tact.Behavior, error) {
		if _, ok := m.(tact.Signal); ok {
			seen = append(seen, m)
			return inner, nil
		}
		if m == "open" {
			open = true
			return inner, nil
		}
		if !open {
			return nil, tact.ErrUnhandled
		}
		seen = append(seen, m)
		return inner, nil
	}

	sr := tact.SelectiveReceive(4, inner)
	sr = apply(t, sr, "deferred")
	sr = apply(t, sr, tact.Stopped{})

	// The signal reached the wrapped state directly and triggered no
	// drain pass: the deferred message must not have been replayed.
	if len(seen) != 1 {
		t.Fatalf("seen %d messages after signal, want 1", len(seen))
	}
	if _, ok := seen[0].(tact.Stopped); !ok {
		t.Fatalf("seen[0] is %T, want Stopped", seen[0])
	}

	// A handled ordinary message still drains the stash.
	sr = apply(t, sr, "open")
	if len(seen) != 2 || seen[1] != "deferred" {
		t.Fatalf("drain after open got %v", seen)
	}
}

func TestSelectiveReceiveUnhandledSignalDropped(t *testing.T) {
	// Inner defers everything, signals included; the decorator must
	// drop the signal rather than stash it.
	sr := tact.SelectiveReceive(1, deferAll())
	sr = apply(t, sr, tact.Stopped{})
	// Capacity 1: if the signal had been stashed, this Put would
	// overflow.
	sr = apply(t, sr, "m")
	if _, err := sr("n"); err != tact.ErrStashOverflow {
		t.Fatalf("got %v, want ErrStashOverflow", err)
	}
}

func TestSelectiveReceiveInnerStopPropagates(t *testing.T) {
	var inner tact.Behavior
	inner = func(m any) (tact.Behavior, error) {
		if m == "quit" {
			return nil, nil
		}
		return inner, nil
	}
	sr := tact.SelectiveReceive(2, inner)
	next, err := sr("quit")
	if err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
	if next != nil {
		t.Fatal("inner stop must stop the decorator")
	}
}

func TestSelectiveReceiveInnerStopDuringDrain(t *testing.T) {
	// State 1 defers "quit" and handles "go"; state 2 stops on "quit".
	var state2 tact.Behavior
	state2 = func(m any) (tact.Behavior, error) {
		if m == "quit" {
			return nil, nil
		}
		return state2, nil
	}
	state1 := func(m any) (tact.Behavior, error) {
		if m == "go" {
			return state2, nil
		}
		return nil, tact.ErrUnhandled
	}

	sr := tact.SelectiveReceive(2, state1)
	sr = apply(t, sr, "quit")
	next, err := sr("go")
	if err != nil {
		t.Fatalf("drain returned error: %v", err)
	}
	if next != nil {
		t.Fatal("stop during replay must stop the decorator")
	}
}
