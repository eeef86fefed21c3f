package infra

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChanGate_ZeroTimeoutIsNonBlockingCheck(t *testing.T) {
	g := NewChanGate(1)
	if !g.TryAcquire(0) {
		t.Fatalf("expected first acquire to succeed")
	}

	start := time.Now()
	if g.TryAcquire(0) {
		t.Fatalf("expected second acquire to be denied on a full gate")
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("expected immediate denial, took %v", elapsed)
	}
}

func TestChanGate_TimeoutBoundary(t *testing.T) {
	g := NewChanGate(1)
	if !g.TryAcquire(0) {
		t.Fatalf("expected first acquire to succeed")
	}

	start := time.Now()
	if g.TryAcquire(50 * time.Millisecond) {
		t.Fatalf("expected acquire to time out")
	}
	elapsed := time.Since(start)
	if elapsed < 50*time.Millisecond {
		t.Fatalf("expected to wait at least the timeout, waited %v", elapsed)
	}
	if elapsed > 500*time.Millisecond {
		t.Fatalf("expected to give up near the timeout, waited %v", elapsed)
	}

	// a espera que estourou não pode ter mexido na contagem
	if g.Available() != 0 {
		t.Fatalf("expected 0 available after timed-out wait, got %d", g.Available())
	}
}

func TestChanGate_ReleaseWakesOneWaiter(t *testing.T) {
	g := NewChanGate(1)
	if !g.TryAcquire(0) {
		t.Fatalf("expected first acquire to succeed")
	}

	got := make(chan bool, 1)
	go func() {
		got <- g.TryAcquire(2 * time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	g.Release()

	select {
	case ok := <-got:
		if !ok {
			t.Fatalf("expected waiter to be granted after release")
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for waiter to wake")
	}
}

func TestChanGate_CeilingUnderConcurrency(t *testing.T) {
	const capacity = 3
	g := NewChanGate(capacity)

	var inFlight, maxSeen atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !g.TryAcquire(2 * time.Second) {
				return
			}
			cur := inFlight.Add(1)
			for {
				seen := maxSeen.Load()
				if cur <= seen || maxSeen.CompareAndSwap(seen, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			g.Release()
		}()
	}
	wg.Wait()

	if maxSeen.Load() > capacity {
		t.Fatalf("expected at most %d concurrent holders, saw %d", capacity, maxSeen.Load())
	}
	if g.Available() != capacity {
		t.Fatalf("expected all permits back, available=%d", g.Available())
	}
}

func TestChanGate_RoundTrip(t *testing.T) {
	g := NewChanGate(1)
	for i := 0; i < 3; i++ {
		if !g.TryAcquire(0) {
			t.Fatalf("expected acquire %d to succeed", i)
		}
		g.Release()
	}
	if g.Available() != 1 {
		t.Fatalf("expected 1 available after round trips, got %d", g.Available())
	}
}

func TestChanGate_ReleaseWithoutAcquirePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on release without acquire")
		}
	}()

	g := NewChanGate(1)
	g.Release()
}

func TestChanGate_CloseDeniesNewAcquires(t *testing.T) {
	g := NewChanGate(2)
	_ = g.Close()

	if g.TryAcquire(0) {
		t.Fatalf("expected acquire on closed gate to be denied")
	}
	if g.TryAcquire(50 * time.Millisecond) {
		t.Fatalf("expected timed acquire on closed gate to be denied")
	}

	// Release depois de Close degrada para no-op
	g.Release()
}

func TestChanGate_CloseWakesWaiters(t *testing.T) {
	g := NewChanGate(1)
	if !g.TryAcquire(0) {
		t.Fatalf("expected first acquire to succeed")
	}

	got := make(chan bool, 1)
	go func() {
		got <- g.TryAcquire(5 * time.Second)
	}()

	time.Sleep(20 * time.Millisecond)
	_ = g.Close()

	select {
	case ok := <-got:
		if ok {
			t.Fatalf("expected waiter to be denied on close")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected close to wake the waiter promptly")
	}
}

func TestChanGate_CloseIsIdempotent(t *testing.T) {
	g := NewChanGate(1)
	_ = g.Close()
	_ = g.Close()
	_ = g.Close()
}

func TestChanGate_InvalidCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for capacity < 1")
		}
	}()
	NewChanGate(0)
}

func TestChanGate_IntrospectionAndString(t *testing.T) {
	g := NewChanGate(2)
	if g.Capacity() != 2 || g.Available() != 2 {
		t.Fatalf("unexpected initial state: %s", g)
	}

	if !g.TryAcquire(0) {
		t.Fatalf("expected acquire to succeed")
	}
	if g.Available() != 1 {
		t.Fatalf("expected 1 available, got %d", g.Available())
	}
	if got := g.String(); got != "ChanGate(1/2)" {
		t.Fatalf("unexpected String: %q", got)
	}
}
