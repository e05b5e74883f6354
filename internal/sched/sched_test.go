package sched

import (
	"sync"
	"testing"
	"time"
)

func TestEveryFiresOncePerInterval(t *testing.T) {
	s := New()
	count := 0
	s.Every(time.Second, func() { count++ })

	for i := 0; i < 10; i++ {
		s.Advance(time.Second)
	}

	if count != 10 {
		t.Fatalf("interval fired %d times, want 10", count)
	}
}

func TestEveryCatchesUpWithinOneAdvance(t *testing.T) {
	s := New()
	count := 0
	s.Every(16*time.Millisecond, func() { count++ })

	s.Advance(100 * time.Millisecond)

	if count != 6 {
		t.Fatalf("got=%d want=6 firings in 100ms at 16ms", count)
	}
}

func TestAfterFiresOnce(t *testing.T) {
	s := New()
	count := 0
	h := s.After(200*time.Millisecond, func() { count++ })

	s.Advance(100 * time.Millisecond)
	if count != 0 || !h.Active() {
		t.Fatalf("fired early: count=%d active=%v", count, h.Active())
	}
	s.Advance(100 * time.Millisecond)
	s.Advance(time.Second)

	if count != 1 {
		t.Errorf("Expected 1 firing, got %d", count)
	}
	if h.Active() {
		t.Errorf("one-shot handle still active after firing")
	}
}

func TestCancelInsideCallbackStopsRemainingFirings(t *testing.T) {
	s := New()
	count := 0
	var h Handle
	h = s.Every(time.Second, func() {
		count++
		if count == 3 {
			h.Cancel()
		}
	})

	s.Advance(10 * time.Second)

	if count != 3 {
		t.Fatalf("got=%d want=3", count)
	}
	if s.Active() != 0 {
		t.Fatalf("Expected no active handles, got %d", s.Active())
	}
}

func TestCallbacksRunInDueOrder(t *testing.T) {
	s := New()
	var order []string
	s.Every(2*time.Second, func() { order = append(order, "spawn") })
	s.Every(time.Second, func() { order = append(order, "tick") })

	s.Advance(2 * time.Second)

	want := []string{"tick", "spawn", "tick"}
	if len(order) != len(want) {
		t.Fatalf("order=%v want=%v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v want=%v", order, want)
		}
	}
}

func TestPostRunsOnNextAdvance(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	ran := 0

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Post(func() { ran++ })
	}()
	wg.Wait()

	if ran != 0 {
		t.Fatalf("posted callback ran before Advance")
	}
	s.Advance(0)
	if ran != 1 {
		t.Fatalf("Expected posted callback to run once, got %d", ran)
	}
}

func TestZeroHandleIsInert(t *testing.T) {
	var h Handle
	h.Cancel()
	if h.Active() {
		t.Fatalf("zero handle reports active")
	}
}
