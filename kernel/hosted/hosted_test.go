package hosted

import (
	"context"
	"testing"
	"time"
)

func TestSemaphoreAcquireRelease(t *testing.T) {
	s := NewSemaphore(1, 2)
	ctx := context.Background()
	if !s.Acquire(ctx) {
		t.Fatalf("Acquire failed with a permit available")
	}

	done := make(chan bool, 1)
	go func() { done <- s.Acquire(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatalf("Acquire returned before a permit was released")
	default:
	}

	if !s.ReleaseFromInterrupt() {
		t.Fatalf("ReleaseFromInterrupt reported no waiter with one blocked")
	}
	select {
	case ok := <-done:
		if !ok {
			t.Fatalf("blocked Acquire returned false")
		}
	case <-time.After(time.Second):
		t.Fatalf("blocked Acquire never woke up")
	}
}

func TestSemaphoreAcquireCancellation(t *testing.T) {
	s := NewSemaphore(0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if s.Acquire(ctx) {
		t.Fatalf("Acquire succeeded with no permits and a cancelled context")
	}
}

func TestInterruptControllerFireRespectsEnable(t *testing.T) {
	ic := NewInterruptController()
	calls := 0
	handle, err := ic.CreateResource(func() { calls++ }, 7)
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}

	handle.Enable()
	ic.Fire(7)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	handle.Disable()
	ic.Fire(7)
	if calls != 1 {
		t.Fatalf("calls after Disable = %d, want still 1", calls)
	}

	handle.Enable()
	ic.Fire(7)
	if calls != 2 {
		t.Fatalf("calls after re-Enable = %d, want 2", calls)
	}

	_ = handle.Close()
	ic.Fire(7)
	if calls != 2 {
		t.Fatalf("calls after Close = %d, want still 2", calls)
	}
}

func TestClockSet(t *testing.T) {
	c := NewClock(8_000_000)
	if c.CPUClockHz() != 8_000_000 {
		t.Fatalf("CPUClockHz = %d, want 8000000", c.CPUClockHz())
	}
	c.Set(72_000_000)
	if c.CPUClockHz() != 72_000_000 {
		t.Fatalf("CPUClockHz after Set = %d, want 72000000", c.CPUClockHz())
	}
}
