// Package hosted is a goroutine-and-channel implementation of the kernel
// capabilities, built for running the bxCAN driver and its tests on a
// development host rather than bare-metal silicon. It is not a production
// RTOS binding — this corpus carries no such binding to adapt (see
// DESIGN.md) — so it favors clarity over real-time guarantees: its mutex is
// a thin sync.Mutex wrapper and its semaphore a buffered channel of tokens,
// matching the atomic-CAS spirit of this corpus's own sync.Mutex but
// expressed with ordinary Go concurrency primitives since there is no
// runtime.waitTask/resumeTask pair to link against outside the sigo
// compiler.
package hosted

import (
	"context"
	"sync"
	"sync/atomic"

	"omibyte.io/canbus/kernel"
)

// Mutex adapts sync.Mutex to kernel.Mutex.
type Mutex struct {
	mu sync.Mutex
}

// NewMutex returns a ready-to-use kernel.Mutex.
func NewMutex() kernel.Mutex { return &Mutex{} }

func (m *Mutex) Lock()   { m.mu.Lock() }
func (m *Mutex) Unlock() { m.mu.Unlock() }

// Semaphore is a counting semaphore backed by a buffered channel of tokens.
type Semaphore struct {
	tokens     chan struct{}
	waiting    int32
	lastSwitch atomic.Bool
}

// NewSemaphore returns a kernel.Semaphore with initial permits and capped at
// max permits.
func NewSemaphore(initial, max int) kernel.Semaphore {
	if initial > max {
		initial = max
	}
	s := &Semaphore{tokens: make(chan struct{}, max)}
	for i := 0; i < initial; i++ {
		s.tokens <- struct{}{}
	}
	return s
}

// Acquire blocks until a permit is available or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) bool {
	atomic.AddInt32(&s.waiting, 1)
	defer atomic.AddInt32(&s.waiting, -1)
	select {
	case <-s.tokens:
		return true
	case <-ctx.Done():
		return false
	}
}

// ReleaseFromInterrupt adds one permit. It reports whether a thread was
// blocked in Acquire at the moment of release, standing in for "a
// higher-priority waiter became ready" on a host without real-time
// thread priorities.
func (s *Semaphore) ReleaseFromInterrupt() bool {
	becameReady := atomic.LoadInt32(&s.waiting) > 0
	select {
	case s.tokens <- struct{}{}:
		s.lastSwitch.Store(becameReady)
		return becameReady
	default:
		// At capacity already; the invariant the caller relies on
		// (permits == free hardware slots) has been violated upstream.
		s.lastSwitch.Store(false)
		return false
	}
}

// HasToSwitchContext reports the outcome of the most recent
// ReleaseFromInterrupt call.
func (s *Semaphore) HasToSwitchContext() bool {
	return s.lastSwitch.Load()
}

// Thread counts yield requests, standing in for a scheduler's
// yield-from-interrupt hook; it does not reschedule any goroutine.
type Thread struct {
	yields atomic.Int64
}

// NewThread returns a kernel.Thread usable by every core sharing one
// interrupt context.
func NewThread() *Thread { return &Thread{} }

func (t *Thread) YieldFromInterrupt() {
	t.yields.Add(1)
}

// Yields reports how many times YieldFromInterrupt has been called, so a
// caller can check whether an ISR epilogue requested a switch.
func (t *Thread) Yields() int64 { return t.yields.Load() }

// Clock reports a fixed, settable CPU clock frequency.
type Clock struct {
	hz atomic.Uint32
}

// NewClock returns a kernel.Clock fixed at hz.
func NewClock(hz uint32) *Clock {
	c := &Clock{}
	c.hz.Store(hz)
	return c
}

func (c *Clock) CPUClockHz() uint32 { return c.hz.Load() }

// Set changes the reported clock frequency.
func (c *Clock) Set(hz uint32) { c.hz.Store(hz) }

type interruptHandle struct {
	ic      *InterruptController
	vector  int
	enabled atomic.Bool
}

func (h *interruptHandle) Enable()  { h.enabled.Store(true) }
func (h *interruptHandle) Disable() { h.enabled.Store(false) }
func (h *interruptHandle) Close() error {
	h.Disable()
	h.ic.mu.Lock()
	delete(h.ic.handles, h.vector)
	h.ic.mu.Unlock()
	return nil
}

// InterruptController is a software-simulated vector table. Production code
// registers a Runnable per vector; tests drive the same vectors with Fire
// to simulate a hardware interrupt firing.
type InterruptController struct {
	mu      sync.Mutex
	fns     map[int]kernel.Runnable
	handles map[int]*interruptHandle
}

// NewInterruptController returns an empty vector table.
func NewInterruptController() *InterruptController {
	return &InterruptController{
		fns:     make(map[int]kernel.Runnable),
		handles: make(map[int]*interruptHandle),
	}
}

// CreateResource registers fn on vector and returns a handle controlling
// whether Fire actually invokes it.
func (ic *InterruptController) CreateResource(fn kernel.Runnable, vector int) (kernel.InterruptHandle, error) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	h := &interruptHandle{ic: ic, vector: vector}
	ic.fns[vector] = fn
	ic.handles[vector] = h
	return h, nil
}

// Fire invokes the Runnable registered on vector, if one is registered and
// its handle is enabled. It is a test-only hook simulating a hardware
// interrupt; it is never called from the driver itself.
func (ic *InterruptController) Fire(vector int) {
	ic.mu.Lock()
	fn, ok := ic.fns[vector]
	h := ic.handles[vector]
	ic.mu.Unlock()
	if ok && h != nil && h.enabled.Load() {
		fn()
	}
}
