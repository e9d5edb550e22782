// Package kernel declares the capabilities the bxCAN driver borrows from its
// host real-time environment: mutual exclusion, counting semaphores,
// interrupt registration and a yield-from-interrupt hook, plus a CPU clock
// query. The driver never assumes a concrete RTOS; it is constructed with
// values satisfying these interfaces, the same way this corpus's embedded
// runtime hands a peripheral an abstract peripheral.Interrupt rather than a
// raw NVIC register.
package kernel

import "context"

// Mutex is a non-reentrant mutual-exclusion lock. No ISR may call Lock.
type Mutex interface {
	Lock()
	Unlock()
}

// Semaphore is a counting semaphore acquired by threads and released from
// interrupt context. Acquire blocks until a permit is available or ctx is
// done; it returns false without consuming a permit on cancellation.
type Semaphore interface {
	// Acquire blocks until a permit is available or ctx is done.
	Acquire(ctx context.Context) bool

	// ReleaseFromInterrupt adds one permit. It reports whether the release
	// made a waiter with higher priority than the interrupted thread ready;
	// the caller's ISR epilogue uses that to decide whether to yield.
	ReleaseFromInterrupt() bool

	// HasToSwitchContext reports whether the most recent
	// ReleaseFromInterrupt call requires a context switch on ISR exit.
	HasToSwitchContext() bool
}

// Runnable is the body of a registered interrupt service routine. It must
// not block.
type Runnable func()

// InterruptHandle controls one registered interrupt resource.
type InterruptHandle interface {
	Enable()
	Disable()
	Close() error
}

// InterruptController binds a Runnable to a vector number and returns a
// handle controlling its enablement.
type InterruptController interface {
	CreateResource(fn Runnable, vector int) (InterruptHandle, error)
}

// Thread exposes the one operation an ISR epilogue needs: requesting that
// the scheduler switch away from the interrupted thread.
type Thread interface {
	YieldFromInterrupt()
}

// Clock reports the CPU core clock actually running, so Controller
// construction can refuse to proceed on a misconfigured PLL.
type Clock interface {
	CPUClockHz() uint32
}

// Services bundles the capabilities a Controller needs from its host
// environment. A zero-value Services is never valid; every field is
// required.
type Services struct {
	Mutex   func() Mutex
	Sem     func(initial, max int) Semaphore
	IC      InterruptController
	Thread  Thread
	ClockAt Clock
}
