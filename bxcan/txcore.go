package bxcan

import (
	"context"

	"omibyte.io/canbus/kernel"
	"omibyte.io/canbus/metrics"
)

// numTxMailboxes is the number of hardware TX mailboxes this peripheral
// exposes.
const numTxMailboxes = 3

// TxCore aggregates the three TxMailboxes behind a counting semaphore of
// free slots and the mutex guarding slot selection. Invariant A (§4.4 of
// SPEC_FULL.md): at any quiescent moment, the number of hardware mailboxes
// with tme=1 equals freeCount's current value.
type TxCore struct {
	mailboxes [numTxMailboxes]*TxMailbox
	freeCount kernel.Semaphore
	mutex     kernel.Mutex
	thread    kernel.Thread
	metrics   metrics.Recorder

	isrHandle kernel.InterruptHandle
}

func newTxCore(r *regs, svc kernel.Services, rec metrics.Recorder) (*TxCore, error) {
	tc := &TxCore{
		mutex:   svc.Mutex(),
		thread:  svc.Thread,
		metrics: rec,
	}
	for i := range tc.mailboxes {
		tc.mailboxes[i] = newTxMailbox(i, r)
	}
	tc.freeCount = svc.Sem(numTxMailboxes, numTxMailboxes)

	handle, err := svc.IC.CreateResource(tc.isr, vectorTxDone)
	if err != nil {
		return nil, ErrInterruptSetup
	}
	tc.isrHandle = handle
	tc.isrHandle.Enable()
	return tc, nil
}

func (tc *TxCore) close() {
	if tc.isrHandle != nil {
		_ = tc.isrHandle.Close()
	}
}

// Transmit acquires a free-mailbox permit, then submits frame to the first
// empty mailbox. It returns false if the acquire was cancelled.
func (tc *TxCore) Transmit(ctx context.Context, frame Frame) bool {
	if !tc.freeCount.Acquire(ctx) {
		return false
	}

	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	for _, mb := range tc.mailboxes {
		if mb.IsEmpty() {
			ok := mb.Transmit(frame)
			if ok && tc.metrics != nil {
				tc.metrics.TxFrame()
			}
			return ok
		}
	}
	// A permit was granted but no mailbox is empty: freeCount has
	// desynchronized from hardware state, which can only mean a bug in the
	// ISR-side bookkeeping below.
	panic("bxcan: TxCore.Transmit acquired a permit with no empty mailbox")
}

// isr is the TX-done ISR body: it completes every mailbox whose request has
// finished, releases one free-count permit per completion, and yields at
// most once if any release woke a higher-priority waiter.
func (tc *TxCore) isr() {
	needSwitch := false
	for _, mb := range tc.mailboxes {
		if !mb.Routine() {
			continue
		}
		if mb.state.RQCP && !mb.state.TXOK && tc.metrics != nil {
			tc.metrics.TxError()
		}
		if tc.freeCount.ReleaseFromInterrupt() {
			if tc.freeCount.HasToSwitchContext() {
				needSwitch = true
			}
		}
	}
	if needSwitch {
		tc.thread.YieldFromInterrupt()
	}
}

// TransmitErrorCounter returns the maximum error counter across mailboxes.
func (tc *TxCore) TransmitErrorCounter() int32 {
	var max int32 = -1
	for _, mb := range tc.mailboxes {
		if mb.ErrorCounter() > max {
			max = mb.ErrorCounter()
		}
	}
	return max
}
