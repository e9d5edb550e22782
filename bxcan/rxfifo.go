package bxcan

import (
	"context"

	"omibyte.io/canbus/kernel"
	"omibyte.io/canbus/metrics"
)

// vector numbers registered with the kernel's InterruptController. These are
// this driver's own logical vector identifiers, passed through unchanged to
// whatever InterruptController the host environment supplies.
const (
	vectorTxDone = iota
	vectorRx0
	vectorRx1
	vectorStatus
)

// RxHwFifo drains one hardware RX FIFO into a bounded software FIFO and
// exposes a blocking Receive. Invariant B (§4.5 of SPEC_FULL.md): fillCount
// equals the number of frames in the software FIFO not yet dequeued by a
// caller; displacement under the unlocked policy does not change fillCount
// because it nets zero (one frame in, one frame out).
type RxHwFifo struct {
	index   int
	regs    *regs
	fifo    *swFifo
	mutex   kernel.Mutex
	fill    kernel.Semaphore
	thread  kernel.Thread
	metrics metrics.Recorder

	isrHandle kernel.InterruptHandle
}

func newRxHwFifo(index int, locked bool, r *regs, svc kernel.Services, rec metrics.Recorder) (*RxHwFifo, error) {
	f := &RxHwFifo{
		index:   index,
		regs:    r,
		fifo:    newSwFifo(locked),
		mutex:   svc.Mutex(),
		thread:  svc.Thread,
		metrics: rec,
	}
	f.fill = svc.Sem(0, swFifoDepth)

	vector := vectorRx0
	if index == 1 {
		vector = vectorRx1
	}
	handle, err := svc.IC.CreateResource(f.isr, vector)
	if err != nil {
		return nil, ErrInterruptSetup
	}
	f.isrHandle = handle
	f.isrHandle.Enable()
	return f, nil
}

func (f *RxHwFifo) close() {
	if f.isrHandle != nil {
		_ = f.isrHandle.Close()
	}
}

// Receive blocks until a frame is queued, then pops and returns it. It
// returns false only if the acquire was cancelled, or — should it ever
// happen — the software FIFO was found empty after a successful acquire.
func (f *RxHwFifo) Receive(ctx context.Context) (Frame, bool) {
	if !f.fill.Acquire(ctx) {
		return Frame{}, false
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.fifo.isEmpty() {
		return Frame{}, false
	}
	frame := f.fifo.peek()
	f.fifo.remove()
	return frame, true
}

// isr is the per-FIFO RX ISR body.
func (f *RxHwFifo) isr() {
	rfxr := f.regs.rfxr(f.index)
	if rfxr.Field(rfFMPPos, rfFMPWidth) == 0 {
		return // spurious: no message pending
	}

	frame := f.decodeHeadMailbox()

	f.mutex.Lock()
	wasFull := f.fifo.isFull()
	displaced := !f.fifo.locked && wasFull
	admitted, _ := f.fifo.push(frame)
	f.mutex.Unlock()

	needSwitch := false
	if admitted {
		if !displaced {
			if f.fill.ReleaseFromInterrupt() {
				if f.fill.HasToSwitchContext() {
					needSwitch = true
				}
			}
		}
		if f.metrics != nil {
			f.metrics.RxFrame(metrics.Fifo(f.index))
		}
	} else if f.metrics != nil {
		f.metrics.RxDropped(metrics.Fifo(f.index))
	}

	// Release the hardware mailbox head regardless of software-side
	// admission: a software drop must still free the hardware slot so the
	// peripheral can receive the next frame.
	rfxr = f.regs.rfxr(f.index)
	rfxr.SetBit(rfRFOM, true)
	f.regs.commitRFxR(f.index, rfxr)

	if needSwitch {
		f.thread.YieldFromInterrupt()
	}
}

func (f *RxHwFifo) decodeHeadMailbox() Frame {
	rixr := f.regs.rxRIxR(f.index)
	rdtxr := f.regs.rxRDTxR(f.index)
	lo := f.regs.rxRDLxR(f.index)
	hi := f.regs.rxRDHxR(f.index)

	ide := rixr.Bit(tixrIDE)
	var id uint32
	if ide {
		id = rixr.Field(tixrExtIDPos, tixrExtIDW)
	} else {
		id = rixr.Field(tixrStdIDPos, tixrStdIDW)
	}

	return Frame{
		ID:   id,
		IDE:  ide,
		RTR:  rixr.Bit(tixrRTR),
		DLC:  uint8(rdtxr.Field(tdtDLCPos, tdtDLCW)),
		Data: decodeDataWords(lo, hi),
	}
}
