package bxcan

import (
	"context"

	"omibyte.io/canbus/kernel"
	"omibyte.io/canbus/metrics"
)

// RxCore owns the two hardware RX FIFOs and serializes the filter-bank
// programming protocol behind one mutex.
type RxCore struct {
	fifos       [numRxFifos]*RxHwFifo
	filterMutex kernel.Mutex
	regs        *regs
}

func newRxCore(r *regs, locked bool, svc kernel.Services, rec metrics.Recorder) (*RxCore, error) {
	rc := &RxCore{regs: r, filterMutex: svc.Mutex()}
	for i := range rc.fifos {
		f, err := newRxHwFifo(i, locked, r, svc, rec)
		if err != nil {
			for j := 0; j < i; j++ {
				rc.fifos[j].close()
			}
			return nil, err
		}
		rc.fifos[i] = f
	}
	return rc, nil
}

func (rc *RxCore) close() {
	for _, f := range rc.fifos {
		if f != nil {
			f.close()
		}
	}
}

// Receive blocks on the given FIFO's fill semaphore and returns the next
// queued frame.
func (rc *RxCore) Receive(ctx context.Context, fifo RxFifo) (Frame, bool) {
	if int(fifo) >= len(rc.fifos) {
		return Frame{}, false
	}
	return rc.fifos[fifo].Receive(ctx)
}

// SetReceiveFilter programs one of the 14 filter banks following the
// quiesce/deactivate/reconfigure/reactivate/exit-quiesce protocol (§4.6 of
// SPEC_FULL.md). The index and FIFO are validated before filter-init mode is
// entered, so a rejected call returns false without touching FMR; once
// filter-init mode is entered, FMR.finit is cleared again before returning,
// so no call leaves the controller parked in filter-init mode (the decided
// open question, §9).
func (rc *RxCore) SetReceiveFilter(filter RxFilter) bool {
	if filter.Index < 0 || filter.Index >= NumFilterBanks {
		return false
	}
	if int(filter.Fifo) >= numRxFifos {
		return false
	}

	rc.filterMutex.Lock()
	defer rc.filterMutex.Unlock()

	// 1. Enter filter-init mode.
	fmr := rc.regs.fmr()
	fmr.SetBit(fmrFINIT, true)
	rc.regs.commitFMR(fmr)

	ok := rc.programBank(filter)

	// 8. Leave filter-init mode unconditionally, success or failure.
	fmr = rc.regs.fmr()
	fmr.SetBit(fmrFINIT, false)
	rc.regs.commitFMR(fmr)

	return ok
}

func (rc *RxCore) programBank(filter RxFilter) bool {
	idx := uint(filter.Index)

	// 2. Deactivate this bank.
	fa1r := rc.regs.fa1r()
	fa1r.SetBit(idx, false)
	rc.regs.commitFA1R(fa1r)

	// 3. Mode.
	fm1r := rc.regs.fm1r()
	fm1r.SetBit(idx, filter.Mode == FilterModeIDList)
	rc.regs.commitFM1R(fm1r)

	// 4. Scale.
	fs1r := rc.regs.fs1r()
	fs1r.SetBit(idx, filter.Scale == FilterScale32Bit)
	rc.regs.commitFS1R(fs1r)

	// 5. FIFO assignment.
	ffa1r := rc.regs.ffa1r()
	ffa1r.SetBit(idx, filter.Fifo == RxFifo1)
	rc.regs.commitFFA1R(ffa1r)

	// 6. Filter bits.
	rc.regs.commitFilterBank(filter.Index, filter.Bits)

	// 7. Reactivate.
	fa1r = rc.regs.fa1r()
	fa1r.SetBit(idx, true)
	rc.regs.commitFA1R(fa1r)

	return true
}
