package bxcan

import "omibyte.io/canbus/kernel"

// StatusSnapshot is the latched ESR/MSR state passed to an optional
// OnStatusChange callback.
type StatusSnapshot struct {
	ErrorWarning bool
	ErrorPassive bool
	BusOff       bool
	LastErrorCode uint32
	TxErrorCount  uint32
	RxErrorCount  uint32
}

// StatusCore handles the status-change/error interrupt vector. It always
// acknowledges the interrupt so it does not re-fire; an optional,
// non-blocking callback lets a caller observe the latched state (the
// decided extension point, §9).
type StatusCore struct {
	regs      *regs
	onChange  func(StatusSnapshot)
	isrHandle kernel.InterruptHandle
}

func newStatusCore(r *regs, onChange func(StatusSnapshot), svc kernel.Services) (*StatusCore, error) {
	sc := &StatusCore{regs: r, onChange: onChange}
	handle, err := svc.IC.CreateResource(sc.isr, vectorStatus)
	if err != nil {
		return nil, ErrInterruptSetup
	}
	sc.isrHandle = handle
	sc.isrHandle.Enable()
	return sc, nil
}

func (sc *StatusCore) close() {
	if sc.isrHandle != nil {
		_ = sc.isrHandle.Close()
	}
}

func (sc *StatusCore) isr() {
	esr := sc.regs.esr()
	msr := sc.regs.msr()

	snapshot := StatusSnapshot{
		ErrorWarning:  esr.Bit(esrEWGF),
		ErrorPassive:  esr.Bit(esrEPVF),
		BusOff:        esr.Bit(esrBOFF),
		LastErrorCode: esr.Field(esrLECPos, esrLECW),
		TxErrorCount:  esr.Field(esrTECPos, esrTECW),
		RxErrorCount:  esr.Field(esrRECPos, esrRECW),
	}

	// Acknowledge the status-change-interrupt latch so the vector does not
	// immediately re-fire.
	msr.SetBit(msrERRI, true)
	msr.Commit()

	if sc.onChange != nil {
		sc.onChange(snapshot)
	}
}
