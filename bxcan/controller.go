package bxcan

import (
	"context"

	"omibyte.io/canbus/kernel"
	"omibyte.io/canbus/logging"
	"omibyte.io/canbus/metrics"
	"omibyte.io/canbus/regio"
)

// initHandshakeSpinLimit bounds the busy-wait this driver performs while
// waiting for the peripheral to acknowledge entry into, or exit from,
// initialization mode.
const initHandshakeSpinLimit = 65535

// Controller owns one bxCAN peripheral instance end to end: its lifecycle,
// its three sub-cores, and the caller-facing blocking API.
type Controller struct {
	config Config

	regs     *regs
	platform ClockGPIO

	tx     *TxCore
	rx     *RxCore
	status *StatusCore

	number  int
	onClose func()
}

// newControllerOptions carries the optional extension points of
// newController. onStatusChange, when non-nil, is invoked from the
// status-vector ISR with the latched ESR/MSR snapshot (§4.7). It must not
// block.
type newControllerOptions struct {
	onStatusChange func(StatusSnapshot)
	metrics        metrics.Recorder
}

func newController(config Config, file regio.RegisterFile, platform ClockGPIO, svc kernel.Services, opts newControllerOptions) (*Controller, error) {
	if svc.ClockAt.CPUClockHz() != ExpectedCPUClockHz {
		return nil, ErrClockMismatch
	}

	r := newRegs(file)

	platform.EnableCANPeripheralClock()
	platform.EnableGPIOPortClock()
	platform.ConfigureTXRXPins()

	if err := enterInitMode(r); err != nil {
		return nil, err
	}

	mcr := r.mcr()
	mcr.SetBit(mcrTXFP, config.TXFP)
	mcr.SetBit(mcrRFLM, config.RFLM)
	mcr.SetBit(mcrNART, false)
	mcr.SetBit(mcrAWUM, false)
	mcr.SetBit(mcrABOM, false)
	mcr.SetBit(mcrTTCM, false)
	mcr.SetBit(mcrDBF, config.DBF)
	r.commitMCR(mcr)
	if config.DBF {
		platform.SetDebugStop(true)
	}

	btr := r.btr()
	btr.SetBit(btrLBKM, config.LBKM)
	btr.SetBit(btrSILM, config.SILM)
	table := btrValue(config.SamplePoint, config.BitRate)
	btr.SetField(btrBRPPos, btrBRPWidth, (table>>0)&0x3FF)
	btr.SetField(btrTS1Pos, btrTS1Width, (table>>16)&0xF)
	btr.SetField(btrTS2Pos, btrTS2Width, (table>>20)&0x7)
	btr.SetField(btrSJWPos, btrSJWWidth, (table>>24)&0x3)
	r.commitBTR(btr)

	if err := leaveInitMode(r); err != nil {
		return nil, err
	}

	ier := r.ier()
	ier.SetBit(ierTMEIE, true)
	ier.SetBit(ierFMPIE0, true)
	ier.SetBit(ierFFIE0, true)
	ier.SetBit(ierFOVIE0, true)
	ier.SetBit(ierFMPIE1, true)
	ier.SetBit(ierFFIE1, true)
	ier.SetBit(ierFOVIE1, true)
	ier.SetBit(ierEWGIE, true)
	ier.SetBit(ierEPVIE, true)
	ier.SetBit(ierBOFIE, true)
	ier.SetBit(ierLECIE, true)
	ier.SetBit(ierERRIE, true)
	ier.SetBit(ierWKUIE, true)
	ier.SetBit(ierSLKIE, true)
	r.commitIER(ier)

	tx, err := newTxCore(r, svc, opts.metrics)
	if err != nil {
		deinitRegisters(r)
		return nil, err
	}
	rx, err := newRxCore(r, config.RFLM, svc, opts.metrics)
	if err != nil {
		tx.close()
		deinitRegisters(r)
		return nil, err
	}
	status, err := newStatusCore(r, opts.onStatusChange, svc)
	if err != nil {
		tx.close()
		rx.close()
		deinitRegisters(r)
		return nil, err
	}

	return &Controller{
		config:   config,
		regs:     r,
		platform: platform,
		tx:       tx,
		rx:       rx,
		status:   status,
		number:   config.Number,
	}, nil
}

func enterInitMode(r *regs) error {
	mcr := r.mcr()
	mcr.SetBit(mcrSLEEP, false)
	mcr.SetBit(mcrINRQ, true)
	r.commitMCR(mcr)

	for i := 0; i < initHandshakeSpinLimit; i++ {
		if r.msr().Bit(msrINAK) {
			return nil
		}
	}
	return ErrInitTimeout
}

func leaveInitMode(r *regs) error {
	mcr := r.mcr()
	mcr.SetBit(mcrINRQ, false)
	r.commitMCR(mcr)

	for i := 0; i < initHandshakeSpinLimit; i++ {
		if !r.msr().Bit(msrINAK) {
			return nil
		}
	}
	return ErrInitTimeout
}

// deinitRegisters clears every interrupt-enable bit, mirroring
// Controller.Close's hardware-side teardown. It is also used to roll back a
// partially constructed Controller.
func deinitRegisters(r *regs) {
	ier := r.ier()
	ier.SetValue(0)
	r.commitIER(ier)
}

// Close tears down the controller: interrupt-enable bits are cleared and
// every ISR resource is unregistered. The peripheral clock is not disabled;
// ClockGPIO has no clock-disable operation, so the clock stays enabled after
// Close. Filter banks are not cleared.
func (c *Controller) Close() error {
	c.tx.close()
	c.rx.close()
	c.status.close()
	deinitRegisters(c.regs)
	if c.onClose != nil {
		c.onClose()
	}
	logging.L().Info("bxcan_close", "number", c.number)
	return nil
}

// Transmit submits frame for transmission, blocking until a mailbox is free.
func (c *Controller) Transmit(frame Frame) bool {
	return c.tx.Transmit(context.Background(), frame)
}

// TransmitContext is Transmit with cancellation: it returns false without
// side effects if ctx is done before a mailbox becomes free.
func (c *Controller) TransmitContext(ctx context.Context, frame Frame) bool {
	return c.tx.Transmit(ctx, frame)
}

// Receive blocks until a frame is available on fifo, then returns it.
func (c *Controller) Receive(fifo RxFifo) (Frame, bool) {
	return c.rx.Receive(context.Background(), fifo)
}

// ReceiveContext is Receive with cancellation.
func (c *Controller) ReceiveContext(ctx context.Context, fifo RxFifo) (Frame, bool) {
	return c.rx.Receive(ctx, fifo)
}

// SetReceiveFilter programs one of the 14 acceptance filter banks.
func (c *Controller) SetReceiveFilter(filter RxFilter) bool {
	return c.rx.SetReceiveFilter(filter)
}

// TransmitErrorCounter returns the maximum per-mailbox transient
// transmission error count, or -1 if unsupported (this driver always
// supports it, so -1 is never actually returned).
func (c *Controller) TransmitErrorCounter() int32 {
	return c.tx.TransmitErrorCounter()
}
