package bxcan

import (
	"testing"

	"omibyte.io/canbus/kernel/hosted"
)

// fakePlatform is a no-op ClockGPIO recording which calls were made, used
// by Controller construction tests.
type fakePlatform struct {
	clockEnabled bool
	gpioEnabled  bool
	pinsConfig   bool
	debugStop    bool
}

func (p *fakePlatform) EnableCANPeripheralClock() { p.clockEnabled = true }
func (p *fakePlatform) EnableGPIOPortClock()      { p.gpioEnabled = true }
func (p *fakePlatform) ConfigureTXRXPins()        { p.pinsConfig = true }
func (p *fakePlatform) SetDebugStop(enable bool)  { p.debugStop = enable }

// simRegsWithHandshake is a RegisterFile wrapping simRegs that auto-acks the
// INRQ/INAK handshake bits, the way real hardware would, since newController
// spins on MSR.INAK tracking MCR.INRQ.
type simRegsWithHandshake struct {
	*simRegs
}

func (s *simRegsWithHandshake) Store(addr uint32, value uint32) {
	s.simRegs.Store(addr, value)
	if addr == regMCR {
		inrq := value&(1<<mcrINRQ) != 0
		msr := s.simRegs.Load(regMSR)
		if inrq {
			msr |= 1 << msrINAK
		} else {
			msr &^= 1 << msrINAK
		}
		s.simRegs.words[regMSR] = msr
	}
}

func newHandshakingSimRegs() *simRegsWithHandshake {
	return &simRegsWithHandshake{simRegs: newSimRegs()}
}

func TestCreateBringsUpAndClosesController(t *testing.T) {
	sim := newHandshakingSimRegs()
	for i := 0; i < numTxMailboxes; i++ {
		sim.setBit(regTSR, tsrTMEBit(i))
	}
	ic := hosted.NewInterruptController()
	svc := newTestServices(ic)
	platform := &fakePlatform{}

	config := Config{Number: 1, BitRate: BitRate500k, SamplePoint: SamplePointCANopen, DBF: true}
	c, err := newController(config, sim, platform, svc, newControllerOptions{})
	if err != nil {
		t.Fatalf("newController: %v", err)
	}
	defer c.Close()

	if !platform.clockEnabled || !platform.gpioEnabled || !platform.pinsConfig {
		t.Fatalf("platform capability not fully exercised: %+v", platform)
	}
	if !platform.debugStop {
		t.Fatalf("SetDebugStop(true) not called despite Config.DBF")
	}
	if got := sim.Load(regBTR); got&0x3FF != BTRValue(SamplePointCANopen, BitRate500k)&0x3FF {
		t.Fatalf("BTR prescaler = %#x, want table value", got)
	}
	if sim.bit(regMCR, mcrINRQ) {
		t.Fatalf("controller left INRQ set after bring-up")
	}
}

func TestCreateRejectsWrongClock(t *testing.T) {
	sim := newHandshakingSimRegs()
	ic := hosted.NewInterruptController()
	svc := newTestServices(ic)
	svc.ClockAt = hosted.NewClock(8_000_000)
	platform := &fakePlatform{}

	_, err := newController(Config{Number: 1}, sim, platform, svc, newControllerOptions{})
	if err != ErrClockMismatch {
		t.Fatalf("err = %v, want ErrClockMismatch", err)
	}
}
