package bxcan

import (
	"testing"

	"omibyte.io/canbus/kernel/hosted"
	"omibyte.io/canbus/metrics"
)

func TestRxCoreSetReceiveFilterProgramsBankAndClearsFinit(t *testing.T) {
	sim := newSimRegs()
	r := newRegs(sim)
	ic := hosted.NewInterruptController()
	svc := newTestServices(ic)

	rc, err := newRxCore(r, true, svc, metrics.Noop{})
	if err != nil {
		t.Fatalf("newRxCore: %v", err)
	}
	defer rc.close()

	filter := RxFilter{
		Index: 3,
		Fifo:  RxFifo1,
		Mode:  FilterModeIDList,
		Scale: FilterScale32Bit,
		Bits:  [2]uint32{0x111, 0x222},
	}
	if !rc.SetReceiveFilter(filter) {
		t.Fatalf("SetReceiveFilter returned false")
	}

	if !sim.bit(regFM1R, 3) {
		t.Fatalf("FM1R bit 3 not set for id-list mode")
	}
	if !sim.bit(regFS1R, 3) {
		t.Fatalf("FS1R bit 3 not set for 32-bit scale")
	}
	if !sim.bit(regFFA1R, 3) {
		t.Fatalf("FFA1R bit 3 not set for FIFO1 assignment")
	}
	if !sim.bit(regFA1R, 3) {
		t.Fatalf("filter bank 3 was not reactivated")
	}
	if sim.bit(regFMR, fmrFINIT) {
		t.Fatalf("FMR.finit left set after SetReceiveFilter")
	}

	bank := r.filterBank(3)
	if bank[0] != 0x111 || bank[1] != 0x222 {
		t.Fatalf("filter bank bits = %#v, want [0x111 0x222]", bank)
	}
}

func TestRxCoreSetReceiveFilterRejectsOutOfRangeIndex(t *testing.T) {
	sim := newSimRegs()
	r := newRegs(sim)
	ic := hosted.NewInterruptController()
	svc := newTestServices(ic)

	rc, err := newRxCore(r, true, svc, metrics.Noop{})
	if err != nil {
		t.Fatalf("newRxCore: %v", err)
	}
	defer rc.close()

	if rc.SetReceiveFilter(RxFilter{Index: NumFilterBanks}) {
		t.Fatalf("SetReceiveFilter accepted an out-of-range index")
	}
	if sim.bit(regFMR, fmrFINIT) {
		t.Fatalf("FMR.finit was touched by a rejected request")
	}
}
