package bxcan

import "testing"

func TestTxMailboxTransmitRequiresEmpty(t *testing.T) {
	sim := newSimRegs()
	r := newRegs(sim)
	mb := newTxMailbox(0, r)

	// TME defaults to 0 in the simulated register file, so the mailbox
	// reports not-empty until a test sets it, mirroring reset state where
	// software must not assume mailboxes start empty.
	if mb.IsEmpty() {
		t.Fatalf("mailbox reported empty before TME was set")
	}
	if mb.Transmit(StandardFrame(1, []byte{1})) {
		t.Fatalf("Transmit succeeded on a non-empty mailbox")
	}

	sim.setBit(regTSR, tsrTMEBit(0))
	if !mb.IsEmpty() {
		t.Fatalf("mailbox reported non-empty after TME was set")
	}

	frame := StandardFrame(0x42, []byte{1, 2, 3})
	if !mb.Transmit(frame) {
		t.Fatalf("Transmit failed on an empty mailbox")
	}
	if !sim.bit(txMailboxAddr(0, offTIxR), tixrTXRQ) {
		t.Fatalf("TXRQ was not set after Transmit")
	}
}

func TestTxMailboxRoutineCompletion(t *testing.T) {
	sim := newSimRegs()
	r := newRegs(sim)
	mb := newTxMailbox(1, r)

	// Nothing pending: idempotent no-op.
	if mb.Routine() {
		t.Fatalf("Routine reported completion with RQCP clear")
	}

	sim.setBit(regTSR, tsrRQCPBit(1))
	sim.setBit(regTSR, tsrTMEBit(1))
	sim.setBit(regTSR, tsrTXOKBit(1))

	if !mb.Routine() {
		t.Fatalf("Routine did not report completion")
	}
	if mb.ErrorCounter() != 0 {
		t.Fatalf("ErrorCounter = %d after a successful transmission, want 0", mb.ErrorCounter())
	}
	if sim.bit(regTSR, tsrRQCPBit(1)) {
		t.Fatalf("RQCP was not acknowledged (write-1-to-clear) by Routine")
	}
}

func TestTxMailboxRoutineCountsTransientErrors(t *testing.T) {
	sim := newSimRegs()
	r := newRegs(sim)
	mb := newTxMailbox(2, r)

	sim.setBit(regTSR, tsrRQCPBit(2))
	sim.setBit(regTSR, tsrTMEBit(2))
	sim.setBit(regTSR, tsrTERRBit(2))
	// TXOK stays clear: a transient transmission error.

	if !mb.Routine() {
		t.Fatalf("Routine did not report completion")
	}
	if mb.ErrorCounter() != 1 {
		t.Fatalf("ErrorCounter = %d, want 1 after one failed completion", mb.ErrorCounter())
	}
}

func TestDataWordRoundTrip(t *testing.T) {
	data := [8]byte{1, 2, 3, 4, 5, 6, 7, 8}
	lo, hi := encodeDataWords(data)
	got := decodeDataWords(lo, hi)
	if got != data {
		t.Fatalf("decodeDataWords(encodeDataWords(x)) = %v, want %v", got, data)
	}
}
