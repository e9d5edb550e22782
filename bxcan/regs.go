package bxcan

import "omibyte.io/canbus/regio"

// Register addresses are word offsets into a logical bxCAN register file
// laid out register-group by register-group, mirroring the real ST bxCAN
// memory map's section order (control/status, mailboxes, FIFOs, filters).
// The exact base addresses are this driver's own convention — a
// regio.RegisterFile is free to back them with real MMIO at whatever base
// the SoC places the peripheral, or with a simulated map for tests.
const (
	regMCR  uint32 = 0x00
	regMSR  uint32 = 0x04
	regTSR  uint32 = 0x08
	regRF0R uint32 = 0x0C
	regRF1R uint32 = 0x10
	regIER  uint32 = 0x14
	regESR  uint32 = 0x18
	regBTR  uint32 = 0x1C

	txMailboxBase   uint32 = 0x180
	txMailboxStride uint32 = 0x10
	offTIxR         uint32 = 0x00
	offTDTxR        uint32 = 0x04
	offTDLxR        uint32 = 0x08
	offTDHxR        uint32 = 0x0C

	rxFifoBase   uint32 = 0x1C0
	rxFifoStride uint32 = 0x10
	offRIxR      uint32 = 0x00
	offRDTxR     uint32 = 0x04
	offRDLxR     uint32 = 0x08
	offRDHxR     uint32 = 0x0C

	regFMR   uint32 = 0x200
	regFM1R  uint32 = 0x204
	regFS1R  uint32 = 0x208
	regFFA1R uint32 = 0x20C
	regFA1R  uint32 = 0x210

	filterBankBase   uint32 = 0x240
	filterBankStride uint32 = 0x08
)

func txMailboxAddr(index int, offset uint32) uint32 {
	return txMailboxBase + uint32(index)*txMailboxStride + offset
}

func rxFifoMailboxAddr(fifo int, offset uint32) uint32 {
	return rxFifoBase + uint32(fifo)*rxFifoStride + offset
}

// filterBankAddr returns the address of word 0 (FxR1) or word 1 (FxR2) of
// filter bank index.
func filterBankAddr(index int, word int) uint32 {
	return filterBankBase + uint32(index)*filterBankStride + uint32(word)*4
}

// MCR bit positions.
const (
	mcrINRQ  uint = 0
	mcrSLEEP uint = 1
	mcrTXFP  uint = 2
	mcrRFLM  uint = 3
	mcrNART  uint = 4
	mcrAWUM  uint = 5
	mcrABOM  uint = 6
	mcrTTCM  uint = 7
	mcrDBF   uint = 16
)

// MSR bit positions.
const (
	msrINAK uint = 0
	msrSLAK uint = 1
	msrERRI uint = 2
	msrWKUI uint = 3
)

// BTR field positions/widths.
const (
	btrBRPPos, btrBRPWidth = 0, 10
	btrTS1Pos, btrTS1Width = 16, 4
	btrTS2Pos, btrTS2Width = 20, 3
	btrSJWPos, btrSJWWidth = 24, 2
	btrLBKM                = uint(30)
	btrSILM                = uint(31)
)

// TSR bit layout: per-mailbox RQCPx/TXOKx/ALSTx/TERRx at 8*index+{0,1,2,3},
// TMEx at bit 24+index.
const tsrMailboxStride = 8

func tsrRQCPBit(index int) uint { return uint(tsrMailboxStride*index + 0) }
func tsrTXOKBit(index int) uint { return uint(tsrMailboxStride*index + 1) }
func tsrALSTBit(index int) uint { return uint(tsrMailboxStride*index + 2) }
func tsrTERRBit(index int) uint { return uint(tsrMailboxStride*index + 3) }
func tsrTMEBit(index int) uint  { return uint(24 + index) }

// RFxR bit layout.
const (
	rfFMPPos, rfFMPWidth = 0, 2
	rfFULL               = uint(3)
	rfFOVR               = uint(4)
	rfRFOM               = uint(5)
)

// IER bit positions.
const (
	ierTMEIE  uint = 0
	ierFMPIE0 uint = 1
	ierFFIE0  uint = 2
	ierFOVIE0 uint = 3
	ierFMPIE1 uint = 4
	ierFFIE1  uint = 5
	ierFOVIE1 uint = 6
	ierEWGIE  uint = 8
	ierEPVIE  uint = 9
	ierBOFIE  uint = 10
	ierLECIE  uint = 11
	ierERRIE  uint = 15
	ierWKUIE  uint = 16
	ierSLKIE  uint = 17
)

// ESR bit/field layout.
const (
	esrEWGF               = uint(0)
	esrEPVF               = uint(1)
	esrBOFF               = uint(2)
	esrLECPos, esrLECW    = 4, 3
	esrTECPos, esrTECW    = 16, 8
	esrRECPos, esrRECW    = 24, 8
)

// TIxR/RIxR bit/field layout: TXRQ/RTR/IDE share bit positions with RIxR's
// RTR/IDE; standard IDs occupy the top 11 bits, extended IDs occupy the top
// 29 bits (STID[10:0] at [31:21], EXID[17:0] at [20:3]).
const (
	tixrTXRQ          = uint(0)
	tixrRTR           = uint(1)
	tixrIDE           = uint(2)
	tixrStdIDPos, tixrStdIDW = 21, 11
	tixrExtIDPos, tixrExtIDW = 3, 29
)

// TDTxR/RDTxR bit/field layout.
const (
	tdtDLCPos, tdtDLCW = 0, 4
	rdtFMIPos, rdtFMIW = 8, 8
)

// FMR/filter activation bit layout: bit index == filter bank index.
const fmrFINIT = uint(0)

// regs bundles a RegisterFile with the typed accessors every bxCAN
// component needs. It is the one place register addresses are known; every
// component holds a *regs and never touches a regio.RegisterFile directly.
type regs struct {
	file regio.RegisterFile
}

func newRegs(file regio.RegisterFile) *regs { return &regs{file: file} }

func (r *regs) word(addr uint32) regio.Word32 { return regio.At(r.file, addr) }

// --- MCR/MSR/BTR/IER/ESR ---

func (r *regs) mcr() regio.Word32  { w := r.word(regMCR); w.Fetch(); return w }
func (r *regs) commitMCR(w regio.Word32) { w.Commit() }

func (r *regs) msr() regio.Word32 { w := r.word(regMSR); w.Fetch(); return w }

func (r *regs) btr() regio.Word32        { w := r.word(regBTR); w.Fetch(); return w }
func (r *regs) commitBTR(w regio.Word32) { w.Commit() }

func (r *regs) ier() regio.Word32        { w := r.word(regIER); w.Fetch(); return w }
func (r *regs) commitIER(w regio.Word32) { w.Commit() }

func (r *regs) esr() regio.Word32 { w := r.word(regESR); w.Fetch(); return w }

// --- TSR / mailbox completion ---

func (r *regs) tsr() regio.Word32 { w := r.word(regTSR); w.Fetch(); return w }

// ackRequestCompleted writes a write-1-to-clear RQCPx mask without
// disturbing other mailboxes' bits, per the real TSR semantics.
func (r *regs) ackRequestCompleted(index int) {
	regio.WriteOnlyClear(r.file, regTSR, 1<<tsrRQCPBit(index))
}

// --- TX mailbox registers ---

func (r *regs) txTIxR(index int) regio.Word32  { w := r.word(txMailboxAddr(index, offTIxR)); w.Fetch(); return w }
func (r *regs) txTDTxR(index int) regio.Word32 { w := r.word(txMailboxAddr(index, offTDTxR)); w.Fetch(); return w }

func (r *regs) commitTxTIxR(index int, w regio.Word32)  { r.file.Store(txMailboxAddr(index, offTIxR), w.Value()) }
func (r *regs) commitTxTDTxR(index int, w regio.Word32) { r.file.Store(txMailboxAddr(index, offTDTxR), w.Value()) }
func (r *regs) commitTxTDLxR(index int, v uint32)       { r.file.Store(txMailboxAddr(index, offTDLxR), v) }
func (r *regs) commitTxTDHxR(index int, v uint32)       { r.file.Store(txMailboxAddr(index, offTDHxR), v) }

// --- RX FIFO registers ---

func (r *regs) rfxr(fifo int) regio.Word32 {
	addr := regRF0R
	if fifo == 1 {
		addr = regRF1R
	}
	w := r.word(addr)
	w.Fetch()
	return w
}

func (r *regs) commitRFxR(fifo int, w regio.Word32) {
	w.Commit()
}

func (r *regs) rxRIxR(fifo int) regio.Word32  { w := r.word(rxFifoMailboxAddr(fifo, offRIxR)); w.Fetch(); return w }
func (r *regs) rxRDTxR(fifo int) regio.Word32 { w := r.word(rxFifoMailboxAddr(fifo, offRDTxR)); w.Fetch(); return w }
func (r *regs) rxRDLxR(fifo int) uint32       { return r.file.Load(rxFifoMailboxAddr(fifo, offRDLxR)) }
func (r *regs) rxRDHxR(fifo int) uint32       { return r.file.Load(rxFifoMailboxAddr(fifo, offRDHxR)) }

// --- Filter bank registers ---

func (r *regs) fmr() regio.Word32        { w := r.word(regFMR); w.Fetch(); return w }
func (r *regs) commitFMR(w regio.Word32) { w.Commit() }

func (r *regs) fa1r() regio.Word32        { w := r.word(regFA1R); w.Fetch(); return w }
func (r *regs) commitFA1R(w regio.Word32) { w.Commit() }

func (r *regs) fm1r() regio.Word32        { w := r.word(regFM1R); w.Fetch(); return w }
func (r *regs) commitFM1R(w regio.Word32) { w.Commit() }

func (r *regs) fs1r() regio.Word32        { w := r.word(regFS1R); w.Fetch(); return w }
func (r *regs) commitFS1R(w regio.Word32) { w.Commit() }

func (r *regs) ffa1r() regio.Word32        { w := r.word(regFFA1R); w.Fetch(); return w }
func (r *regs) commitFFA1R(w regio.Word32) { w.Commit() }

func (r *regs) commitFilterBank(index int, bits [2]uint32) {
	r.file.Store(filterBankAddr(index, 0), bits[0])
	r.file.Store(filterBankAddr(index, 1), bits[1])
}

func (r *regs) filterBank(index int) [2]uint32 {
	return [2]uint32{r.file.Load(filterBankAddr(index, 0)), r.file.Load(filterBankAddr(index, 1))}
}
