package bxcan

// errorCounterLimit is the saturating ceiling for a mailbox's transient
// transmission error counter.
const errorCounterLimit = 0x20000000

// MailboxState is a latched snapshot of one TX mailbox's status bits, taken
// atomically by TxMailbox.Routine.
type MailboxState struct {
	RQCP bool
	TXOK bool
	ALST bool
	TERR bool
	TME  bool
}

// TxMailbox models one of the three hardware TX slots.
type TxMailbox struct {
	index int
	regs  *regs

	state        MailboxState
	errorCounter int32
}

func newTxMailbox(index int, r *regs) *TxMailbox {
	return &TxMailbox{index: index, regs: r}
}

// IsEmpty reports whether this mailbox's TME bit is set.
func (m *TxMailbox) IsEmpty() bool {
	tsr := m.regs.tsr()
	return tsr.Bit(tsrTMEBit(m.index))
}

// Transmit writes frame into this mailbox and raises its request bit,
// returning whether the request was issued. It does nothing (and returns
// false) if the slot is not empty.
func (m *TxMailbox) Transmit(frame Frame) bool {
	if !m.IsEmpty() {
		return false
	}

	tixr := m.regs.txTIxR(m.index)
	tixr.SetBit(tixrTXRQ, false)
	m.regs.commitTxTIxR(m.index, tixr)

	tixr = m.regs.txTIxR(m.index)
	tixr.SetBit(tixrRTR, frame.RTR)
	if !frame.IDE {
		tixr.SetBit(tixrIDE, false)
		tixr.SetField(tixrStdIDPos, tixrStdIDW, frame.ID&0x7FF)
	} else {
		tixr.SetBit(tixrIDE, true)
		tixr.SetField(tixrExtIDPos, tixrExtIDW, frame.ID&0x1FFFFFFF)
	}
	m.regs.commitTxTIxR(m.index, tixr)

	tdtxr := m.regs.txTDTxR(m.index)
	tdtxr.SetField(tdtDLCPos, tdtDLCW, uint32(frame.DLC))
	m.regs.commitTxTDTxR(m.index, tdtxr)

	lo, hi := encodeDataWords(frame.Data)
	m.regs.commitTxTDLxR(m.index, lo)
	m.regs.commitTxTDHxR(m.index, hi)

	tixr = m.regs.txTIxR(m.index)
	tixr.SetBit(tixrTXRQ, true)
	m.regs.commitTxTIxR(m.index, tixr)

	return true
}

// Routine is the ISR-side completion step: it atomically snapshots the
// mailbox's five status bits, acknowledges a completed request by clearing
// RQCP, and counts transient transmission errors. It is idempotent when
// RQCP is not set.
func (m *TxMailbox) Routine() bool {
	tsr := m.regs.tsr()
	m.state = MailboxState{
		RQCP: tsr.Bit(tsrRQCPBit(m.index)),
		TXOK: tsr.Bit(tsrTXOKBit(m.index)),
		ALST: tsr.Bit(tsrALSTBit(m.index)),
		TERR: tsr.Bit(tsrTERRBit(m.index)),
		TME:  tsr.Bit(tsrTMEBit(m.index)),
	}

	if !m.state.RQCP {
		return false
	}

	completed := m.state.RQCP && m.state.TME
	if !m.state.TXOK {
		if m.errorCounter < errorCounterLimit {
			m.errorCounter++
		}
	}
	if completed {
		m.regs.ackRequestCompleted(m.index)
		return true
	}
	return false
}

// ErrorCounter returns the saturating count of transient transmission
// errors observed on this mailbox.
func (m *TxMailbox) ErrorCounter() int32 { return m.errorCounter }

func encodeDataWords(data [8]byte) (lo, hi uint32) {
	lo = uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	hi = uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
	return
}

func decodeDataWords(lo, hi uint32) (data [8]byte) {
	data[0] = byte(lo)
	data[1] = byte(lo >> 8)
	data[2] = byte(lo >> 16)
	data[3] = byte(lo >> 24)
	data[4] = byte(hi)
	data[5] = byte(hi >> 8)
	data[6] = byte(hi >> 16)
	data[7] = byte(hi >> 24)
	return
}
