// Package regio provides the fetch/modify/commit register-word primitive
// design note §9 asks for: every bit-field register shadow in this driver is
// a strongly typed Word32 value round-tripped through a RegisterFile
// capability, never a raw pointer dereference. This mirrors the generated,
// typed register accessors this corpus's svd-gen tool produces for real
// silicon (chip.CAN_CAN_SIDFE_0_REG.SetSFT and friends) while staying
// independent of any particular MMIO layout, so a register file can be a
// real peripheral, a simulated map for tests, or anything else satisfying
// the interface.
package regio

// RegisterFile is the narrow seam every register access in this driver goes
// through. Implementations back it with real MMIO, a simulated map, or
// anything else that behaves like 32-bit-addressable memory.
type RegisterFile interface {
	Load(addr uint32) uint32
	Store(addr uint32, value uint32)
}

// Word32 is a fetched shadow of one 32-bit register. Callers Fetch, mutate
// the shadow with bit/field helpers, then Commit to write it back. Reading
// or writing Value never touches the RegisterFile directly.
type Word32 struct {
	file  RegisterFile
	addr  uint32
	value uint32
}

// At returns a Word32 bound to addr in file. The shadow starts zeroed; call
// Fetch before reading bits that must reflect current hardware state.
func At(file RegisterFile, addr uint32) Word32 {
	return Word32{file: file, addr: addr}
}

// Fetch reloads the shadow from the register file.
func (w *Word32) Fetch() *Word32 {
	w.value = w.file.Load(w.addr)
	return w
}

// Commit writes the shadow back to the register file.
func (w *Word32) Commit() {
	w.file.Store(w.addr, w.value)
}

// Value returns the current shadow value.
func (w Word32) Value() uint32 { return w.value }

// SetValue replaces the whole shadow value without touching hardware.
func (w *Word32) SetValue(v uint32) { w.value = v }

// Bit reports whether bit pos is set in the shadow.
func (w Word32) Bit(pos uint) bool {
	return w.value&(1<<pos) != 0
}

// SetBit sets or clears bit pos in the shadow.
func (w *Word32) SetBit(pos uint, on bool) {
	if on {
		w.value |= 1 << pos
	} else {
		w.value &^= 1 << pos
	}
}

// Field extracts a width-bit field starting at bit pos from the shadow.
func (w Word32) Field(pos, width uint) uint32 {
	mask := uint32(1)<<width - 1
	return (w.value >> pos) & mask
}

// SetField replaces a width-bit field starting at bit pos in the shadow.
func (w *Word32) SetField(pos, width uint, val uint32) {
	mask := uint32(1)<<width - 1
	w.value = (w.value &^ (mask << pos)) | ((val & mask) << pos)
}

// WriteOnlyClear writes mask directly to the register file without going
// through the shadow, for write-1-to-clear registers like bxCAN's TSR RQCP
// bits where reading-before-writing would clear bits the caller did not
// intend to touch.
func WriteOnlyClear(file RegisterFile, addr uint32, mask uint32) {
	file.Store(addr, mask)
}
