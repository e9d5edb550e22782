package bxcan

// Frame is an immutable CAN message with an 8-byte payload. Equality is
// bit-exact across every field (Equal).
type Frame struct {
	ID   uint32 // 11-bit standard, or 29-bit extended when IDE is set
	IDE  bool   // extended (29-bit) identifier
	RTR  bool   // remote-request frame
	DLC  uint8  // data length code, 0..8
	Data [8]byte
}

// StandardFrame builds a non-extended, non-remote frame from a standard
// 11-bit identifier and up to 8 data bytes. Bytes beyond the eighth are
// dropped: DLC is clamped to 8 and only the first 8 bytes are copied into
// Data.
func StandardFrame(id uint32, data []byte) Frame {
	f := Frame{ID: id & 0x7FF, DLC: uint8(len(data))}
	if f.DLC > 8 {
		f.DLC = 8
	}
	copy(f.Data[:], data)
	return f
}

// ExtendedFrame builds an extended, non-remote frame from a 29-bit
// identifier and up to 8 data bytes.
func ExtendedFrame(id uint32, data []byte) Frame {
	f := Frame{ID: id & 0x1FFFFFFF, IDE: true, DLC: uint8(len(data))}
	if f.DLC > 8 {
		f.DLC = 8
	}
	copy(f.Data[:], data)
	return f
}

// Equal reports whether f and g are identical across all fields.
func (f Frame) Equal(g Frame) bool {
	return f.ID == g.ID && f.IDE == g.IDE && f.RTR == g.RTR && f.DLC == g.DLC && f.Data == g.Data
}

// U64 views the payload as a single little-endian uint64.
func (f Frame) U64() uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(f.Data[i])
	}
	return v
}

// U32 views the payload as two little-endian uint32 words.
func (f Frame) U32() [2]uint32 {
	return [2]uint32{
		uint32(f.Data[0]) | uint32(f.Data[1])<<8 | uint32(f.Data[2])<<16 | uint32(f.Data[3])<<24,
		uint32(f.Data[4]) | uint32(f.Data[5])<<8 | uint32(f.Data[6])<<16 | uint32(f.Data[7])<<24,
	}
}

// U16 views the payload as four little-endian uint16 words.
func (f Frame) U16() [4]uint16 {
	var out [4]uint16
	for i := range out {
		out[i] = uint16(f.Data[i*2]) | uint16(f.Data[i*2+1])<<8
	}
	return out
}

// U8 views the payload as eight bytes.
func (f Frame) U8() [8]byte {
	return f.Data
}
