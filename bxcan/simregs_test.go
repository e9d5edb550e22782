package bxcan

// simRegs is a map-backed regio.RegisterFile used across this package's
// tests to stand in for the real CAN register block.
type simRegs struct {
	words map[uint32]uint32
}

func newSimRegs() *simRegs {
	return &simRegs{words: make(map[uint32]uint32)}
}

func (s *simRegs) Load(addr uint32) uint32 { return s.words[addr] }

// Store writes value to addr. TSR is modeled as write-1-to-clear, like the
// real register: each bit written as 1 is cleared and every other bit keeps
// its value.
func (s *simRegs) Store(addr uint32, value uint32) {
	if addr == regTSR {
		s.words[addr] &^= value
		return
	}
	s.words[addr] = value
}

// setBit/clearBit let tests poke hardware-side status bits (e.g. simulating
// a TSR completion) without going through the driver's own commit path.
func (s *simRegs) setBit(addr uint32, pos uint) {
	s.words[addr] |= 1 << pos
}

func (s *simRegs) clearBit(addr uint32, pos uint) {
	s.words[addr] &^= 1 << pos
}

func (s *simRegs) bit(addr uint32, pos uint) bool {
	return s.words[addr]&(1<<pos) != 0
}
