package regio

import "testing"

type mapFile struct {
	words map[uint32]uint32
}

func newMapFile() *mapFile { return &mapFile{words: make(map[uint32]uint32)} }

func (m *mapFile) Load(addr uint32) uint32         { return m.words[addr] }
func (m *mapFile) Store(addr uint32, value uint32) { m.words[addr] = value }

func TestWord32FetchCommitRoundTrip(t *testing.T) {
	file := newMapFile()
	file.words[0x10] = 0xCAFEBABE

	w := At(file, 0x10)
	w.Fetch()
	if w.Value() != 0xCAFEBABE {
		t.Fatalf("Value = %#x, want 0xCAFEBABE", w.Value())
	}

	w.SetBit(2, false)
	w.Commit()
	if file.words[0x10] != 0xCAFEBABA {
		t.Fatalf("Store after Commit = %#x, want 0xCAFEBABA", file.words[0x10])
	}
}

func TestWord32Field(t *testing.T) {
	w := At(newMapFile(), 0)
	w.SetField(4, 4, 0xA)
	if got := w.Field(4, 4); got != 0xA {
		t.Fatalf("Field = %#x, want 0xA", got)
	}
	if w.Value() != 0xA0 {
		t.Fatalf("Value = %#x, want 0xA0", w.Value())
	}
}

func TestWriteOnlyClearDoesNotReadBeforeWrite(t *testing.T) {
	file := newMapFile()
	file.words[0x20] = 0xFF
	WriteOnlyClear(file, 0x20, 0x01)
	if file.words[0x20] != 0x01 {
		t.Fatalf("WriteOnlyClear wrote %#x, want the mask written verbatim (0x01)", file.words[0x20])
	}
}
