package bxcan

import "testing"

func TestStandardFrameClampsDLC(t *testing.T) {
	f := StandardFrame(0x123, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if f.DLC != 8 {
		t.Fatalf("DLC = %d, want 8", f.DLC)
	}
	if f.IDE {
		t.Fatalf("StandardFrame set IDE")
	}
	if f.ID != 0x123 {
		t.Fatalf("ID = %#x, want 0x123", f.ID)
	}
}

func TestExtendedFrameMasksID(t *testing.T) {
	f := ExtendedFrame(0x3FFFFFFF, []byte{9})
	if f.ID != 0x1FFFFFFF {
		t.Fatalf("ID = %#x, want masked to 29 bits", f.ID)
	}
	if !f.IDE {
		t.Fatalf("ExtendedFrame did not set IDE")
	}
	if f.DLC != 1 || f.Data[0] != 9 {
		t.Fatalf("unexpected data/DLC: %+v", f)
	}
}

func TestFrameEqual(t *testing.T) {
	a := StandardFrame(1, []byte{1, 2})
	b := StandardFrame(1, []byte{1, 2})
	c := StandardFrame(2, []byte{1, 2})
	if !a.Equal(b) {
		t.Fatalf("expected a == b")
	}
	if a.Equal(c) {
		t.Fatalf("expected a != c")
	}
}

func TestFrameViews(t *testing.T) {
	f := StandardFrame(1, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if got := f.U64(); got != 0x0807060504030201 {
		t.Fatalf("U64 = %#x", got)
	}
	u32 := f.U32()
	if u32[0] != 0x04030201 || u32[1] != 0x08070605 {
		t.Fatalf("U32 = %#x", u32)
	}
	u16 := f.U16()
	if u16[0] != 0x0201 || u16[3] != 0x0807 {
		t.Fatalf("U16 = %#x", u16)
	}
	if f.U8() != f.Data {
		t.Fatalf("U8 mismatch")
	}
}
