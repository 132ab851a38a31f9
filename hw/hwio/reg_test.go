package hwio

import "testing"

func TestReg8(t *testing.T) {
	r := Reg8{Value: 0x11, RoMask: 0xF0}

	if got := r.Read8(0); got != 0x11 {
		t.Errorf("invalid read: %x", got)
	}
	if got := r.Read8(9999); got != 0x11 {
		t.Errorf("invalid read with offset: %x", got)
	}

	r.Write8(0, 0x77)
	if r.Value != 0x17 {
		t.Errorf("writemask not respected: %x", r.Value)
	}
	r.Write8(9999, 0x88)
	if r.Value != 0x18 {
		t.Errorf("writemask with offset not respected: %x", r.Value)
	}
}

func TestReg8Callbacks(t *testing.T) {
	var gotOld, gotNew uint8
	r := Reg8{
		Name:    "svbk",
		Value:   0x01,
		WriteCb: func(old, val uint8) { gotOld, gotNew = old, val },
		ReadCb:  func(val uint8) uint8 { return val | 0xF8 },
	}

	r.Write8(0, 0x05)
	if gotOld != 0x01 || gotNew != 0x05 {
		t.Errorf("WriteCb(old=%02x, val=%02x), want (01, 05)", gotOld, gotNew)
	}
	if got := r.Read8(0); got != 0xFD {
		t.Errorf("Read8() = %02x, want fd", got)
	}
	if s := r.String(); s != "svbk{05,r!,w!}" {
		t.Errorf("String() = %q", s)
	}
}

func TestReg8Flags(t *testing.T) {
	wo := Reg8{Value: 0x42, Flags: WriteOnlyFlag}
	if got := wo.Read8(0); got != 0 {
		t.Errorf("read from writeonly reg = %x, want 0", got)
	}

	ro := Reg8{Value: 0x42, Flags: ReadOnlyFlag}
	ro.Write8(0, 0x00)
	if ro.Value != 0x42 {
		t.Errorf("readonly reg modified: %x", ro.Value)
	}
}
