package mappers

import (
	"gbmbc/hw/hwio"
)

// base holds what all controllers share: their collaborators, their bus
// tables and the handling of the console regions every controller
// intercepts (echo RAM, CGB banks, the unusable area).
type base struct {
	desc MapperDesc

	cart Cartridge
	bus  Bus
	cgb  bool

	rd *hwio.Table
	wr *hwio.Table
}

func newbase(desc MapperDesc, cart Cartridge, bus Bus) *base {
	b := &base{
		desc: desc,
		cart: cart,
		bus:  bus,
		rd:   hwio.NewTable(desc.Name + " read"),
		wr:   hwio.NewTable(desc.Name + " write"),
	}
	b.rd.Unmapped = bus
	b.wr.Unmapped = bus
	return b
}

func (b *base) Name() string { return b.desc.Name }

func (b *base) Read8(addr uint16) uint8 {
	return b.rd.Read8(addr)
}

func (b *base) Write8(addr uint16, val uint8) {
	b.wr.Write8(addr, val)
}

// init clears both bus tables, ready for the controller to map its ranges.
func (b *base) init(cgb bool) {
	b.cgb = cgb
	b.rd.Reset()
	b.wr.Reset()
}

func (b *base) mapVRAM() {
	if !b.cgb {
		return
	}
	b.rd.MapDevice(0x8000, 0x9FFF, &hwio.Device{
		Name:   "VRAM",
		ReadCb: func(addr uint16) uint8 { return b.bus.ReadCGBVRAM(addr, false) },
	})
	b.wr.MapDevice(0x8000, 0x9FFF, &hwio.Device{
		Name:    "VRAM",
		WriteCb: b.bus.WriteCGBVRAM,
	})
}

func (b *base) mapSystem() {
	if b.cgb {
		b.rd.MapDevice(0xD000, 0xDFFF, &hwio.Device{Name: "WRAMX", ReadCb: b.bus.ReadCGBWRAM})
	}
	b.wr.MapDevice(0xC000, 0xDDFF, &hwio.Device{Name: "WRAM", WriteCb: b.writeWRAM})
	if b.cgb {
		b.wr.MapDevice(0xDE00, 0xDFFF, &hwio.Device{Name: "WRAMX", WriteCb: b.bus.WriteCGBWRAM})
	}
	b.wr.MapDevice(0xE000, 0xFDFF, &hwio.Device{Name: "ECHO", WriteCb: b.writeEcho})

	// Writes to the unusable area are accepted in both modes, only reads
	// differ.
	b.rd.MapDevice(0xFEA0, 0xFEFF, &hwio.Device{Name: "UNUSABLE", ReadCb: b.readUnusable})
	b.wr.MapDevice(0xFEA0, 0xFEFF, &hwio.Device{Name: "UNUSABLE", WriteCb: b.bus.Write8})
}

// writeWRAM handles 0xC000-0xDDFF, keeping the echo 0x2000 bytes higher in
// sync.
func (b *base) writeWRAM(addr uint16, val uint8) {
	if b.cgb && addr >= 0xD000 {
		b.bus.WriteCGBWRAM(addr, val)
		b.bus.Write8(addr+0x2000, val)
		return
	}
	b.bus.Write8(addr+0x2000, val)
	b.bus.Write8(addr, val)
}

// writeEcho handles 0xE000-0xFDFF, the mirror of 0xC000-0xDDFF.
func (b *base) writeEcho(addr uint16, val uint8) {
	if b.cgb && addr >= 0xF000 {
		b.bus.WriteCGBWRAM(addr-0x2000, val)
		b.bus.Write8(addr, val)
		return
	}
	b.bus.Write8(addr-0x2000, val)
	b.bus.Write8(addr, val)
}

func (b *base) readUnusable(addr uint16) uint8 {
	if b.cgb {
		return b.bus.Read8(addr)
	}
	return openBus(addr)
}

// openBus returns what the DMG reads in 0xFEA0-0xFEFF: nothing drives the
// bus and the value alternates with bit 2 of the address, shifted by one
// every 16 bytes.
func openBus(addr uint16) uint8 {
	if ((addr+((addr>>4)-0x0FEA))>>2)&1 != 0 {
		return 0x00
	}
	return 0xFF
}
