// Package memory implements the system memory a cartridge controller talks
// to: the flat address space plus the banked work RAM and video RAM of the
// color console.
package memory

import (
	"gbmbc/emu/log"
	"gbmbc/hw/hwio"
)

const (
	VBKAddr  = 0xFF4F // VRAM bank select (CGB)
	SVBKAddr = 0xFF70 // WRAM bank select (CGB)

	wramBankSize = 0x1000
	vramBankSize = 0x2000
)

// Memory owns every byte of the address space the cartridge does not own.
// Generic accesses (Read8/Write8) go to a flat 64KiB store; in color mode
// work RAM 0xD000-0xDFFF and video RAM are banked.
type Memory struct {
	flat *hwio.Mem
	wram [8]*hwio.Mem // bank 0 is unused, it lives in the flat store
	vram [2]*hwio.Mem

	VBK  hwio.Reg8
	SVBK hwio.Reg8

	cgb bool
}

func New() *Memory {
	m := &Memory{
		flat: hwio.NewMem("flat", 0x10000),
		VBK: hwio.Reg8{
			Name:   "VBK",
			RoMask: 0xFE,
			ReadCb: func(val uint8) uint8 { return val | 0xFE },
		},
		SVBK: hwio.Reg8{
			Name:   "SVBK",
			RoMask: 0xF8,
			ReadCb: func(val uint8) uint8 { return val | 0xF8 },
		},
	}
	for i := range m.wram {
		m.wram[i] = hwio.NewMem("wram", wramBankSize)
	}
	for i := range m.vram {
		m.vram[i] = hwio.NewMem("vram", vramBankSize)
	}
	m.VBK.WriteCb = func(old, val uint8) {
		log.ModMem.DebugZ("VRAM bank switch").Uint8("bank", val&1).End()
	}
	m.SVBK.WriteCb = func(old, val uint8) {
		log.ModMem.DebugZ("WRAM bank switch").Int("bank", m.wramBank()).End()
	}
	return m
}

// Reset clears all memory and bank registers, cgb selects color mode.
func (m *Memory) Reset(cgb bool) {
	m.cgb = cgb
	m.flat.Clear()
	for _, b := range m.wram {
		b.Clear()
	}
	for _, b := range m.vram {
		b.Clear()
	}
	m.VBK.Value = 0
	m.SVBK.Value = 0
}

// ColorMode reports whether the memory was last reset in color mode.
func (m *Memory) ColorMode() bool { return m.cgb }

// LoadROM0 copies the fixed ROM bank into 0x0000-0x3FFF.
func (m *Memory) LoadROM0(rom []byte) {
	copy(m.flat.Data[:0x4000], rom)
}

func (m *Memory) wramBank() int {
	bank := int(m.SVBK.Value & 0x07)
	if bank == 0 {
		bank = 1
	}
	return bank
}

func (m *Memory) vramBank() int {
	return int(m.VBK.Value & 0x01)
}

// Read8 reads from the flat store.
func (m *Memory) Read8(addr uint16) uint8 {
	if m.cgb {
		switch addr {
		case VBKAddr:
			return m.VBK.Read8(addr)
		case SVBKAddr:
			return m.SVBK.Read8(addr)
		}
	}
	return m.flat.Read8(addr)
}

// Write8 writes into the flat store. In color mode, writes to the bank
// select registers also switch banks.
func (m *Memory) Write8(addr uint16, val uint8) {
	if m.cgb {
		switch addr {
		case VBKAddr:
			m.VBK.Write8(addr, val)
		case SVBKAddr:
			m.SVBK.Write8(addr, val)
		}
	}
	m.flat.Write8(addr, val)
}

// ReadCGBVRAM reads video RAM from the selected bank, or from bank 0 if
// forceBank0 is set.
func (m *Memory) ReadCGBVRAM(addr uint16, forceBank0 bool) uint8 {
	bank := m.vramBank()
	if forceBank0 {
		bank = 0
	}
	return m.vram[bank].Read8(addr - 0x8000)
}

func (m *Memory) WriteCGBVRAM(addr uint16, val uint8) {
	m.vram[m.vramBank()].Write8(addr-0x8000, val)
}

// ReadCGBWRAM reads work RAM: 0xC000-0xCFFF is bank 0, 0xD000-0xDFFF is the
// bank selected by SVBK.
func (m *Memory) ReadCGBWRAM(addr uint16) uint8 {
	if addr < 0xD000 {
		return m.flat.Read8(addr)
	}
	return m.wram[m.wramBank()].Read8(addr - 0xD000)
}

func (m *Memory) WriteCGBWRAM(addr uint16, val uint8) {
	if addr < 0xD000 {
		m.flat.Write8(addr, val)
		return
	}
	m.wram[m.wramBank()].Write8(addr-0xD000, val)
}
