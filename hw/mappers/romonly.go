package mappers

import (
	"fmt"

	"gbmbc/hw/hwio"
	"gbmbc/hw/snapshot"
)

var ROMOnly = MapperDesc{
	Name: "ROM",
	Load: loadROMOnly,
}

// romOnly is a 32KiB cartridge without controller. Writes to ROM are
// dropped and 0xA000-0xBFFF belongs to the system memory.
type romOnly struct {
	*base
}

func loadROMOnly(b *base) Controller {
	m := &romOnly{base: b}
	m.Reset(false)
	return m
}

func (m *romOnly) Reset(cgb bool) {
	m.init(cgb)

	m.rd.MapDevice(0x4000, 0x7FFF, &hwio.Device{
		Name:   "ROM1",
		ReadCb: func(addr uint16) uint8 { return m.cart.ROMByte(uint32(addr)) },
	})
	m.wr.MapDevice(0x0000, 0x7FFF, &hwio.Device{Name: "ROM", WriteCb: m.writeROM})
	m.mapVRAM()
	m.mapSystem()
}

func (m *romOnly) writeROM(addr uint16, val uint8) {
	modMapper.DebugZ("write to ROM").
		Hex16("addr", addr).
		Hex8("val", val).
		End()
}

func (m *romOnly) SaveRAM() []byte    { return nil }
func (m *romOnly) LoadRAM(data []byte) {}

func (m *romOnly) SaveState(s *snapshot.Cart) {
	*s = snapshot.Cart{
		Version:   snapshot.Version,
		Mapper:    m.Name(),
		ColorMode: m.cgb,
	}
}

func (m *romOnly) LoadState(s *snapshot.Cart) error {
	if s.Mapper != m.Name() {
		return fmt.Errorf("state is for mapper %q, not %q", s.Mapper, m.Name())
	}
	m.Reset(s.ColorMode)
	return nil
}
