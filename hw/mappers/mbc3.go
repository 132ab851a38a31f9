package mappers

import (
	"fmt"

	"gbmbc/hw/hwio"
	"gbmbc/hw/snapshot"
)

var MBC3 = MapperDesc{
	Name: "MBC3",
	Load: loadMBC3,
}

const (
	mbc3RAMBanks    = 4
	mbc3RAMBankSize = 0x2000
	romBankSize     = 0x4000
)

// mbc3 supports up to 128 ROM banks, 4 RAM banks of 8KiB and a real time
// clock whose registers are recognized but not emulated.
type mbc3 struct {
	*base

	ram [mbc3RAMBanks * mbc3RAMBankSize]byte

	romBank    uint32 // 7 bits
	ramBank    uint32 // 2 bits
	ramEnabled bool

	rtc rtcLatch
}

func loadMBC3(b *base) Controller {
	m := &mbc3{base: b}
	m.Reset(false)
	return m
}

// Reset puts the controller in its power up state. Note the ROM bank
// register is 0, a value no write can produce: until the game selects a
// bank, 0x4000-0x7FFF mirrors bank 0.
func (m *mbc3) Reset(cgb bool) {
	m.romBank = 0
	m.ramBank = 0
	m.ramEnabled = false
	clear(m.ram[:])
	m.rtc.reset()

	m.init(cgb)

	m.rd.MapDevice(0x4000, 0x7FFF, &hwio.Device{Name: "ROMX", ReadCb: m.readROMX})
	m.wr.MapDevice(0x0000, 0x1FFF, &hwio.Device{Name: "RAMG", WriteCb: m.writeRAMG})
	m.wr.MapDevice(0x2000, 0x3FFF, &hwio.Device{Name: "ROMB", WriteCb: m.writeROMB})
	m.wr.MapDevice(0x4000, 0x5FFF, &hwio.Device{Name: "RAMB", WriteCb: m.writeRAMB})
	m.wr.MapDevice(0x6000, 0x7FFF, &hwio.Device{Name: "RTCLATCH", WriteCb: m.writeLatch})
	m.mapVRAM()
	m.rd.MapDevice(0xA000, 0xBFFF, &hwio.Device{Name: "SRAM", ReadCb: m.readRAM})
	m.wr.MapDevice(0xA000, 0xBFFF, &hwio.Device{Name: "SRAM", WriteCb: m.writeRAM})
	m.mapSystem()

	modMapper.DebugZ("reset").
		String("mapper", m.Name()).
		Bool("cgb", cgb).
		End()
}

func (m *mbc3) readROMX(addr uint16) uint8 {
	return m.cart.ROMByte(uint32(addr-0x4000) + romBankSize*m.romBank)
}

func (m *mbc3) ramOffset(addr uint16) uint32 {
	return uint32(addr-0xA000) + mbc3RAMBankSize*m.ramBank
}

func (m *mbc3) readRAM(addr uint16) uint8 {
	if !m.ramEnabled {
		modMapper.DebugZ("read from disabled RAM").
			Hex16("addr", addr).
			End()
		return 0x00
	}
	return m.ram[m.ramOffset(addr)]
}

func (m *mbc3) writeRAM(addr uint16, val uint8) {
	if !m.ramEnabled {
		modMapper.DebugZ("write to disabled RAM").
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	m.ram[m.ramOffset(addr)] = val
}

// 0x0000-0x1FFF: RAM and timer enable.
func (m *mbc3) writeRAMG(addr uint16, val uint8) {
	if m.cart.RAMSize() > 0 {
		m.ramEnabled = val&0x0F == 0x0A
	}
}

// 0x2000-0x3FFF: ROM bank number.
func (m *mbc3) writeROMB(addr uint16, val uint8) {
	m.romBank = uint32(val & 0x7F)
	if m.romBank == 0 {
		m.romBank = 1
	}
}

// 0x4000-0x5FFF: RAM bank number or RTC register select.
func (m *mbc3) writeRAMB(addr uint16, val uint8) {
	if isRTCReg(val) {
		m.rtc.selectReg(val)
		return
	}
	m.rtc.selectReg(0)
	m.ramBank = uint32(val & 0x03)
}

// 0x6000-0x7FFF: latch clock data.
func (m *mbc3) writeLatch(addr uint16, val uint8) {
	m.rtc.latch(val)
}

func (m *mbc3) SaveRAM() []byte {
	buf := make([]byte, len(m.ram))
	copy(buf, m.ram[:])
	return buf
}

// LoadRAM overwrites external RAM with data. Short data leaves the rest of
// the RAM untouched, extra data is ignored.
func (m *mbc3) LoadRAM(data []byte) {
	copy(m.ram[:], data)
}

func (m *mbc3) SaveState(s *snapshot.Cart) {
	*s = snapshot.Cart{
		Version:    snapshot.Version,
		Mapper:     m.Name(),
		ColorMode:  m.cgb,
		ROMBank:    m.romBank,
		RAMBank:    m.ramBank,
		RAMEnabled: m.ramEnabled,
		RTC: snapshot.RTC{
			Register: m.rtc.reg,
			Latched:  m.rtc.state == rtcLatched,
			Prev:     m.rtc.prev,
		},
		RAM: m.SaveRAM(),
	}
}

func (m *mbc3) LoadState(s *snapshot.Cart) error {
	if s.Mapper != m.Name() {
		return fmt.Errorf("state is for mapper %q, not %q", s.Mapper, m.Name())
	}
	if s.ROMBank > 0x7F || s.RAMBank > 0x03 {
		return fmt.Errorf("invalid bank registers: rom=%d ram=%d", s.ROMBank, s.RAMBank)
	}
	if len(s.RAM) != len(m.ram) {
		return fmt.Errorf("invalid RAM size %d, want %d", len(s.RAM), len(m.ram))
	}

	m.Reset(s.ColorMode)
	m.romBank = s.ROMBank
	m.ramBank = s.RAMBank
	m.ramEnabled = s.RAMEnabled
	m.rtc.reg = s.RTC.Register
	m.rtc.prev = s.RTC.Prev
	if s.RTC.Latched {
		m.rtc.state = rtcLatched
	}
	copy(m.ram[:], s.RAM)
	return nil
}
