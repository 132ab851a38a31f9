package mappers

import (
	"errors"
	"fmt"

	"gbmbc/emu/log"
	"gbmbc/gbrom"
	"gbmbc/hw/hwio"
	"gbmbc/hw/snapshot"
)

var modMapper = log.NewModule("mapper")

var ErrUnsupportedType = errors.New("unsupported cartridge type")

// Cartridge is the cartridge description a controller is bound to: the ROM
// image and what the header declares.
type Cartridge interface {
	// ROMByte returns the ROM byte at physical offset off. Bounds are the
	// implementation's business.
	ROMByte(off uint32) uint8
	RAMSize() int
	Type() gbrom.Type
}

// Bus is the system memory a controller forwards what it doesn't own to.
// Read8/Write8 access the flat store, the CGB accessors are bank aware.
type Bus interface {
	hwio.BankIO8

	ReadCGBVRAM(addr uint16, forceBank0 bool) uint8
	WriteCGBVRAM(addr uint16, val uint8)
	ReadCGBWRAM(addr uint16) uint8
	WriteCGBWRAM(addr uint16, val uint8)
}

// Controller is a cartridge memory bank controller. It sees every CPU access
// and either services it or forwards it to the Bus.
type Controller interface {
	hwio.BankIO8

	Name() string

	// Reset reinitializes registers and zero-fills external RAM. cgb
	// enables the color console address behaviors.
	Reset(cgb bool)

	// SaveRAM returns a copy of the external RAM, LoadRAM overwrites it.
	SaveRAM() []byte
	LoadRAM(data []byte)

	SaveState(s *snapshot.Cart)
	LoadState(s *snapshot.Cart) error
}

type MapperDesc struct {
	Name string
	Load func(*base) Controller
}

var All = map[gbrom.Type]MapperDesc{
	gbrom.ROMOnly:          ROMOnly,
	gbrom.MBC3TimerBatt:    MBC3,
	gbrom.MBC3TimerRAMBatt: MBC3,
	gbrom.MBC3:             MBC3,
	gbrom.MBC3RAM:          MBC3,
	gbrom.MBC3RAMBatt:      MBC3,
}

// Load returns the controller matching the cartridge type, reset in DMG mode.
func Load(cart Cartridge, bus Bus) (Controller, error) {
	desc, ok := All[cart.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cart.Type())
	}

	modMapper.DebugZ("loading mapper").
		String("mapper", desc.Name).
		String("type", cart.Type().String()).
		Int("ram", cart.RAMSize()).
		End()

	return desc.Load(newbase(desc, cart, bus)), nil
}
