package emu

import (
	"fmt"

	"gbmbc/emu/log"
	"gbmbc/gbrom"
	"gbmbc/hw/mappers"
	"gbmbc/hw/memory"
	"gbmbc/hw/snapshot"
)

// Session is a cartridge plugged in a console: the controller sits between
// the CPU side accesses and the system memory.
type Session struct {
	Rom  *gbrom.Rom
	Mem  *memory.Memory
	Cart mappers.Controller

	cgb bool
}

// PowerUp plugs rom in a console of the given model and resets everything.
func PowerUp(rom *gbrom.Rom, model Model) (*Session, error) {
	mem := memory.New()
	cart, err := mappers.Load(rom, mem)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Rom:  rom,
		Mem:  mem,
		Cart: cart,
		cgb:  model.ColorMode(rom),
	}
	s.Reset()

	log.ModEmu.InfoZ("power up").
		String("title", rom.Title()).
		String("mapper", cart.Name()).
		Bool("cgb", s.cgb).
		End()
	return s, nil
}

// Reset resets the system memory then the controller, so that the
// controller's mapping is built against a clean bus.
func (s *Session) Reset() {
	s.Mem.Reset(s.cgb)
	s.Mem.LoadROM0(s.Rom.Data)
	s.Cart.Reset(s.cgb)
}

func (s *Session) ColorMode() bool { return s.cgb }

func (s *Session) Read8(addr uint16) uint8 {
	return s.Cart.Read8(addr)
}

func (s *Session) Write8(addr uint16, val uint8) {
	s.Cart.Write8(addr, val)
}

// SaveSnapshot serializes the controller state.
func (s *Session) SaveSnapshot() []byte {
	var state snapshot.Cart
	s.Cart.SaveState(&state)
	return state.Marshal()
}

// LoadSnapshot restores a state produced by SaveSnapshot. The snapshot
// color mode must match the session's one.
func (s *Session) LoadSnapshot(buf []byte) error {
	var state snapshot.Cart
	if err := state.Unmarshal(buf); err != nil {
		return err
	}
	if state.ColorMode != s.cgb {
		return fmt.Errorf("snapshot color mode %v doesn't match session (%v)", state.ColorMode, s.cgb)
	}
	return s.Cart.LoadState(&state)
}
