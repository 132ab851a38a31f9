package mappers

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gbmbc/gbrom"
	"gbmbc/hw/memory"
	"gbmbc/tests"
)

type fakeCart struct {
	rom     []byte
	ramSize int
	typ     gbrom.Type
}

func (c *fakeCart) ROMByte(off uint32) uint8 { return c.rom[off%uint32(len(c.rom))] }
func (c *fakeCart) RAMSize() int             { return c.ramSize }
func (c *fakeCart) Type() gbrom.Type         { return c.typ }

func newMBC3Cart() *fakeCart {
	return &fakeCart{
		rom:     tests.MBC3ROM.Build(),
		ramSize: 32 * 1024,
		typ:     gbrom.MBC3RAMBatt,
	}
}

// recBus records every access made to the system memory, then forwards it.
type recBus struct {
	*memory.Memory
	calls []string
}

func newRecBus() *recBus {
	return &recBus{Memory: memory.New()}
}

func (b *recBus) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

func (b *recBus) Read8(addr uint16) uint8 {
	b.record("Read8 %04X", addr)
	return b.Memory.Read8(addr)
}

func (b *recBus) Write8(addr uint16, val uint8) {
	b.record("Write8 %04X %02X", addr, val)
	b.Memory.Write8(addr, val)
}

func (b *recBus) ReadCGBVRAM(addr uint16, forceBank0 bool) uint8 {
	b.record("ReadCGBVRAM %04X %v", addr, forceBank0)
	return b.Memory.ReadCGBVRAM(addr, forceBank0)
}

func (b *recBus) WriteCGBVRAM(addr uint16, val uint8) {
	b.record("WriteCGBVRAM %04X %02X", addr, val)
	b.Memory.WriteCGBVRAM(addr, val)
}

func (b *recBus) ReadCGBWRAM(addr uint16) uint8 {
	b.record("ReadCGBWRAM %04X", addr)
	return b.Memory.ReadCGBWRAM(addr)
}

func (b *recBus) WriteCGBWRAM(addr uint16, val uint8) {
	b.record("WriteCGBWRAM %04X %02X", addr, val)
	b.Memory.WriteCGBWRAM(addr, val)
}

// take returns the recorded calls and forgets them.
func (b *recBus) take() []string {
	calls := b.calls
	b.calls = nil
	return calls
}

func (b *recBus) wantCalls(tb testing.TB, want ...string) {
	tb.Helper()

	if diff := cmp.Diff(want, b.take()); diff != "" {
		tb.Errorf("bus calls mismatch (-want +got):\n%s", diff)
	}
}

func newMBC3(tb testing.TB, cart *fakeCart) (*mbc3, *recBus) {
	tb.Helper()

	bus := newRecBus()
	bus.Reset(false)
	ctrl, err := Load(cart, bus)
	if err != nil {
		tb.Fatal(err)
	}
	bus.take()
	return ctrl.(*mbc3), bus
}

func checkedRead8(tb testing.TB, ctrl Controller, addr uint16, want uint8) {
	tb.Helper()

	if v := ctrl.Read8(addr); v != want {
		tb.Errorf("%s[0x%04X] should be 0x%02X, got 0x%02X", ctrl.Name(), addr, want, v)
	}
}
