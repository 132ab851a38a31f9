package hwio

import (
	"errors"
	"fmt"

	"gbmbc/emu/log"
)

// log unmapped accesses (verbose: games routinely touch unmapped areas)
const logUnmapped = false

var ErrOverlappingRange = errors.New("overlapping range")

type BankIO8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

type busRange struct {
	begin, end uint16 // inclusive
	io         BankIO8
}

func (r busRange) contains(addr uint16) bool {
	return addr >= r.begin && addr <= r.end
}

// Table dispatches 8-bit accesses to the devices mapped on address ranges.
// Ranges are searched in mapping order, the first one containing the address
// wins. Accesses no range claims go to Unmapped, if set.
type Table struct {
	Name     string
	Unmapped BankIO8

	ranges []busRange
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

// Reset removes all mapped ranges. Unmapped is kept.
func (t *Table) Reset() {
	t.ranges = t.ranges[:0]
}

// Map maps io on the inclusive range [begin, end].
func (t *Table) Map(begin, end uint16, io BankIO8) error {
	if begin > end {
		return fmt.Errorf("%s: invalid range [%04x-%04x]", t.Name, begin, end)
	}
	for _, r := range t.ranges {
		if begin <= r.end && end >= r.begin {
			return fmt.Errorf("%s: [%04x-%04x] overlaps [%04x-%04x]: %w",
				t.Name, begin, end, r.begin, r.end, ErrOverlappingRange)
		}
	}

	log.ModHwIo.DebugZ("mapping range").
		String("bus", t.Name).
		Hex16("begin", begin).
		Hex16("end", end).
		End()

	t.ranges = append(t.ranges, busRange{begin: begin, end: end, io: io})
	return nil
}

// MustMap is like Map but panics on error. Meant for static bus layouts.
func (t *Table) MustMap(begin, end uint16, io BankIO8) {
	if err := t.Map(begin, end, io); err != nil {
		panic(err)
	}
}

// MapDevice maps a Device, sizing it after the range.
func (t *Table) MapDevice(begin, end uint16, d *Device) {
	d.Size = int(end) - int(begin) + 1
	t.MustMap(begin, end, d)
}

// Unmap removes all ranges entirely contained in [begin, end].
func (t *Table) Unmap(begin, end uint16) {
	kept := t.ranges[:0]
	for _, r := range t.ranges {
		if r.begin >= begin && r.end <= end {
			continue
		}
		kept = append(kept, r)
	}
	t.ranges = kept
}

// Lookup returns the device handling addr, or nil if none does (Unmapped is
// not considered).
func (t *Table) Lookup(addr uint16) BankIO8 {
	for i := range t.ranges {
		if t.ranges[i].contains(addr) {
			return t.ranges[i].io
		}
	}
	return nil
}

func (t *Table) Read8(addr uint16) uint8 {
	if io := t.Lookup(addr); io != nil {
		return io.Read8(addr)
	}
	if t.Unmapped != nil {
		return t.Unmapped.Read8(addr)
	}
	if logUnmapped {
		log.ModHwIo.ErrorZ("unmapped Read8").
			String("name", t.Name).
			Hex16("addr", addr).
			End()
	}
	return 0
}

func (t *Table) Write8(addr uint16, val uint8) {
	if io := t.Lookup(addr); io != nil {
		io.Write8(addr, val)
		return
	}
	if t.Unmapped != nil {
		t.Unmapped.Write8(addr, val)
		return
	}
	if logUnmapped {
		log.ModHwIo.ErrorZ("unmapped Write8").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
	}
}
