// Package tests provides synthetic cartridge images and helpers to write them
// to disk, for use in tests.
package tests

// ROM describes a synthetic cartridge image.
type ROM struct {
	Title   string
	Type    uint8 // cartridge type byte (0x147)
	ROMCode uint8 // rom size code (0x148), image holds 2<<ROMCode banks
	RAMCode uint8 // ram size code (0x149)
	CGB     uint8 // CGB flag (0x143)
}

// MBC3ROM is a 128 banks MBC3+RAM+BATTERY cartridge with 32KiB of RAM.
var MBC3ROM = ROM{
	Title:   "MBC3TEST",
	Type:    0x13,
	ROMCode: 6,
	RAMCode: 3,
}

// Build returns the cartridge image. Every byte outside of the header is
// derived from its offset so that each bank has distinct content:
//
//	data[off] = bank ^ low byte of off
func (r ROM) Build() []byte {
	nbanks := 2 << r.ROMCode
	data := make([]byte, nbanks*0x4000)
	for off := range data {
		data[off] = uint8(off>>14) ^ uint8(off)
	}

	hdr := data[0x100:0x150]
	clear(hdr)
	hdr[0x00] = 0x00 // nop
	hdr[0x01] = 0xC3 // jp $0150
	hdr[0x02] = 0x50
	hdr[0x03] = 0x01
	copy(hdr[0x34:0x43], r.Title)
	hdr[0x43] = r.CGB
	hdr[0x47] = r.Type
	hdr[0x48] = r.ROMCode
	hdr[0x49] = r.RAMCode

	var x uint8
	for _, b := range hdr[0x34:0x4D] {
		x = x - b - 1
	}
	hdr[0x4D] = x
	return data
}
