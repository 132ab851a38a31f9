package gbrom

import (
	"fmt"
	"strings"
)

const (
	headerStart = 0x100
	headerEnd   = 0x150
)

type CGBFlag uint8

const (
	CGBUnsupported CGBFlag = iota
	CGBSupported
	CGBOnly
)

func (f CGBFlag) String() string {
	switch f {
	case CGBSupported:
		return "supported"
	case CGBOnly:
		return "only"
	}
	return "no"
}

// Cartridge type byte (0x147).
type Type uint8

const (
	ROMOnly          Type = 0x00
	MBC1             Type = 0x01
	MBC1RAM          Type = 0x02
	MBC1RAMBatt      Type = 0x03
	MBC2             Type = 0x05
	MBC2Batt         Type = 0x06
	ROMRAM           Type = 0x08
	ROMRAMBatt       Type = 0x09
	MBC3TimerBatt    Type = 0x0F
	MBC3TimerRAMBatt Type = 0x10
	MBC3             Type = 0x11
	MBC3RAM          Type = 0x12
	MBC3RAMBatt      Type = 0x13
	MBC5             Type = 0x19
	MBC5RAM          Type = 0x1A
	MBC5RAMBatt      Type = 0x1B
)

var typeNames = map[Type]string{
	ROMOnly:          "ROM ONLY",
	MBC1:             "MBC1",
	MBC1RAM:          "MBC1+RAM",
	MBC1RAMBatt:      "MBC1+RAM+BATTERY",
	MBC2:             "MBC2",
	MBC2Batt:         "MBC2+BATTERY",
	ROMRAM:           "ROM+RAM",
	ROMRAMBatt:       "ROM+RAM+BATTERY",
	MBC3TimerBatt:    "MBC3+TIMER+BATTERY",
	MBC3TimerRAMBatt: "MBC3+TIMER+RAM+BATTERY",
	MBC3:             "MBC3",
	MBC3RAM:          "MBC3+RAM",
	MBC3RAMBatt:      "MBC3+RAM+BATTERY",
	MBC5:             "MBC5",
	MBC5RAM:          "MBC5+RAM",
	MBC5RAMBatt:      "MBC5+RAM+BATTERY",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(0x%02X)", uint8(t))
}

// HasBattery reports whether external RAM content survives power off.
func (t Type) HasBattery() bool {
	return strings.Contains(t.String(), "BATTERY")
}

// HasTimer reports whether the cartridge has a real time clock.
func (t Type) HasTimer() bool {
	return t == MBC3TimerBatt || t == MBC3TimerRAMBatt
}

// RAM size code (0x149) to bytes.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// header holds the cartridge header, 0x0100-0x014F.
type header struct {
	raw [headerEnd - headerStart]byte
}

func (hdr *header) decode(p []byte) error {
	if len(p) < headerEnd {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrTooSmall, len(p), headerEnd)
	}
	copy(hdr.raw[:], p[headerStart:headerEnd])
	return nil
}

// Title returns the game title, without padding.
func (hdr *header) Title() string {
	end := 0x44
	if hdr.CGB() != CGBUnsupported {
		end = 0x43
	}
	title := hdr.raw[0x34:end]
	if i := strings.IndexByte(string(title), 0); i >= 0 {
		title = title[:i]
	}
	return strings.TrimSpace(string(title))
}

func (hdr *header) CGB() CGBFlag {
	switch hdr.raw[0x43] {
	case 0x80:
		return CGBSupported
	case 0xC0:
		return CGBOnly
	}
	return CGBUnsupported
}

func (hdr *header) Type() Type {
	return Type(hdr.raw[0x47])
}

// ROMSize returns the declared ROM size in bytes.
func (hdr *header) ROMSize() int {
	code := hdr.raw[0x48]
	if code > 8 {
		return 0
	}
	return 0x8000 << code
}

// RAMSize returns the declared external RAM size in bytes.
func (hdr *header) RAMSize() int {
	return ramSizes[hdr.raw[0x49]]
}

func (hdr *header) computeChecksum() uint8 {
	var x uint8
	for _, b := range hdr.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x
}

// ChecksumOK reports whether the header checksum (0x14D) matches.
func (hdr *header) ChecksumOK() bool {
	return hdr.computeChecksum() == hdr.raw[0x4D]
}

// GlobalChecksum returns the big-endian checksum at 0x14E.
func (hdr *header) GlobalChecksum() uint16 {
	return uint16(hdr.raw[0x4E])<<8 | uint16(hdr.raw[0x4F])
}
