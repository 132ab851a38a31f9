// Package gbrom reads Game Boy and Game Boy Color cartridge images, raw or
// compressed, and decodes their header.
package gbrom

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash"
)

var (
	ErrTooSmall     = errors.New("rom image too small")
	ErrEmptyArchive = errors.New("archive contains no file")
)

type Rom struct {
	header
	Data []byte // whole cartridge image, header included
}

// Open loads a rom from file. Zip, gzip and 7z archives are decompressed,
// using the first file they contain.
func Open(path string) (*Rom, error) {
	buf, err := readFile(path)
	if err != nil {
		return nil, err
	}

	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom interface
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.decode(buf); err != nil {
		return 0, fmt.Errorf("failed to decode header: %w", err)
	}
	if !rom.ChecksumOK() {
		modROM.WarnZ("header checksum mismatch").
			String("title", rom.Title()).
			Hex8("want", rom.raw[0x4D]).
			Hex8("got", rom.computeChecksum()).
			End()
	}
	if len(buf) < rom.ROMSize() {
		modROM.WarnZ("image smaller than declared rom size").
			Int("size", len(buf)).
			Int("declared", rom.ROMSize()).
			End()
	}

	rom.Data = buf
	return int64(len(buf)), nil
}

// ROMByte returns the byte at the physical offset off. Offsets past the end
// of the image wrap around, like address lines that aren't connected.
func (rom *Rom) ROMByte(off uint32) uint8 {
	if len(rom.Data) == 0 {
		return 0xFF
	}
	return rom.Data[off%uint32(len(rom.Data))]
}

// NumBanks returns the number of 16KiB banks in the image.
func (rom *Rom) NumBanks() int {
	return (len(rom.Data) + 0x3FFF) / 0x4000
}

// Hash returns the xxhash of the whole image.
func (rom *Rom) Hash() uint64 {
	return xxhash.Sum64(rom.Data)
}
