package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gbmbc/emu/log"
)

// SavePath returns the battery save file for the session's cartridge, in dir.
func (s *Session) SavePath(dir string) string {
	title := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, strings.TrimSpace(s.Rom.Title()))
	if title == "" {
		title = "untitled"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%016x.sav", title, s.Rom.Hash()))
}

// HasBattery reports whether the cartridge external RAM survives power off.
func (s *Session) HasBattery() bool {
	return s.Rom.Type().HasBattery() && s.Rom.RAMSize() > 0
}

// LoadSave loads the battery save from dir, if any. Files smaller than the
// cartridge RAM are zero-padded, larger ones truncated.
func (s *Session) LoadSave(dir string) error {
	if !s.HasBattery() {
		return nil
	}

	path := s.SavePath(dir)
	buf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.ModEmu.DebugZ("no battery save").String("path", path).End()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load battery save: %w", err)
	}

	ram := make([]byte, s.saveSize())
	if len(buf) != len(ram) {
		log.ModEmu.WarnZ("battery save size mismatch").
			String("path", path).
			Int("size", len(buf)).
			Int("want", len(ram)).
			End()
	}
	copy(ram, buf)
	s.Cart.LoadRAM(ram)

	log.ModEmu.InfoZ("loaded battery save").String("path", path).End()
	return nil
}

// WriteSave writes the cartridge RAM into the battery save file in dir.
func (s *Session) WriteSave(dir string) error {
	if !s.HasBattery() {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory: %w", err)
	}

	ram := s.Cart.SaveRAM()
	ram = ram[:s.saveSize()]

	path := s.SavePath(dir)
	if err := os.WriteFile(path, ram, 0644); err != nil {
		return fmt.Errorf("failed to write battery save: %w", err)
	}
	log.ModEmu.InfoZ("wrote battery save").String("path", path).End()
	return nil
}

func (s *Session) saveSize() int {
	return min(s.Rom.RAMSize(), len(s.Cart.SaveRAM()))
}
