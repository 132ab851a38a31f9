package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"gbmbc/emu/log"
	"gbmbc/gbrom"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Saves   SavesConfig   `toml:"saves"`
}

type GeneralConfig struct {
	Model Model `toml:"model"`
}

type SavesConfig struct {
	Dir      string `toml:"dir"`
	Autosave bool   `toml:"autosave"`
}

// Model selects the console the cartridge is plugged in.
type Model string

const (
	ModelAuto Model = "auto" // color console if the cartridge supports it
	ModelDMG  Model = "dmg"
	ModelCGB  Model = "cgb"
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Model) UnmarshalText(text []byte) error {
	switch mod := Model(text); mod {
	case ModelAuto, ModelDMG, ModelCGB:
		*m = mod
		return nil
	case "":
		*m = ModelAuto
		return nil
	}
	return fmt.Errorf("invalid model %q (want auto, dmg or cgb)", text)
}

// ColorMode reports whether rom runs in color mode on this model.
func (m Model) ColorMode(rom *gbrom.Rom) bool {
	switch m {
	case ModelDMG:
		return false
	case ModelCGB:
		return true
	}
	return rom.CGB() != gbrom.CGBUnsupported
}

var ConfigDir = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("gbmbc")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Model: ModelAuto},
		Saves:   SavesConfig{Autosave: true},
	}
}

// LoadConfigOrDefault loads the configuration from path, or from the gbmbc
// config directory if path is empty. A missing or invalid file gives the
// default configuration.
func LoadConfigOrDefault(path string) Config {
	if path == "" {
		path = filepath.Join(ConfigDir(), cfgFilename)
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			log.ModEmu.Warnf("invalid config file %s, using defaults: %v", path, err)
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg into path, or into the gbmbc config directory if
// path is empty.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = filepath.Join(ConfigDir(), cfgFilename)
	}
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// SavesDir returns the directory where battery saves are stored.
func (c Config) SavesDir() string {
	if c.Saves.Dir != "" {
		return c.Saves.Dir
	}
	return filepath.Join(ConfigDir(), "saves")
}
