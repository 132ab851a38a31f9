package emu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.General.Model = ModelCGB
	cfg.Saves.Dir = "/tmp/saves"
	cfg.Saves.Autosave = false
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}

	got := LoadConfigOrDefault(path)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\nmodel = \"dmg\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfigOrDefault(path)
	if cfg.General.Model != ModelDMG {
		t.Errorf("model = %q, want %q", cfg.General.Model, ModelDMG)
	}
	if !cfg.Saves.Autosave {
		t.Errorf("autosave default lost")
	}
}

func TestConfigInvalidModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\nmodel = \"gba\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(DefaultConfig(), LoadConfigOrDefault(path)); diff != "" {
		t.Errorf("invalid config didn't give defaults (-want +got):\n%s", diff)
	}
}

func TestConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	if diff := cmp.Diff(DefaultConfig(), LoadConfigOrDefault(path)); diff != "" {
		t.Errorf("missing config didn't give defaults (-want +got):\n%s", diff)
	}
}
