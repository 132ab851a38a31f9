package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gbmbc/emu"
	"gbmbc/tests"
)

func TestScanRoms(t *testing.T) {
	dir := t.TempDir()
	paths := tests.WriteTree(t, dir, 12)
	tests.WriteRaw(t, dir, "README", []byte("not a rom"))

	mbc5 := tests.MBC3ROM
	mbc5.Type = 0x19
	tests.WriteZip(t, dir, "mbc5.zip", "mbc5.gbc", mbc5.Build())

	results, err := scanRoms(context.Background(), dir, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths)+2 {
		t.Fatalf("got %d results, want %d", len(results), len(paths)+2)
	}

	var nsupported, nerr int
	for i, r := range results {
		if i > 0 && results[i-1].path > r.path {
			t.Errorf("results not sorted: %s after %s", r.path, results[i-1].path)
		}
		switch {
		case r.err != nil:
			nerr++
			if filepath.Base(r.path) != "README" {
				t.Errorf("%s: unexpected error %v", r.path, r.err)
			}
		case r.supported():
			nsupported++
			if r.mapper != "MBC3" {
				t.Errorf("%s: mapper = %q, want MBC3", r.path, r.mapper)
			}
		default:
			if filepath.Base(r.path) != "mbc5.zip" {
				t.Errorf("%s: unexpectedly unsupported", r.path)
			}
		}
	}
	if nsupported != len(paths) || nerr != 1 {
		t.Errorf("supported = %d, errors = %d, want %d and 1", nsupported, nerr, len(paths))
	}
}

func TestScanMain(t *testing.T) {
	dir := t.TempDir()
	tests.WriteTree(t, dir, 4)

	var buf bytes.Buffer
	scanMain(Scan{Dir: dir}, &buf)

	out := buf.String()
	if !strings.HasSuffix(out, "4/4 supported cartridges\n") {
		t.Errorf("unexpected scan summary:\n%s", out)
	}
	if !strings.Contains(out, filepath.Join("d0", "rom00.gb")) {
		t.Errorf("rom00.gb missing from scan output:\n%s", out)
	}
}

func TestReplayMain(t *testing.T) {
	dir := t.TempDir()
	rompath := tests.WriteGzip(t, dir, "mbc3.gb.gz", tests.MBC3ROM.Build())
	trace := tests.WriteRaw(t, dir, "trace.txt", []byte("W 0000 0A\nW A000 12\nR A000 12\n"))
	snap := filepath.Join(dir, "state.json")

	cfg := emu.DefaultConfig()
	cfg.Saves.Dir = filepath.Join(dir, "saves")
	replayMain(Replay{RomPath: rompath, TracePath: trace, Snapshot: snap}, cfg)

	buf, err := os.ReadFile(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf, []byte(`"mapper":"MBC3"`)) {
		t.Errorf("unexpected snapshot: %.80s", buf)
	}

	saves, err := os.ReadDir(filepath.Join(dir, "saves"))
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Fatalf("got %d battery saves, want 1", len(saves))
	}
}
