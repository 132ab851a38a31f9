package tests

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/sync/errgroup"
)

// WriteRaw writes data into dir/name and returns the file path.
func WriteRaw(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// WriteZip writes a zip archive containing a single file.
func WriteZip(tb testing.TB, dir, name, inner string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(inner)
	if err != nil {
		tb.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		tb.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatal(err)
	}
	return path
}

// WriteGzip writes a gzip compressed file.
func WriteGzip(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		tb.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatal(err)
	}
	return path
}

// WriteTree writes n distinct roms named rom%02d.gb, spread over
// subdirectories of dir, and returns their paths.
func WriteTree(tb testing.TB, dir string, n int) []string {
	tb.Helper()

	paths := make([]string, n)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < n; i++ {
		i := i
		sub := filepath.Join(dir, fmt.Sprintf("d%d", i%3))
		paths[i] = filepath.Join(sub, fmt.Sprintf("rom%02d.gb", i))

		g.Go(func() error {
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return err
			}
			rom := ROM{Title: fmt.Sprintf("ROM%02d", i), Type: 0x11, ROMCode: 0}
			return os.WriteFile(paths[i], rom.Build(), 0o644)
		})
	}

	if err := g.Wait(); err != nil {
		tb.Fatalf("failed to write rom tree: %s", err)
	}
	return paths
}
