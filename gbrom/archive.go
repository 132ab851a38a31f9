package gbrom

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"gbmbc/emu/log"
)

var modROM = log.NewModule("rom")

// readFile returns the content of path, decompressing it depending on its
// extension.
func readFile(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return readZip(path)
	case ".gz":
		return readGzip(path)
	case ".7z":
		return read7z(path)
	}
	return os.ReadFile(path)
}

func readZip(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return readArchived(path, f.Name, f.Open)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrEmptyArchive)
}

func read7z(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return readArchived(path, f.Name, f.Open)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrEmptyArchive)
}

func readArchived(path, name string, open func() (io.ReadCloser, error)) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", path, name, err)
	}
	defer rc.Close()

	modROM.DebugZ("reading from archive").
		String("archive", path).
		String("file", name).
		End()
	return io.ReadAll(rc)
}

func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
