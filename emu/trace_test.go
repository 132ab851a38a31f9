package emu

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gbmbc/tests"
)

func TestParseTrace(t *testing.T) {
	const trace = `
# enable RAM, select bank 2
W 0000 0A
w 4000 02

R a000
R A000 ff
`
	ops, err := ParseTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatal(err)
	}

	want := []TraceOp{
		{Line: 3, Write: true, Addr: 0x0000, Val: 0x0A},
		{Line: 4, Write: true, Addr: 0x4000, Val: 0x02},
		{Line: 6, Addr: 0xA000},
		{Line: 7, Addr: 0xA000, Val: 0xFF, Expect: true},
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("ParseTrace() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTraceErrors(t *testing.T) {
	cases := []struct {
		trace string
		line  string
	}{
		{"X 0000 00", "line 1:"},
		{"R 0000\nW 0000", "line 2:"},
		{"W 10000 00", "line 1:"},
		{"R 0000 100", "line 1:"},
		{"# comment\n\nR zz", "line 3:"},
		{"R 0000 00 00", "line 1:"},
	}
	for _, tt := range cases {
		_, err := ParseTrace(strings.NewReader(tt.trace))
		if !errors.Is(err, ErrTraceSyntax) {
			t.Errorf("ParseTrace(%q) error = %v, want %v", tt.trace, err, ErrTraceSyntax)
			continue
		}
		if !strings.HasPrefix(err.Error(), tt.line) {
			t.Errorf("ParseTrace(%q) error = %q, want prefix %q", tt.trace, err, tt.line)
		}
	}
}

func TestReplay(t *testing.T) {
	const trace = `
W 2000 05
R 4000 05
W 0000 0A
W A010 33
R A010 33
R A011
`
	ops, err := ParseTrace(strings.NewReader(trace))
	if err != nil {
		t.Fatal(err)
	}

	s := powerUp(t, tests.MBC3ROM, ModelAuto)
	var reads []string
	err = s.Replay(ops, func(op TraceOp, val uint8) {
		reads = append(reads, fmt.Sprintf("%s -> %02X", op, val))
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"R 4000 05 -> 05",
		"R A010 33 -> 33",
		"R A011 -> 00",
	}
	if diff := cmp.Diff(want, reads); diff != "" {
		t.Errorf("reads mismatch (-want +got):\n%s", diff)
	}
}

func TestReplayMismatch(t *testing.T) {
	ops, err := ParseTrace(strings.NewReader("W 2000 03\nR 4000 04\nR 4000 03\n"))
	if err != nil {
		t.Fatal(err)
	}

	s := powerUp(t, tests.MBC3ROM, ModelAuto)
	err = s.Replay(ops, nil)

	var merr *MismatchError
	if !errors.As(err, &merr) {
		t.Fatalf("Replay() error = %v, want a MismatchError", err)
	}
	if merr.Op.Line != 2 || merr.Got != 0x03 {
		t.Errorf("mismatch at line %d got %02X, want line 2 got 03", merr.Op.Line, merr.Got)
	}
}
