package emu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrTraceSyntax = errors.New("trace syntax error")

// TraceOp is one line of a bus trace.
//
//	W AAAA VV     write VV at AAAA
//	R AAAA        read AAAA
//	R AAAA VV     read AAAA, expecting VV
//
// Values are hexadecimal. Blank lines and lines starting with '#' are ignored.
type TraceOp struct {
	Line   int
	Write  bool
	Addr   uint16
	Val    uint8
	Expect bool // read has an expected value
}

func (op TraceOp) String() string {
	switch {
	case op.Write:
		return fmt.Sprintf("W %04X %02X", op.Addr, op.Val)
	case op.Expect:
		return fmt.Sprintf("R %04X %02X", op.Addr, op.Val)
	}
	return fmt.Sprintf("R %04X", op.Addr)
}

// ParseTrace reads a whole trace.
func ParseTrace(r io.Reader) ([]TraceOp, error) {
	var ops []TraceOp

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		txt := strings.TrimSpace(sc.Text())
		if txt == "" || txt[0] == '#' {
			continue
		}
		op, err := parseTraceLine(txt)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseTraceLine(txt string) (TraceOp, error) {
	var op TraceOp

	fields := strings.Fields(txt)
	switch strings.ToUpper(fields[0]) {
	case "W":
		if len(fields) != 3 {
			return op, fmt.Errorf("%w: write wants an address and a value", ErrTraceSyntax)
		}
		op.Write = true
	case "R":
		if len(fields) != 2 && len(fields) != 3 {
			return op, fmt.Errorf("%w: read wants an address and an optional value", ErrTraceSyntax)
		}
	default:
		return op, fmt.Errorf("%w: unknown operation %q", ErrTraceSyntax, fields[0])
	}

	addr, err := strconv.ParseUint(fields[1], 16, 16)
	if err != nil {
		return op, fmt.Errorf("%w: bad address %q", ErrTraceSyntax, fields[1])
	}
	op.Addr = uint16(addr)

	if len(fields) == 3 {
		val, err := strconv.ParseUint(fields[2], 16, 8)
		if err != nil {
			return op, fmt.Errorf("%w: bad value %q", ErrTraceSyntax, fields[2])
		}
		op.Val = uint8(val)
		op.Expect = !op.Write
	}
	return op, nil
}

// MismatchError is returned by Replay when a read doesn't give the
// expected value.
type MismatchError struct {
	Op  TraceOp
	Got uint8
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("line %d: read %04X: got %02X, want %02X", e.Op.Line, e.Op.Addr, e.Got, e.Op.Val)
}

// Replay runs ops against the session. Every read is reported to onRead,
// which may be nil. Replay stops at the first mismatching read.
func (s *Session) Replay(ops []TraceOp, onRead func(op TraceOp, val uint8)) error {
	for _, op := range ops {
		if op.Write {
			s.Write8(op.Addr, op.Val)
			continue
		}

		val := s.Read8(op.Addr)
		if onRead != nil {
			onRead(op, val)
		}
		if op.Expect && val != op.Val {
			return &MismatchError{Op: op, Got: val}
		}
	}
	return nil
}
