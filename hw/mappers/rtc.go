package mappers

type rtcState uint8

const (
	rtcUnlatched rtcState = iota
	rtcLatched
)

func (s rtcState) String() string {
	if s == rtcLatched {
		return "latched"
	}
	return "unlatched"
}

// rtcLatch tracks the MBC3 clock register selection and the latch
// sequence. It holds no time: the clock counters themselves are not
// emulated, so nothing here changes what the controller reads or writes.
type rtcLatch struct {
	reg     uint8 // selected register, 0x08-0x0C, 0 when RAM is selected
	state   rtcState
	prev    uint8 // last value written to the latch register
	latches int
}

func isRTCReg(val uint8) bool {
	return val >= 0x08 && val <= 0x0C
}

func (r *rtcLatch) reset() {
	*r = rtcLatch{prev: 0xFF}
}

func (r *rtcLatch) selectReg(val uint8) {
	r.reg = val
}

// latch handles a write to 0x6000-0x7FFF: writing 0x00 then 0x01 latches
// the clock.
func (r *rtcLatch) latch(val uint8) {
	if r.prev == 0x00 && val == 0x01 {
		r.state = rtcLatched
		r.latches++
	}
	r.prev = val
}
