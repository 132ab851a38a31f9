package hwio

import "gbmbc/emu/log"

// Mem is a linear memory area. Its size must be a power of 2, addresses are
// masked so that a Mem mapped on a bigger range mirrors itself.
type Mem struct {
	Name     string // name of the memory area (for debugging)
	Data     []byte
	ReadOnly bool
}

// NewMem allocates a zeroed memory area of the given size.
func NewMem(name string, size int) *Mem {
	if size <= 0 || size&(size-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &Mem{Name: name, Data: make([]byte, size)}
}

func (m *Mem) mask() uint16 {
	return uint16(len(m.Data) - 1)
}

func (m *Mem) Read8(addr uint16) uint8 {
	return m.Data[addr&m.mask()]
}

func (m *Mem) Write8(addr uint16, val uint8) {
	if m.ReadOnly {
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			String("name", m.Name).
			Hex8("val", val).
			Hex16("addr", addr).
			End()
		return
	}
	m.Data[addr&m.mask()] = val
}

// Clear zero-fills the memory area.
func (m *Mem) Clear() {
	clear(m.Data)
}
