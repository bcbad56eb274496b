package hwio

import (
	"ricoh/emu/log"
)

// Mem is a linear memory area mappable into a Table. The backing buffer
// length must be a power of two; when VSize exceeds it, accesses wrap,
// which mirrors the buffer over the mapped range the way short address
// decoding mirrors RAM on the real machine.
type Mem struct {
	Name     string
	Data     []byte
	VSize    int  // virtual (mapped) size, defaults to len(Data)
	ReadOnly bool

	// Optional write observer, called after the byte is stored.
	WriteCb func(addr uint16, val uint8)

	base uint16
	mask uint16
}

func (m *Mem) init(base uint16) {
	if len(m.Data)&(len(m.Data)-1) != 0 {
		panic("hwio: memory buffer size is not pow2")
	}
	if m.VSize == 0 {
		m.VSize = len(m.Data)
	}
	m.base = base
	m.mask = uint16(len(m.Data) - 1)
}

func (m *Mem) Read8(addr uint16) uint8 {
	return m.Data[(addr-m.base)&m.mask]
}

func (m *Mem) Peek8(addr uint16) uint8 {
	return m.Read8(addr)
}

func (m *Mem) Write8(addr uint16, val uint8) {
	if m.ReadOnly {
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			String("area", m.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	m.Data[(addr-m.base)&m.mask] = val
	if m.WriteCb != nil {
		m.WriteCb(addr, val)
	}
}
