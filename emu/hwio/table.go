// Package hwio models the 16-bit address bus of the emulated machine. A
// Table routes every byte of the 64 KiB address space to the device
// mapped there: mirrored RAM banks, read-only PRG areas, or single
// callback-backed registers. Reads and writes may have side effects,
// which is the point: peripherals live behind the bus.
package hwio

import (
	"ricoh/emu/log"
)

// BankIO8 is the access interface every mapped device implements.
type BankIO8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Peeker8 is implemented by devices that can be read without side
// effects (debugger and disassembler accesses).
type Peeker8 interface {
	Peek8(addr uint16) uint8
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	lo := uint8(val & 0xff)
	hi := uint8(val >> 8)
	b.Write8(addr, lo)
	b.Write8(addr+1, hi)
}

// Table routes bus accesses to mapped devices, byte by byte.
type Table struct {
	Name string

	io []BankIO8 // one entry per address
}

func NewTable(name string) *Table {
	t := &Table{Name: name}
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.io = make([]BankIO8, 0x10000)
}

// MapBus8 maps io over [addr, end], both included.
func (t *Table) MapBus8(addr, end uint16, io BankIO8) {
	for a := uint32(addr); a <= uint32(end); a++ {
		if t.io[a] != nil {
			log.ModHwIo.FatalZ("remapping bus address").
				String("bus", t.Name).
				Hex16("addr", uint16(a)).
				End()
		}
		t.io[a] = io
	}
}

func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("end", addr+uint16(mem.VSize-1)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	mem.init(addr)
	t.MapBus8(addr, addr+uint16(mem.VSize-1), mem)
}

// MapMemorySlice maps mem over [addr, end]. The slice length must be a
// power of two; a slice shorter than the mapped range is mirrored.
func (t *Table) MapMemorySlice(addr, end uint16, mem []uint8, readonly bool) {
	log.ModHwIo.DebugZ("mapping slice").
		Hex16("addr", addr).
		Hex16("end", end).
		String("bus", t.Name).
		Bool("ro", readonly).
		End()

	t.MapMem(addr, &Mem{
		Data:     mem,
		VSize:    int(end-addr) + 1,
		ReadOnly: readonly,
	})
}

func (t *Table) MapReg8(addr uint16, reg *Reg8) {
	t.MapBus8(addr, addr, reg)
}

func (t *Table) Unmap(begin, end uint16) {
	for a := uint32(begin); a <= uint32(end); a++ {
		t.io[a] = nil
	}
}

func (t *Table) Read8(addr uint16) uint8 {
	io := t.io[addr]
	if io == nil {
		log.ModHwIo.ErrorZ("unmapped Read8").
			String("name", t.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	return io.Read8(addr)
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.io[addr]
	if io == nil {
		log.ModHwIo.ErrorZ("unmapped Write8").
			String("name", t.Name).
			Hex16("addr", addr).
			Hex8("val", val).
			End()
		return
	}
	io.Write8(addr, val)
}

// Peek8 reads without triggering side effects, for devices that support
// it. Unmapped addresses peek as 0.
func (t *Table) Peek8(addr uint16) uint8 {
	switch io := t.io[addr].(type) {
	case nil:
		return 0
	case Peeker8:
		return io.Peek8(addr)
	default:
		return io.Read8(addr)
	}
}
