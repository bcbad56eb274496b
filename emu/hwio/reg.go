package hwio

import (
	"fmt"

	"ricoh/emu/log"
)

type RegFlags uint8

const (
	RegFlagReadOnly RegFlags = (1 << iota)
	RegFlagWriteOnly
)

// Reg8 is a single byte-wide hardware register. Reads and writes go
// through the optional callbacks, which is how mapped peripherals get
// their side effects.
type Reg8 struct {
	Name  string
	Value uint8

	Flags   RegFlags
	ReadCb  func(val uint8) uint8
	WriteCb func(old uint8, val uint8)
}

func (reg Reg8) String() string {
	s := fmt.Sprintf("%s{%02x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg8) Read8(addr uint16) uint8 {
	if reg.Flags&RegFlagWriteOnly != 0 {
		log.ModHwIo.ErrorZ("invalid Read8 from writeonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

// Peek8 bypasses the read callback: debugger reads must not disturb
// read-sensitive registers.
func (reg *Reg8) Peek8(addr uint16) uint8 {
	return reg.Value
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&RegFlagReadOnly != 0 {
		log.ModHwIo.ErrorZ("invalid Write8 to readonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return
	}
	old := reg.Value
	reg.Value = val
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}
