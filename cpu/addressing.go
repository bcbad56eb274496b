package cpu

// operand resolves an addressing mode: it reads the operand bytes at PC
// (advancing it past them) and returns the effective address the
// instruction works on. Page crossings of the indexed absolute and
// indirect-indexed modes are recorded for the cycle accounting in Step.
//
// Immediate resolves to the address of the operand byte itself, so
// instruction bodies load every mode the same way. Implied and
// Accumulator have no operand and must not come here.
func (c *CPU) operand(m Mode) uint16 {
	switch m {
	case Immediate:
		addr := c.PC
		c.PC++
		return addr

	case ZeroPage:
		addr := uint16(c.bus.Read8(c.PC))
		c.PC++
		return addr

	case ZeroPageX:
		// index add wraps within the zero page
		addr := uint16(c.bus.Read8(c.PC) + c.X)
		c.PC++
		return addr

	case ZeroPageY:
		addr := uint16(c.bus.Read8(c.PC) + c.Y)
		c.PC++
		return addr

	case Absolute:
		addr := c.read16(c.PC)
		c.PC += 2
		return addr

	case AbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.X)
		c.crossed = pagecrossed(base, addr)
		return addr

	case AbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr := base + uint16(c.Y)
		c.crossed = pagecrossed(base, addr)
		return addr

	case Indirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		return c.read16bug(ptr)

	case IndirectX:
		zp := c.bus.Read8(c.PC) + c.X // wraps within the zero page
		c.PC++
		return c.zpr16(zp)

	case IndirectY:
		zp := c.bus.Read8(c.PC)
		c.PC++
		base := c.zpr16(zp)
		addr := base + uint16(c.Y)
		c.crossed = pagecrossed(base, addr)
		return addr

	case Relative:
		off := int8(c.bus.Read8(c.PC))
		c.PC++
		return uint16(int16(c.PC) + int16(off))
	}

	panic("mode has no operand: " + m.String())
}

func pagecrossed(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}
