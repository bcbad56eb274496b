package cpu

// opdef describes one opcode: the instruction body, its mnemonic, the
// addressing mode the body resolves, the encoded length, the base cycle
// count and whether a crossed page adds a cycle. Tying the body and the
// mode together in one entry keeps a handler from ever disagreeing with
// its declared mode.
type opdef struct {
	do     func(*CPU, Mode)
	name   string
	mode   Mode
	size   uint8
	cycles uint8
	xpage  bool
}

// ops lists the 151 documented opcodes. The remaining entries have a nil
// body: running one is an IllegalOpcodeError, or a 2-cycle NOP when the
// CPU is lenient.
var ops = [256]opdef{
	0x00: {brk, "BRK", Implied, 1, 7, false},
	0x01: {ora, "ORA", IndirectX, 2, 6, false},
	0x05: {ora, "ORA", ZeroPage, 2, 3, false},
	0x06: {asl, "ASL", ZeroPage, 2, 5, false},
	0x08: {php, "PHP", Implied, 1, 3, false},
	0x09: {ora, "ORA", Immediate, 2, 2, false},
	0x0A: {asl, "ASL", Accumulator, 1, 2, false},
	0x0D: {ora, "ORA", Absolute, 3, 4, false},
	0x0E: {asl, "ASL", Absolute, 3, 6, false},
	0x10: {bpl, "BPL", Relative, 2, 2, false},
	0x11: {ora, "ORA", IndirectY, 2, 5, true},
	0x15: {ora, "ORA", ZeroPageX, 2, 4, false},
	0x16: {asl, "ASL", ZeroPageX, 2, 6, false},
	0x18: {clc, "CLC", Implied, 1, 2, false},
	0x19: {ora, "ORA", AbsoluteY, 3, 4, true},
	0x1D: {ora, "ORA", AbsoluteX, 3, 4, true},
	0x1E: {asl, "ASL", AbsoluteX, 3, 7, false},
	0x20: {jsr, "JSR", Absolute, 3, 6, false},
	0x21: {and, "AND", IndirectX, 2, 6, false},
	0x24: {bit, "BIT", ZeroPage, 2, 3, false},
	0x25: {and, "AND", ZeroPage, 2, 3, false},
	0x26: {rol, "ROL", ZeroPage, 2, 5, false},
	0x28: {plp, "PLP", Implied, 1, 4, false},
	0x29: {and, "AND", Immediate, 2, 2, false},
	0x2A: {rol, "ROL", Accumulator, 1, 2, false},
	0x2C: {bit, "BIT", Absolute, 3, 4, false},
	0x2D: {and, "AND", Absolute, 3, 4, false},
	0x2E: {rol, "ROL", Absolute, 3, 6, false},
	0x30: {bmi, "BMI", Relative, 2, 2, false},
	0x31: {and, "AND", IndirectY, 2, 5, true},
	0x35: {and, "AND", ZeroPageX, 2, 4, false},
	0x36: {rol, "ROL", ZeroPageX, 2, 6, false},
	0x38: {sec, "SEC", Implied, 1, 2, false},
	0x39: {and, "AND", AbsoluteY, 3, 4, true},
	0x3D: {and, "AND", AbsoluteX, 3, 4, true},
	0x3E: {rol, "ROL", AbsoluteX, 3, 7, false},
	0x40: {rti, "RTI", Implied, 1, 6, false},
	0x41: {eor, "EOR", IndirectX, 2, 6, false},
	0x45: {eor, "EOR", ZeroPage, 2, 3, false},
	0x46: {lsr, "LSR", ZeroPage, 2, 5, false},
	0x48: {pha, "PHA", Implied, 1, 3, false},
	0x49: {eor, "EOR", Immediate, 2, 2, false},
	0x4A: {lsr, "LSR", Accumulator, 1, 2, false},
	0x4C: {jmp, "JMP", Absolute, 3, 3, false},
	0x4D: {eor, "EOR", Absolute, 3, 4, false},
	0x4E: {lsr, "LSR", Absolute, 3, 6, false},
	0x50: {bvc, "BVC", Relative, 2, 2, false},
	0x51: {eor, "EOR", IndirectY, 2, 5, true},
	0x55: {eor, "EOR", ZeroPageX, 2, 4, false},
	0x56: {lsr, "LSR", ZeroPageX, 2, 6, false},
	0x58: {cli, "CLI", Implied, 1, 2, false},
	0x59: {eor, "EOR", AbsoluteY, 3, 4, true},
	0x5D: {eor, "EOR", AbsoluteX, 3, 4, true},
	0x5E: {lsr, "LSR", AbsoluteX, 3, 7, false},
	0x60: {rts, "RTS", Implied, 1, 6, false},
	0x61: {adc, "ADC", IndirectX, 2, 6, false},
	0x65: {adc, "ADC", ZeroPage, 2, 3, false},
	0x66: {ror, "ROR", ZeroPage, 2, 5, false},
	0x68: {pla, "PLA", Implied, 1, 4, false},
	0x69: {adc, "ADC", Immediate, 2, 2, false},
	0x6A: {ror, "ROR", Accumulator, 1, 2, false},
	0x6C: {jmp, "JMP", Indirect, 3, 5, false},
	0x6D: {adc, "ADC", Absolute, 3, 4, false},
	0x6E: {ror, "ROR", Absolute, 3, 6, false},
	0x70: {bvs, "BVS", Relative, 2, 2, false},
	0x71: {adc, "ADC", IndirectY, 2, 5, true},
	0x75: {adc, "ADC", ZeroPageX, 2, 4, false},
	0x76: {ror, "ROR", ZeroPageX, 2, 6, false},
	0x78: {sei, "SEI", Implied, 1, 2, false},
	0x79: {adc, "ADC", AbsoluteY, 3, 4, true},
	0x7D: {adc, "ADC", AbsoluteX, 3, 4, true},
	0x7E: {ror, "ROR", AbsoluteX, 3, 7, false},
	0x81: {sta, "STA", IndirectX, 2, 6, false},
	0x84: {sty, "STY", ZeroPage, 2, 3, false},
	0x85: {sta, "STA", ZeroPage, 2, 3, false},
	0x86: {stx, "STX", ZeroPage, 2, 3, false},
	0x88: {dey, "DEY", Implied, 1, 2, false},
	0x8A: {txa, "TXA", Implied, 1, 2, false},
	0x8C: {sty, "STY", Absolute, 3, 4, false},
	0x8D: {sta, "STA", Absolute, 3, 4, false},
	0x8E: {stx, "STX", Absolute, 3, 4, false},
	0x90: {bcc, "BCC", Relative, 2, 2, false},
	0x91: {sta, "STA", IndirectY, 2, 6, false},
	0x94: {sty, "STY", ZeroPageX, 2, 4, false},
	0x95: {sta, "STA", ZeroPageX, 2, 4, false},
	0x96: {stx, "STX", ZeroPageY, 2, 4, false},
	0x98: {tya, "TYA", Implied, 1, 2, false},
	0x99: {sta, "STA", AbsoluteY, 3, 5, false},
	0x9A: {txs, "TXS", Implied, 1, 2, false},
	0x9D: {sta, "STA", AbsoluteX, 3, 5, false},
	0xA0: {ldy, "LDY", Immediate, 2, 2, false},
	0xA1: {lda, "LDA", IndirectX, 2, 6, false},
	0xA2: {ldx, "LDX", Immediate, 2, 2, false},
	0xA4: {ldy, "LDY", ZeroPage, 2, 3, false},
	0xA5: {lda, "LDA", ZeroPage, 2, 3, false},
	0xA6: {ldx, "LDX", ZeroPage, 2, 3, false},
	0xA8: {tay, "TAY", Implied, 1, 2, false},
	0xA9: {lda, "LDA", Immediate, 2, 2, false},
	0xAA: {tax, "TAX", Implied, 1, 2, false},
	0xAC: {ldy, "LDY", Absolute, 3, 4, false},
	0xAD: {lda, "LDA", Absolute, 3, 4, false},
	0xAE: {ldx, "LDX", Absolute, 3, 4, false},
	0xB0: {bcs, "BCS", Relative, 2, 2, false},
	0xB1: {lda, "LDA", IndirectY, 2, 5, true},
	0xB4: {ldy, "LDY", ZeroPageX, 2, 4, false},
	0xB5: {lda, "LDA", ZeroPageX, 2, 4, false},
	0xB6: {ldx, "LDX", ZeroPageY, 2, 4, false},
	0xB8: {clv, "CLV", Implied, 1, 2, false},
	0xB9: {lda, "LDA", AbsoluteY, 3, 4, true},
	0xBA: {tsx, "TSX", Implied, 1, 2, false},
	0xBC: {ldy, "LDY", AbsoluteX, 3, 4, true},
	0xBD: {lda, "LDA", AbsoluteX, 3, 4, true},
	0xBE: {ldx, "LDX", AbsoluteY, 3, 4, true},
	0xC0: {cpy, "CPY", Immediate, 2, 2, false},
	0xC1: {cmp_, "CMP", IndirectX, 2, 6, false},
	0xC4: {cpy, "CPY", ZeroPage, 2, 3, false},
	0xC5: {cmp_, "CMP", ZeroPage, 2, 3, false},
	0xC6: {dec, "DEC", ZeroPage, 2, 5, false},
	0xC8: {iny, "INY", Implied, 1, 2, false},
	0xC9: {cmp_, "CMP", Immediate, 2, 2, false},
	0xCA: {dex, "DEX", Implied, 1, 2, false},
	0xCC: {cpy, "CPY", Absolute, 3, 4, false},
	0xCD: {cmp_, "CMP", Absolute, 3, 4, false},
	0xCE: {dec, "DEC", Absolute, 3, 6, false},
	0xD0: {bne, "BNE", Relative, 2, 2, false},
	0xD1: {cmp_, "CMP", IndirectY, 2, 5, true},
	0xD5: {cmp_, "CMP", ZeroPageX, 2, 4, false},
	0xD6: {dec, "DEC", ZeroPageX, 2, 6, false},
	0xD8: {cld, "CLD", Implied, 1, 2, false},
	0xD9: {cmp_, "CMP", AbsoluteY, 3, 4, true},
	0xDD: {cmp_, "CMP", AbsoluteX, 3, 4, true},
	0xDE: {dec, "DEC", AbsoluteX, 3, 7, false},
	0xE0: {cpx, "CPX", Immediate, 2, 2, false},
	0xE1: {sbc, "SBC", IndirectX, 2, 6, false},
	0xE4: {cpx, "CPX", ZeroPage, 2, 3, false},
	0xE5: {sbc, "SBC", ZeroPage, 2, 3, false},
	0xE6: {inc, "INC", ZeroPage, 2, 5, false},
	0xE8: {inx, "INX", Implied, 1, 2, false},
	0xE9: {sbc, "SBC", Immediate, 2, 2, false},
	0xEA: {nop, "NOP", Implied, 1, 2, false},
	0xEC: {cpx, "CPX", Absolute, 3, 4, false},
	0xED: {sbc, "SBC", Absolute, 3, 4, false},
	0xEE: {inc, "INC", Absolute, 3, 6, false},
	0xF0: {beq, "BEQ", Relative, 2, 2, false},
	0xF1: {sbc, "SBC", IndirectY, 2, 5, true},
	0xF5: {sbc, "SBC", ZeroPageX, 2, 4, false},
	0xF6: {inc, "INC", ZeroPageX, 2, 6, false},
	0xF8: {sed, "SED", Implied, 1, 2, false},
	0xF9: {sbc, "SBC", AbsoluteY, 3, 4, true},
	0xFD: {sbc, "SBC", AbsoluteX, 3, 4, true},
	0xFE: {inc, "INC", AbsoluteX, 3, 7, false},
}

/* operand plumbing */

// fetch loads the byte the mode designates.
func (c *CPU) fetch(m Mode) uint8 {
	return c.bus.Read8(c.operand(m))
}

// rmw runs f on the byte the mode designates, or on the accumulator.
// For memory targets the bus traffic follows the hardware
// read-modify-write pattern: read, rewrite of the old value, then write
// of the result. Peripherals can observe the intermediate write.
func (c *CPU) rmw(m Mode, f func(uint8) uint8) {
	if m == Accumulator {
		c.A = f(c.A)
		return
	}
	addr := c.operand(m)
	old := c.bus.Read8(addr)
	c.bus.Write8(addr, old)
	c.bus.Write8(addr, f(old))
}

// branch applies a taken/not-taken conditional jump. Taken costs one
// extra cycle, one more when the destination sits on another page than
// the instruction's end.
func (c *CPU) branch(cond bool) {
	addr := c.operand(Relative)
	if cond {
		c.extra++
		if pagecrossed(c.PC, addr) {
			c.extra++
		}
		c.PC = addr
	}
}

/* loads and stores */

func lda(c *CPU, m Mode) {
	c.A = c.fetch(m)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, m Mode) {
	c.X = c.fetch(m)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, m Mode) {
	c.Y = c.fetch(m)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, m Mode) {
	c.bus.Write8(c.operand(m), c.A)
}

func stx(c *CPU, m Mode) {
	c.bus.Write8(c.operand(m), c.X)
}

func sty(c *CPU, m Mode) {
	c.bus.Write8(c.operand(m), c.Y)
}

/* register transfers */

func tax(c *CPU, m Mode) {
	c.X = c.A
	c.P.checkNZ(c.X)
}

func tay(c *CPU, m Mode) {
	c.Y = c.A
	c.P.checkNZ(c.Y)
}

func tsx(c *CPU, m Mode) {
	c.X = c.SP
	c.P.checkNZ(c.X)
}

func txa(c *CPU, m Mode) {
	c.A = c.X
	c.P.checkNZ(c.A)
}

// txs is the one transfer that touches no flag.
func txs(c *CPU, m Mode) {
	c.SP = c.X
}

func tya(c *CPU, m Mode) {
	c.A = c.Y
	c.P.checkNZ(c.A)
}

/* arithmetic */

// add memory to accumulator with carry. Decimal mode does not exist on
// this chip: D is stored but never honoured.
func adc(c *CPU, m Mode) {
	val := c.fetch(m)
	c.addWithCarry(val)
}

// subtract memory from accumulator with borrow: the same adder fed the
// complemented operand.
func sbc(c *CPU, m Mode) {
	val := c.fetch(m) ^ 0xff
	c.addWithCarry(val)
}

func (c *CPU) addWithCarry(val uint8) {
	carry := c.P.ibit(pbitC)
	sum := uint16(c.A) + uint16(val) + uint16(carry)

	c.P.checkCV(c.A, val, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func inc(c *CPU, m Mode) {
	c.rmw(m, func(v uint8) uint8 {
		v++
		c.P.checkNZ(v)
		return v
	})
}

func dec(c *CPU, m Mode) {
	c.rmw(m, func(v uint8) uint8 {
		v--
		c.P.checkNZ(v)
		return v
	})
}

func inx(c *CPU, m Mode) {
	c.X++
	c.P.checkNZ(c.X)
}

func iny(c *CPU, m Mode) {
	c.Y++
	c.P.checkNZ(c.Y)
}

func dex(c *CPU, m Mode) {
	c.X--
	c.P.checkNZ(c.X)
}

func dey(c *CPU, m Mode) {
	c.Y--
	c.P.checkNZ(c.Y)
}

/* logical */

func and(c *CPU, m Mode) {
	c.A &= c.fetch(m)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, m Mode) {
	c.A |= c.fetch(m)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, m Mode) {
	c.A ^= c.fetch(m)
	c.P.checkNZ(c.A)
}

// test bits in memory with accumulator: N and V come straight from the
// memory byte, Z from the masked accumulator. A is untouched.
func bit(c *CPU, m Mode) {
	val := c.fetch(m)
	c.P &= 0b00111111
	c.P |= P(val & 0b11000000)
	c.P.checkZ(c.A & val)
}

/* compares */

func cmp_(c *CPU, m Mode) {
	c.compare(c.A, c.fetch(m))
}

func cpx(c *CPU, m Mode) {
	c.compare(c.X, c.fetch(m))
}

func cpy(c *CPU, m Mode) {
	c.compare(c.Y, c.fetch(m))
}

// compare sets flags as for a subtraction whose result is dropped.
func (c *CPU) compare(reg, val uint8) {
	c.P.checkNZ(reg - val)
	c.P.writeBit(pbitC, val <= reg)
}

/* shifts and rotates */

func asl(c *CPU, m Mode) {
	c.rmw(m, func(v uint8) uint8 {
		carry := v & 0x80
		v <<= 1
		c.P.checkNZ(v)
		c.P.writeBit(pbitC, carry != 0)
		return v
	})
}

func lsr(c *CPU, m Mode) {
	c.rmw(m, func(v uint8) uint8 {
		carry := v & 0x01
		v >>= 1
		c.P.checkNZ(v)
		c.P.writeBit(pbitC, carry != 0)
		return v
	})
}

func rol(c *CPU, m Mode) {
	cin := c.P.ibit(pbitC)
	c.rmw(m, func(v uint8) uint8 {
		carry := v & 0x80
		v = v<<1 | cin
		c.P.checkNZ(v)
		c.P.writeBit(pbitC, carry != 0)
		return v
	})
}

func ror(c *CPU, m Mode) {
	cin := c.P.ibit(pbitC)
	c.rmw(m, func(v uint8) uint8 {
		carry := v & 0x01
		v = v>>1 | cin<<7
		c.P.checkNZ(v)
		c.P.writeBit(pbitC, carry != 0)
		return v
	})
}

/* branches */

func bcc(c *CPU, m Mode) { c.branch(!c.P.C()) }
func bcs(c *CPU, m Mode) { c.branch(c.P.C()) }
func bne(c *CPU, m Mode) { c.branch(!c.P.Z()) }
func beq(c *CPU, m Mode) { c.branch(c.P.Z()) }
func bpl(c *CPU, m Mode) { c.branch(!c.P.N()) }
func bmi(c *CPU, m Mode) { c.branch(c.P.N()) }
func bvc(c *CPU, m Mode) { c.branch(!c.P.V()) }
func bvs(c *CPU, m Mode) { c.branch(c.P.V()) }

/* jumps and subroutines */

func jmp(c *CPU, m Mode) {
	c.PC = c.operand(m)
}

func jsr(c *CPU, m Mode) {
	addr := c.operand(Absolute)
	// push the address of the JSR's last byte; RTS adds the 1 back
	c.push16(c.PC - 1)
	c.PC = addr
}

func rts(c *CPU, m Mode) {
	c.PC = c.pull16() + 1
}

/* stack */

func pha(c *CPU, m Mode) {
	c.push8(c.A)
}

func php(c *CPU, m Mode) {
	c.push8(c.P.toStack(true))
}

func pla(c *CPU, m Mode) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, m Mode) {
	c.P.fromStack(c.pull8())
}

/* flag operations */

func clc(c *CPU, m Mode) { c.P.clearBit(pbitC) }
func sec(c *CPU, m Mode) { c.P.setBit(pbitC) }
func cli(c *CPU, m Mode) { c.P.clearBit(pbitI) }
func sei(c *CPU, m Mode) { c.P.setBit(pbitI) }
func cld(c *CPU, m Mode) { c.P.clearBit(pbitD) }
func sed(c *CPU, m Mode) { c.P.setBit(pbitD) }
func clv(c *CPU, m Mode) { c.P.clearBit(pbitV) }

/* interrupts */

// brk pushes the address after the signature byte and the status with B
// set, then vectors through IRQ with interrupts disabled.
func brk(c *CPU, m Mode) {
	c.push16(c.PC + 1)
	c.push8(c.P.toStack(true))
	c.P.setBit(pbitI)
	c.PC = c.read16(IRQVector)
}

func rti(c *CPU, m Mode) {
	c.P.fromStack(c.pull8())
	c.PC = c.pull16()
}

func nop(c *CPU, m Mode) {}
