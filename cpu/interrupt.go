package cpu

import "ricoh/emu/log"

// TriggerNMI latches a non-maskable interrupt request. It is serviced
// before the next instruction fetch, then cleared.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetIRQ drives the level-sensitive interrupt request line. While the
// line is high and I is clear, an interrupt is serviced at each
// instruction boundary.
func (c *CPU) SetIRQ(level bool) {
	c.irqLine = level
}

// InterruptLines reports the latched NMI request and the IRQ line
// level, for save states.
func (c *CPU) InterruptLines() (nmi, irq bool) {
	return c.nmiPending, c.irqLine
}

// RestoreInterruptLines puts the lines back in a saved state.
func (c *CPU) RestoreInterruptLines(nmi, irq bool) {
	c.nmiPending = nmi
	c.irqLine = irq
}

const interruptCycles = 7

// checkInterrupts services at most one pending interrupt and returns
// the cycles it took, or 0 when execution can proceed with the next
// fetch. NMI wins over IRQ.
func (c *CPU) checkInterrupts() int {
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.service(NMIVector)
		return interruptCycles
	case c.irqLine && !c.P.I():
		c.service(IRQVector)
		return interruptCycles
	}
	return 0
}

// service pushes PC and the status image (B clear), disables interrupts
// and jumps through the vector.
func (c *CPU) service(vector uint16) {
	c.push16(c.PC)
	c.push8(c.P.toStack(false))
	c.P.setBit(pbitI)
	c.PC = c.read16(vector)

	log.ModCPU.DebugZ("servicing interrupt").
		Hex16("vector", vector).
		Hex16("handler", c.PC).
		End()
}
