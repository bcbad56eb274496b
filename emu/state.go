package emu

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"

	"ricoh/cpu"
)

// Save states are versioned JSON blobs: the CPU registers, clock and
// interrupt lines, plus the RAM content. The bus topology is not saved,
// a state only loads back into a machine built the same way.
const stateVersion = 1

// SaveState writes a snapshot of the full machine state.
func (nes *NES) SaveState(w io.Writer) error {
	c := nes.CPU
	nmi, irq := c.InterruptLines()

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(stateVersion) })
		e.Field("cpu", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("pc", func(e *jx.Encoder) { e.UInt16(c.PC) })
				e.Field("sp", func(e *jx.Encoder) { e.UInt8(c.SP) })
				e.Field("a", func(e *jx.Encoder) { e.UInt8(c.A) })
				e.Field("x", func(e *jx.Encoder) { e.UInt8(c.X) })
				e.Field("y", func(e *jx.Encoder) { e.UInt8(c.Y) })
				e.Field("p", func(e *jx.Encoder) { e.UInt8(uint8(c.P)) })
				e.Field("clock", func(e *jx.Encoder) { e.Int64(c.Clock) })
				e.Field("nmi", func(e *jx.Encoder) { e.Bool(nmi) })
				e.Field("irq", func(e *jx.Encoder) { e.Bool(irq) })
			})
		})
		e.Field("ram", func(e *jx.Encoder) { e.Base64(nes.RAM) })
	})

	_, err := w.Write(e.Bytes())
	return err
}

// LoadState restores a snapshot written by SaveState into the machine.
func (nes *NES) LoadState(r io.Reader) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	d := jx.DecodeBytes(buf)
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.Int()
			if err != nil {
				return err
			}
			if v != stateVersion {
				return fmt.Errorf("unsupported save state version %d", v)
			}
			return nil

		case "cpu":
			return nes.loadCPUState(d)

		case "ram":
			ram, err := d.Base64()
			if err != nil {
				return err
			}
			if len(ram) != len(nes.RAM) {
				return fmt.Errorf("RAM size mismatch: got %d, want %d", len(ram), len(nes.RAM))
			}
			copy(nes.RAM, ram)
			return nil

		default:
			return d.Skip()
		}
	})
}

func (nes *NES) loadCPUState(d *jx.Decoder) error {
	c := nes.CPU
	nmi, irq := c.InterruptLines()

	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			c.PC, err = d.UInt16()
		case "sp":
			c.SP, err = d.UInt8()
		case "a":
			c.A, err = d.UInt8()
		case "x":
			c.X, err = d.UInt8()
		case "y":
			c.Y, err = d.UInt8()
		case "p":
			var p uint8
			p, err = d.UInt8()
			c.P = cpu.P(p)
		case "clock":
			c.Clock, err = d.Int64()
		case "nmi":
			nmi, err = d.Bool()
		case "irq":
			irq, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return err
	}

	c.RestoreInterruptLines(nmi, irq)
	return nil
}
