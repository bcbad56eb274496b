// Package emu assembles the emulated machine around the CPU core: bus
// wiring, internal RAM, cartridge PRG mapping and the run loop.
package emu

import (
	"fmt"

	"ricoh/cpu"
	"ricoh/emu/hwio"
	"ricoh/ines"
)

type NES struct {
	CPU *cpu.CPU
	Bus *hwio.Table
	RAM []byte
	Rom *ines.Rom
}

// PowerUp builds a machine running the given ROM. Only mapper 0 (NROM)
// cartridges are supported: PRG sits at $8000, mirrored when 16 KiB.
func PowerUp(rom *ines.Rom) (*NES, error) {
	if rom.Mapper() != 0 {
		return nil, fmt.Errorf("unsupported mapper %03d", rom.Mapper())
	}

	switch len(rom.PRG) {
	case 16384, 32768:
	default:
		return nil, fmt.Errorf("unexpected PRG size %d", len(rom.PRG))
	}

	bus := hwio.NewTable("cpu")

	// Internal RAM is 0x800 bytes, mirrored up to 0x1FFF.
	ram := make([]byte, 0x800)
	bus.MapMemorySlice(0x0000, 0x1FFF, ram, false)

	// A 16 KiB PRG mirrors over the full 32 KiB window.
	bus.MapMemorySlice(0x8000, 0xFFFF, rom.PRG, true)

	return &NES{
		CPU: cpu.New(bus),
		Bus: bus,
		RAM: ram,
		Rom: rom,
	}, nil
}

// PowerUpFlat builds a bare machine: 64 KiB of RAM with the program
// patched in at org and the reset vector pointing at it. This is the
// manual-loading host used by the single-step mode and the tests.
func PowerUpFlat(program []byte, org uint16) *NES {
	ram := make([]byte, 0x10000)
	copy(ram[org:], program)
	ram[0xFFFC] = uint8(org) // reset vector, little-endian
	ram[0xFFFD] = uint8(org >> 8)

	bus := hwio.NewTable("cpu")
	bus.MapMemorySlice(0x0000, 0xFFFF, ram, false)

	return &NES{
		CPU: cpu.New(bus),
		Bus: bus,
		RAM: ram,
	}
}

func (nes *NES) Reset() {
	nes.CPU.Reset()
}

// Run steps the CPU until stop is closed or execution fails.
func (nes *NES) Run(stop <-chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if _, err := nes.CPU.Step(); err != nil {
			return err
		}
	}
}
