package emu

import (
	"bytes"
	"errors"
	"testing"

	"ricoh/cpu"
	"ricoh/ines"
)

// testRom builds an NROM image whose 16 KiB PRG holds the given program
// at $8000 and a reset vector pointing at it.
func testRom(t *testing.T, program []byte) *ines.Rom {
	t.Helper()

	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 1 // one 16 KiB PRG bank
	hdr[5] = 1

	prg := make([]byte, 16384)
	copy(prg, program)
	prg[0x3FFC] = 0x00 // $FFFC through the 16 KiB mirror
	prg[0x3FFD] = 0x80

	img := append(hdr, prg...)
	img = append(img, make([]byte, 8192)...)

	rom := new(ines.Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	return rom
}

func TestPowerUp(t *testing.T) {
	// LDA #$01, STA $0200
	rom := testRom(t, []byte{0xA9, 0x01, 0x8D, 0x00, 0x02})

	nes, err := PowerUp(rom)
	if err != nil {
		t.Fatal(err)
	}

	if nes.CPU.PC != 0x8000 {
		t.Fatalf("PC = $%04X, want $8000", nes.CPU.PC)
	}

	for range 2 {
		if _, err := nes.CPU.Step(); err != nil {
			t.Fatal(err)
		}
	}

	if nes.RAM[0x0200] != 0x01 {
		t.Errorf("RAM[$0200] = %02X, want 01", nes.RAM[0x0200])
	}
	if nes.CPU.PC != 0x8005 {
		t.Errorf("PC = $%04X, want $8005", nes.CPU.PC)
	}
}

func TestPowerUpROMIsReadonly(t *testing.T) {
	// STA $8000 must not alter PRG.
	rom := testRom(t, []byte{0xA9, 0x55, 0x8D, 0x00, 0x80})

	nes, err := PowerUp(rom)
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if _, err := nes.CPU.Step(); err != nil {
			t.Fatal(err)
		}
	}

	if got := nes.Bus.Read8(0x8000); got != 0xA9 {
		t.Errorf("PRG[0] = %02X, want A9", got)
	}
}

func TestPowerUpRejectsMapper(t *testing.T) {
	rom := testRom(t, nil)
	// forge a mapper number in flags 6
	img := buildImgWithMapper(t, 4)

	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	if _, err := PowerUp(rom); err == nil {
		t.Errorf("expected an error for mapper 4")
	}
}

func buildImgWithMapper(t *testing.T, mapper byte) []byte {
	t.Helper()
	hdr := make([]byte, 16)
	copy(hdr, ines.Magic)
	hdr[4] = 1
	hdr[5] = 1
	hdr[6] = mapper << 4
	img := append(hdr, make([]byte, 16384)...)
	return append(img, make([]byte, 8192)...)
}

func TestPowerUpFlat(t *testing.T) {
	// The manual-loading host: three stores through the whole address
	// space, reset vector patched at $FFFC.
	program := []byte{
		0xA9, 0x01, 0x8D, 0x00, 0x02, // LDA #$01, STA $0200
		0xA9, 0x05, 0x8D, 0x01, 0x02, // LDA #$05, STA $0201
		0xA9, 0x08, 0x8D, 0x02, 0x02, // LDA #$08, STA $0202
	}
	nes := PowerUpFlat(program, 0x6000)

	if nes.CPU.PC != 0x6000 {
		t.Fatalf("PC = $%04X, want $6000", nes.CPU.PC)
	}

	for range 6 {
		if _, err := nes.CPU.Step(); err != nil {
			t.Fatal(err)
		}
	}

	want := []byte{0x01, 0x05, 0x08}
	if !bytes.Equal(nes.RAM[0x0200:0x0203], want) {
		t.Errorf("RAM[$0200:] = % 02X, want % 02X", nes.RAM[0x0200:0x0203], want)
	}
	if nes.CPU.A != 0x08 {
		t.Errorf("A = %02X, want 08", nes.CPU.A)
	}
}

func TestRunStops(t *testing.T) {
	nes := PowerUpFlat([]byte{0x4C, 0x00, 0x06}, 0x0600) // JMP $0600

	stop := make(chan struct{})
	close(stop)
	if err := nes.Run(stop); err != nil {
		t.Fatal(err)
	}
}

func TestRunIllegalOpcode(t *testing.T) {
	nes := PowerUpFlat([]byte{0x02}, 0x0600)

	err := nes.Run(make(chan struct{}))
	var illOp cpu.IllegalOpcodeError
	if !errors.As(err, &illOp) {
		t.Fatalf("got %v, want IllegalOpcodeError", err)
	}
}

func TestApplyConfig(t *testing.T) {
	nes := PowerUpFlat([]byte{0x02, 0xEA}, 0x0600)
	nes.Apply(Config{Emulation: EmulationConfig{IllegalOpcodes: "nop"}})

	if _, err := nes.CPU.Step(); err != nil {
		t.Fatalf("lenient mode failed: %v", err)
	}
	if nes.CPU.PC != 0x0601 {
		t.Errorf("PC = $%04X, want $0601", nes.CPU.PC)
	}
}
