package ines

import (
	"bytes"
	"strings"
	"testing"
)

// buildRom assembles an iNES image in memory.
func buildRom(prgBanks, chrBanks int, flags6 byte, trainer []byte) []byte {
	hdr := make([]byte, 16)
	copy(hdr, Magic)
	hdr[4] = byte(prgBanks)
	hdr[5] = byte(chrBanks)
	hdr[6] = flags6

	img := hdr
	img = append(img, trainer...)
	prg := bytes.Repeat([]byte{0xEA}, prgBanks*16384)
	img = append(img, prg...)
	chr := bytes.Repeat([]byte{0x11}, chrBanks*8192)
	img = append(img, chr...)
	return img
}

func TestReadFrom(t *testing.T) {
	img := buildRom(2, 1, 0x00, nil)

	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}

	if len(rom.PRG) != 32768 {
		t.Errorf("PRG size = %d, want 32768", len(rom.PRG))
	}
	if len(rom.CHR) != 8192 {
		t.Errorf("CHR size = %d, want 8192", len(rom.CHR))
	}
	if rom.Mapper() != 0 {
		t.Errorf("mapper = %d, want 0", rom.Mapper())
	}
	if rom.HasTrainer() {
		t.Errorf("unexpected trainer")
	}
}

func TestReadFromTrainer(t *testing.T) {
	trainer := bytes.Repeat([]byte{0x55}, 512)
	img := buildRom(1, 1, 0x04, trainer)

	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}

	if !rom.HasTrainer() {
		t.Fatalf("trainer flag not decoded")
	}
	if !bytes.Equal(rom.Trainer, trainer) {
		t.Errorf("trainer content mismatch")
	}
	if len(rom.PRG) != 16384 || rom.PRG[0] != 0xEA {
		t.Errorf("PRG misaligned after trainer")
	}
}

func TestReadFromErrors(t *testing.T) {
	tests := []struct {
		name string
		img  []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("NOPE0000000000000")},
		{"truncated PRG", buildRom(2, 0, 0x00, nil)[:16+100]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := new(Rom)
			if _, err := rom.ReadFrom(bytes.NewReader(tt.img)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestMapperNumber(t *testing.T) {
	img := buildRom(1, 1, 0x40, nil) // mapper 4 in the upper nibble
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	if rom.Mapper() != 4 {
		t.Errorf("mapper = %d, want 4", rom.Mapper())
	}
}

func TestPrintInfos(t *testing.T) {
	img := buildRom(2, 1, 0x02, nil)
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}

	var bb strings.Builder
	rom.PrintInfos(&bb)
	out := bb.String()
	for _, want := range []string{"PRG-ROM: 32 KiB", "CHR-ROM: 8 KiB", "mapper:  000", "battery: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("infos %q missing %q", out, want)
		}
	}
}
