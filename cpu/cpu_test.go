package cpu

import (
	"strings"
	"testing"
)

func TestPowerUpState(t *testing.T) {
	c := loadCPUWith(t, `FFFC: 00 06`)

	runAndCheckState(t, c, 0,
		"A", 0x00,
		"X", 0x00,
		"Y", 0x00,
		"SP", 0xFD,
		"P", 0x24,
		"PC", 0x0600,
	)
	if c.Clock != 7 {
		t.Errorf("got clock %d after power-up, want 7", c.Clock)
	}
}

func TestReset(t *testing.T) {
	c := loadCPUWith(t, `
0600: a9 80 58
FFFC: 00 06`)

	runAndCheckState(t, c, 4, "A", 0x80, "Pi", 0)

	c.Reset()
	// A soft reset slips SP down by 3 without pushes, masks IRQs and
	// reloads the vector. A/X/Y survive.
	runAndCheckState(t, c, 0,
		"A", 0x80,
		"SP", 0xFA,
		"PC", 0x0600,
		"Pi", 1,
	)
}

func TestPCAdvance(t *testing.T) {
	// PC moves by exactly the instruction length for every sequential
	// instruction: 1 (implied), 2 (immediate/zeropage), 3 (absolute).
	c := loadCPUWith(t, `
0600: ea a9 01 85 10 ad 00 02
FFFC: 00 06`)

	want := []uint16{0x0601, 0x0603, 0x0605, 0x0608}
	for _, pc := range want {
		step(t, c)
		if c.PC != pc {
			t.Fatalf("got PC=$%04X, want $%04X", c.PC, pc)
		}
	}
}

func TestDumpState(t *testing.T) {
	c := loadCPUWith(t, `
0600: a9 81
FFFC: 00 06`)
	step(t, c)

	var bb strings.Builder
	c.DumpState(&bb)

	got := bb.String()
	for _, want := range []string{"PC:$0602", "A:81", "SP:FD", "op:A9(LDA)", "NvUbdIzc"} {
		if !strings.Contains(got, want) {
			t.Errorf("dump %q does not contain %q", got, want)
		}
	}
}
