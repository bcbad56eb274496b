package cpu

import "testing"

func TestNMIService(t *testing.T) {
	c := loadCPUWith(t, `
0600: ea ea
8000: ea
FFFA: 00 80
FFFC: 00 06`)

	step(t, c) // first NOP
	c.TriggerNMI()

	if got := step(t, c); got != 7 {
		t.Errorf("NMI service: got %d cycles, want 7", got)
	}
	runAndCheckState(t, c, 0,
		"PC", 0x8000,
		"SP", 0xFA,
		"Pi", 1,
	)
	// pushed PCH, PCL, then P with bit 5 set and B clear.
	wantMem8(t, c, 0x01FD, 0x06)
	wantMem8(t, c, 0x01FC, 0x01)
	wantMem8(t, c, 0x01FB, 0x24)

	// the request is consumed: next step fetches from the handler.
	step(t, c)
	runAndCheckState(t, c, 0, "PC", 0x8001)
}

func TestIRQMaskedByI(t *testing.T) {
	c := loadCPUWith(t, `
0600: 58 ea ea
9000: 40
FFFC: 00 06
FFFE: 00 90`)
	c.SetIRQ(true)

	// I is set at power-up: the line is ignored, CLI executes.
	if got := step(t, c); got != 2 {
		t.Errorf("CLI under masked IRQ: got %d cycles, want 2", got)
	}

	// with I clear the level-sensitive line is serviced.
	if got := step(t, c); got != 7 {
		t.Errorf("IRQ service: got %d cycles, want 7", got)
	}
	runAndCheckState(t, c, 0,
		"PC", 0x9000,
		"Pi", 1,
	)

	// RTI restores I=0, the line is still high: serviced again.
	if got := step(t, c); got != 6 {
		t.Errorf("RTI: got %d cycles, want 6", got)
	}
	runAndCheckState(t, c, 0, "PC", 0x0601, "Pi", 0)

	if got := step(t, c); got != 7 {
		t.Errorf("IRQ line still high: got %d cycles, want 7", got)
	}

	// lowering the line stops the storm: RTI returns and execution
	// resumes.
	c.SetIRQ(false)
	step(t, c) // RTI
	runAndCheckState(t, c, 0, "PC", 0x0601, "Pi", 0)
	step(t, c) // NOP
	runAndCheckState(t, c, 0, "PC", 0x0602)
}

func TestNMIBeatsIRQ(t *testing.T) {
	c := loadCPUWith(t, `
0600: 58 ea
8000: ea
9000: ea
FFFA: 00 80
FFFC: 00 06
FFFE: 00 90`)

	step(t, c) // CLI
	c.SetIRQ(true)
	c.TriggerNMI()

	step(t, c)
	runAndCheckState(t, c, 0, "PC", 0x8000)

	// IRQ stays pending but masked: servicing the NMI set I.
	step(t, c)
	runAndCheckState(t, c, 0, "PC", 0x8001, "Pi", 1)
}
