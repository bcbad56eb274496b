package main

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"ricoh/cpu"
	"ricoh/emu"
	"ricoh/emu/log"
	"ricoh/ines"
)

// runMain runs the emulator with the given rom until execution stops or
// the process is interrupted.
func runMain(args Run, cfg emu.Config) {
	rom, err := ines.Open(args.RomPath)
	checkf(err, "failed to open rom")

	nes, err := emu.PowerUp(rom)
	checkf(err, "error during power up")
	nes.Apply(cfg)
	if args.IllegalNops {
		nes.CPU.IllegalNOP = true
	}
	log.AddContext(nes.CPU)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	stop := make(chan struct{})
	done := make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		defer close(done)
		return runLoop(nes, args.Trace, stop)
	})
	g.Go(func() error {
		select {
		case <-sig:
			close(stop)
		case <-done:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		nes.CPU.DumpState(os.Stderr)
		fatalf("execution stopped: %s", err)
	}
}

func runLoop(nes *emu.NES, trace *outfile, stop <-chan struct{}) error {
	if trace == nil {
		return nes.Run(stop)
	}

	defer trace.Close()
	d := cpu.NewDisasm(nes.CPU, trace)
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if _, err := d.Step(); err != nil {
			return err
		}
	}
}

// stepMain single-steps a program under keyboard control, one
// instruction per keypress.
func stepMain(args Step, cfg emu.Config) {
	nes, err := loadProg(args)
	checkf(err, "failed to load program")
	nes.Apply(cfg)

	fmt.Println("space: step, d: dump registers, s: save state, r: reset, q: quit")

	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	checkf(err, "failed to switch terminal to raw mode")

	err = stepLoop(nes, args.SaveState)
	term.Restore(fd, old)
	if err != nil {
		nes.CPU.DumpState(os.Stderr)
		fatalf("execution stopped: %s", err)
	}
}

func stepLoop(nes *emu.NES, statePath string) error {
	d := cpu.NewDisasm(nes.CPU, os.Stdout)
	buf := make([]byte, 1)

	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}

		switch buf[0] {
		case ' ':
			line := d.Op(nes.CPU.PC)
			if _, err := nes.CPU.Step(); err != nil {
				return err
			}
			fmt.Printf("%s\r\n", line)

		case 'd':
			var bb bytes.Buffer
			nes.CPU.DumpState(&bb)
			fmt.Printf("%s\r\n", strings.TrimRight(bb.String(), "\n"))

		case 's':
			if err := saveState(nes, statePath); err != nil {
				return err
			}
			fmt.Printf("state saved to %s\r\n", statePath)

		case 'r':
			nes.Reset()
			fmt.Printf("reset\r\n")

		case 'q', 0x03, 0x04: // q, ctrl-c, ctrl-d
			return nil
		}
	}
}

func saveState(nes *emu.NES, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nes.SaveState(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// loadProg builds a machine from an iNES ROM or, failing the magic
// check, from a raw program image loaded at the step org.
func loadProg(args Step) (*emu.NES, error) {
	buf, err := os.ReadFile(args.ProgPath)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(buf, []byte(ines.Magic)) {
		rom := new(ines.Rom)
		if _, err := rom.ReadFrom(bytes.NewReader(buf)); err != nil {
			return nil, err
		}
		return emu.PowerUp(rom)
	}

	return emu.PowerUpFlat(buf, args.Org), nil
}
