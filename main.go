package main

import (
	"fmt"
	"os"

	"ricoh/emu"
	"ricoh/ines"
)

var version = "(devel)"

func main() {
	args := parseArgs(os.Args[1:])
	cfg := emu.LoadConfigOrDefault()

	switch args.mode {
	case runMode:
		runMain(args.Run, cfg)
	case stepMode:
		stepMain(args.Step, cfg)
	case romInfosMode:
		rom, err := ines.Open(args.RomInfos.RomPath)
		checkf(err, "failed to open rom")
		rom.PrintInfos(os.Stdout)
	case versionMode:
		fmt.Println("ricoh", version)
	}
}
