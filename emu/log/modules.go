// Package log provides module-tagged logging for the emulator. Each
// subsystem logs through its own Module; debug output is gated by a
// per-module mask so that `--log cpu,hwio` enables just what you need.
package log

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// Standard modules. An emulator frontend can define more through
// NewModule().
const (
	ModEmu Module = iota + 1
	ModCPU
	ModMem
	ModHwIo

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0

var modNames = []string{
	"<error>", "emu", "cpu", "mem", "hwio",
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return modNames[1:]
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

// printf-like family

func (mod Module) Debugf(format string, args ...any) {
	mod.logf(DebugLevel, format, args...)
}

func (mod Module) Infof(format string, args ...any) {
	mod.logf(InfoLevel, format, args...)
}

func (mod Module) Warnf(format string, args ...any) {
	mod.logf(WarnLevel, format, args...)
}

func (mod Module) Errorf(format string, args ...any) {
	mod.logf(ErrorLevel, format, args...)
}

func (mod Module) Fatalf(format string, args ...any) {
	mod.logf(FatalLevel, format, args...)
}

// Structured family. Usage:
//
//	log.ModCPU.WarnZ("illegal opcode").Hex8("opcode", op).Hex16("pc", pc).End()
func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		e := NewEntryZ()
		e.lvl = lvl
		e.msg = msg
		e.mod = mod
		return e
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
